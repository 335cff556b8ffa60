package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"

	PlaceholderImageURL = "https://via.placeholder.com/150"
)

type User struct {
	ID           string    `gorm:"primaryKey;size:36"       json:"id"`
	Username     string    `gorm:"uniqueIndex;not null"     json:"username"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Role         string    `gorm:"not null;default:user"    json:"role"`
	CreatedAt    time.Time `json:"created_at"`

	// LegacyPassword is a plaintext password left by older document stores.
	// It is replaced by PasswordHash on the first successful login.
	LegacyPassword string `gorm:"-" json:"-"`
}

type Laptop struct {
	ID             string    `gorm:"primaryKey;size:36"  json:"_id"`
	Brand          string    `gorm:"not null;index"      json:"brand"`
	ProcessorBrand string    `gorm:"not null"            json:"processor_brand"`
	ProcessorName  string    `gorm:"not null"            json:"processor_name"`
	RAMGB          int       `gorm:"not null"            json:"ram_gb"`
	RAMType        string    `gorm:"not null"            json:"ram_type"`
	SSD            int       `gorm:"not null"            json:"ssd"`
	HDD            int       `gorm:"not null"            json:"hdd"`
	OS             string    `gorm:"not null"            json:"os"`
	Price          float64   `gorm:"not null;index"      json:"price"`
	Rating         string    `gorm:"not null"            json:"rating"`
	ImageURL       string    `gorm:"not null"            json:"image_url"`
	CreatedAt      time.Time `gorm:"index"               json:"-"`
}

type Order struct {
	ID        string    `gorm:"primaryKey;size:36"              json:"_id"`
	LaptopID  string    `gorm:"not null"                        json:"laptop_id"`
	Quantity  int       `gorm:"not null;check:quantity>0"       json:"quantity"`
	Username  string    `gorm:"index;not null"                  json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// LaptopFilter narrows a catalog search. Nil bounds are not applied.
type LaptopFilter struct {
	Brand     string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (l *Laptop) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// SameContent reports whether both laptops carry identical mutable fields.
func (l Laptop) SameContent(other Laptop) bool {
	return l.Brand == other.Brand &&
		l.ProcessorBrand == other.ProcessorBrand &&
		l.ProcessorName == other.ProcessorName &&
		l.RAMGB == other.RAMGB &&
		l.RAMType == other.RAMType &&
		l.SSD == other.SSD &&
		l.HDD == other.HDD &&
		l.OS == other.OS &&
		l.Price == other.Price &&
		l.Rating == other.Rating &&
		l.ImageURL == other.ImageURL
}

// ApplyContent copies the mutable fields of src, keeping id and created_at.
func (l *Laptop) ApplyContent(src Laptop) {
	id, created := l.ID, l.CreatedAt
	*l = src
	l.ID, l.CreatedAt = id, created
}

func (l *Laptop) Normalize() {
	if l.ImageURL == "" {
		l.ImageURL = PlaceholderImageURL
	}
}
