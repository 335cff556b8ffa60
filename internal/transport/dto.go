package transport

import (
	"fmt"
	"strings"

	"github.com/Skotchmaster/laptop_store/internal/models"
)

// LaptopRequest is the create/update payload. Every field but image_url is required.
// Numeric fields also accept numeric strings.
type LaptopRequest struct {
	Brand          *string `json:"brand"`
	ProcessorBrand *string `json:"processor_brand"`
	ProcessorName  *string `json:"processor_name"`
	RAMGB          *Int    `json:"ram_gb"`
	RAMType        *string `json:"ram_type"`
	SSD            *Int    `json:"ssd"`
	HDD            *Int    `json:"hdd"`
	OS             *string `json:"os"`
	Price          *Float  `json:"price"`
	Rating         *string `json:"rating"`
	ImageURL       *string `json:"image_url"`
}

func (r LaptopRequest) ToModel() (models.Laptop, error) {
	var missing []string
	str := func(name string, v *string) string {
		if v == nil {
			missing = append(missing, name)
			return ""
		}
		return *v
	}
	num := func(name string, v *Int) int {
		if v == nil {
			missing = append(missing, name)
			return 0
		}
		return int(*v)
	}

	l := models.Laptop{
		Brand:          str("brand", r.Brand),
		ProcessorBrand: str("processor_brand", r.ProcessorBrand),
		ProcessorName:  str("processor_name", r.ProcessorName),
		RAMGB:          num("ram_gb", r.RAMGB),
		RAMType:        str("ram_type", r.RAMType),
		SSD:            num("ssd", r.SSD),
		HDD:            num("hdd", r.HDD),
		OS:             str("os", r.OS),
		Rating:         str("rating", r.Rating),
	}
	if r.Price == nil {
		missing = append(missing, "price")
	} else {
		l.Price = float64(*r.Price)
	}
	if r.ImageURL != nil {
		l.ImageURL = *r.ImageURL
	}

	if len(missing) > 0 {
		return models.Laptop{}, fmt.Errorf("missing fields: %s", strings.Join(missing, ", "))
	}
	return l, nil
}

// FromModel builds a full payload, used by the client.
func FromModel(l models.Laptop) LaptopRequest {
	ram, ssd, hdd, price := Int(l.RAMGB), Int(l.SSD), Int(l.HDD), Float(l.Price)
	return LaptopRequest{
		Brand:          &l.Brand,
		ProcessorBrand: &l.ProcessorBrand,
		ProcessorName:  &l.ProcessorName,
		RAMGB:          &ram,
		RAMType:        &l.RAMType,
		SSD:            &ssd,
		HDD:            &hdd,
		OS:             &l.OS,
		Price:          &price,
		Rating:         &l.Rating,
		ImageURL:       &l.ImageURL,
	}
}

type CreateOrderRequest struct {
	LaptopID string `json:"laptop_id"`
	Quantity Int    `json:"quantity"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type DetailResponse struct {
	Detail string `json:"detail"`
}

type LoginResponse struct {
	Detail string `json:"detail"`
	Role   string `json:"role"`
}

type ImportResponse struct {
	InsertedCount int `json:"inserted_count"`
}
