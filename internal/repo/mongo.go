package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Skotchmaster/laptop_store/internal/models"
)

const (
	usersCollection   = "users"
	laptopsCollection = "laptops"
	ordersCollection  = "orders"
)

type MongoRepo struct {
	DB *mongo.Database
}

func (m *MongoRepo) Ping(ctx context.Context) error {
	return m.DB.Client().Ping(ctx, readpref.Primary())
}

// EnsureIndexes creates the unique username index and the order owner index.
func (m *MongoRepo) EnsureIndexes(ctx context.Context) error {
	if _, err := m.DB.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("users index: %w", err)
	}
	if _, err := m.DB.Collection(ordersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "username", Value: 1}},
	}); err != nil {
		return fmt.Errorf("orders index: %w", err)
	}
	return nil
}

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password_hash,omitempty"`
	Password     string             `bson:"password,omitempty"`
	Role         string             `bson:"role,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
}

type laptopDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Brand          string             `bson:"brand"`
	ProcessorBrand string             `bson:"processor_brand"`
	ProcessorName  string             `bson:"processor_name"`
	RAMGB          int                `bson:"ram_gb"`
	RAMType        string             `bson:"ram_type"`
	SSD            int                `bson:"ssd"`
	HDD            int                `bson:"hdd"`
	OS             string             `bson:"os"`
	Price          float64            `bson:"price"`
	Rating         string             `bson:"rating"`
	ImageURL       string             `bson:"image_url"`
	CreatedAt      time.Time          `bson:"created_at"`
}

type orderDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	LaptopID  string             `bson:"laptop_id"`
	Quantity  int                `bson:"quantity"`
	Username  string             `bson:"username"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d userDoc) model() models.User {
	return models.User{
		ID:             d.ID.Hex(),
		Username:       d.Username,
		PasswordHash:   d.PasswordHash,
		Role:           d.Role,
		CreatedAt:      d.CreatedAt,
		LegacyPassword: d.Password,
	}
}

func newLaptopDoc(l models.Laptop) laptopDoc {
	return laptopDoc{
		Brand:          l.Brand,
		ProcessorBrand: l.ProcessorBrand,
		ProcessorName:  l.ProcessorName,
		RAMGB:          l.RAMGB,
		RAMType:        l.RAMType,
		SSD:            l.SSD,
		HDD:            l.HDD,
		OS:             l.OS,
		Price:          l.Price,
		Rating:         l.Rating,
		ImageURL:       l.ImageURL,
		CreatedAt:      l.CreatedAt,
	}
}

func (d laptopDoc) model() models.Laptop {
	return models.Laptop{
		ID:             d.ID.Hex(),
		Brand:          d.Brand,
		ProcessorBrand: d.ProcessorBrand,
		ProcessorName:  d.ProcessorName,
		RAMGB:          d.RAMGB,
		RAMType:        d.RAMType,
		SSD:            d.SSD,
		HDD:            d.HDD,
		OS:             d.OS,
		Price:          d.Price,
		Rating:         d.Rating,
		ImageURL:       d.ImageURL,
		CreatedAt:      d.CreatedAt,
	}
}

func (d orderDoc) model() models.Order {
	return models.Order{
		ID:        d.ID.Hex(),
		LaptopID:  d.LaptopID,
		Quantity:  d.Quantity,
		Username:  d.Username,
		CreatedAt: d.CreatedAt,
	}
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

func mongoNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func now() time.Time {
	// mongo stores milliseconds
	return time.Now().UTC().Truncate(time.Millisecond)
}
