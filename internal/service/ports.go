package service

import (
	"context"
	"io"

	"github.com/Skotchmaster/laptop_store/internal/events"
	"github.com/Skotchmaster/laptop_store/internal/logging"
	"github.com/Skotchmaster/laptop_store/internal/models"
)

type UserStore interface {
	GetUser(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
	SetPasswordHash(ctx context.Context, username, hash string) error
}

type LaptopStore interface {
	CreateLaptop(ctx context.Context, l *models.Laptop) error
	ListLaptops(ctx context.Context) ([]models.Laptop, error)
	GetLaptop(ctx context.Context, id string) (*models.Laptop, error)
	UpdateLaptop(ctx context.Context, id string, upd models.Laptop) (*models.Laptop, error)
	SetLaptopImage(ctx context.Context, id, url string) (*models.Laptop, error)
	DeleteLaptop(ctx context.Context, id string) error
	InsertLaptops(ctx context.Context, items []models.Laptop) (int, error)
	SearchLaptops(ctx context.Context, f models.LaptopFilter) ([]models.Laptop, error)
}

type OrderStore interface {
	CreateOrder(ctx context.Context, o *models.Order) error
	ListOrders(ctx context.Context, username string) ([]models.Order, error)
	DeleteOrder(ctx context.Context, id, username string) error
}

// Indexer mirrors the catalog into a search engine.
type Indexer interface {
	IndexLaptop(ctx context.Context, l models.Laptop) error
	IndexLaptops(ctx context.Context, items []models.Laptop) error
	DeleteLaptop(ctx context.Context, id string) error
	SearchLaptops(ctx context.Context, f models.LaptopFilter) ([]models.Laptop, error)
}

type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

type ImageStore interface {
	PutImage(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

func publish(ctx context.Context, p Publisher, topic, key, eventType string, data any) {
	if p == nil {
		return
	}
	if err := p.PublishEvent(ctx, topic, key, events.New(eventType, data)); err != nil {
		logging.FromContext(ctx).Warn("publish_event_error", "topic", topic, "type", eventType, "key", key, "error", err)
	}
}
