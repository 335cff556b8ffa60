package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Skotchmaster/laptop_store/internal/events"
	"github.com/Skotchmaster/laptop_store/internal/models"
	"github.com/Skotchmaster/laptop_store/internal/repo"
)

type OrderService struct {
	Orders OrderStore
	Events Publisher
}

// Create records an order for username. The laptop id is not checked against the catalog.
func (s *OrderService) Create(ctx context.Context, username, laptopID string, quantity int) (*models.Order, error) {
	if strings.TrimSpace(laptopID) == "" {
		return nil, fmt.Errorf("%w: laptop_id required", ErrValidation)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
	}

	order := &models.Order{LaptopID: laptopID, Quantity: quantity, Username: username}
	if err := s.Orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	publish(ctx, s.Events, events.TopicOrders, order.ID, "order_created", order)
	return order, nil
}

func (s *OrderService) ListMine(ctx context.Context, username string) ([]models.Order, error) {
	orders, err := s.Orders.ListOrders(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) DeleteMine(ctx context.Context, username, id string) error {
	if err := s.Orders.DeleteOrder(ctx, id, username); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("delete order %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("delete order %s: %w", id, err)
	}

	publish(ctx, s.Events, events.TopicOrders, id, "order_deleted", map[string]any{"id": id, "username": username})
	return nil
}
