package client

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/laptop_store/internal/models"
)

type OrderLine struct {
	Order    models.Order
	Laptop   models.Laptop
	Subtotal decimal.Decimal
}

type OrderSummary struct {
	Lines []OrderLine
	// Dangling holds orders whose laptop is no longer in the catalog.
	Dangling []models.Order
	Total    decimal.Decimal
}

// Totals prices orders against the catalog. Orders pointing at deleted laptops
// are excluded from the total.
func Totals(orders []models.Order, catalog []models.Laptop) OrderSummary {
	byID := make(map[string]models.Laptop, len(catalog))
	for _, l := range catalog {
		byID[l.ID] = l
	}

	sum := OrderSummary{Total: decimal.Zero}
	for _, o := range orders {
		l, ok := byID[o.LaptopID]
		if !ok {
			sum.Dangling = append(sum.Dangling, o)
			continue
		}
		sub := decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(o.Quantity)))
		sum.Lines = append(sum.Lines, OrderLine{Order: o, Laptop: l, Subtotal: sub})
		sum.Total = sum.Total.Add(sub)
	}
	return sum
}

// MyOrderSummary fetches the caller's orders and the catalog and prices them.
func (c *Client) MyOrderSummary(ctx context.Context) (OrderSummary, error) {
	orders, err := c.ListOrders(ctx)
	if err != nil {
		return OrderSummary{}, fmt.Errorf("list orders: %w", err)
	}
	catalog, err := c.ListLaptops(ctx)
	if err != nil {
		return OrderSummary{}, fmt.Errorf("list laptops: %w", err)
	}
	return Totals(orders, catalog), nil
}
