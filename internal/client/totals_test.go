package client

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Skotchmaster/laptop_store/internal/models"
)

func TestTotals(t *testing.T) {
	catalog := []models.Laptop{
		{ID: "a", Price: 0.1},
		{ID: "b", Price: 45990.99},
	}
	orders := []models.Order{
		{ID: "1", LaptopID: "a", Quantity: 3},
		{ID: "2", LaptopID: "b", Quantity: 2},
		{ID: "3", LaptopID: "deleted", Quantity: 7},
	}

	sum := Totals(orders, catalog)

	assert.Len(t, sum.Lines, 2)
	assert.Equal(t, "0.3", sum.Lines[0].Subtotal.String())
	assert.Equal(t, "91981.98", sum.Lines[1].Subtotal.String())
	assert.Equal(t, "91982.28", sum.Total.String())
	assert.Len(t, sum.Dangling, 1)
}

func TestTotalsEmpty(t *testing.T) {
	sum := Totals(nil, nil)
	assert.True(t, sum.Total.IsZero())
	assert.Empty(t, sum.Lines)
	assert.Empty(t, sum.Dangling)
}
