package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/laptop_store/internal/logging"
	authmw "github.com/Skotchmaster/laptop_store/internal/middleware/auth"
	"github.com/Skotchmaster/laptop_store/internal/service"
	"github.com/Skotchmaster/laptop_store/internal/transport"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("order_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.Create(ctx, authmw.Username(c), req.LaptopID, int(req.Quantity))
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("order_create_error", "status", 400, "reason", "invalid order", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "laptop_id is required and quantity must be positive")
		}
		l.Error("order_create_error", "status", 500, "reason", "cannot create order", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create order")
	}

	l.Info("order_create_success", "id", order.ID)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	orders, err := h.Svc.ListMine(ctx, authmw.Username(c))
	if err != nil {
		l.Error("order_list_error", "status", 500, "reason", "cannot get orders", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get orders")
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) DeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.delete")

	id := c.Param("id")
	if err := h.Svc.DeleteMine(ctx, authmw.Username(c), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("order_delete_error", "status", 404, "reason", "order not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		l.Error("order_delete_error", "status", 500, "reason", "cannot delete order", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete order")
	}

	l.Info("order_delete_success", "id", id)
	return c.JSON(http.StatusOK, transport.DetailResponse{Detail: "order deleted"})
}
