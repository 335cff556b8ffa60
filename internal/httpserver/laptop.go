package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/laptop_store/internal/logging"
	"github.com/Skotchmaster/laptop_store/internal/repo"
	"github.com/Skotchmaster/laptop_store/internal/service"
	"github.com/Skotchmaster/laptop_store/internal/transport"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) CreateLaptop(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "laptop.create")

	var req transport.LaptopRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("laptop_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	laptop, err := req.ToModel()
	if err != nil {
		l.Warn("laptop_create_error", "status", 400, "reason", "missing fields", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.Svc.Create(ctx, laptop)
	if err != nil {
		l.Error("laptop_create_error", "status", 500, "reason", "cannot add laptop to db", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add laptop to db")
	}

	l.Info("laptop_create_success", "id", created.ID)
	return c.JSON(http.StatusCreated, created)
}

func (h *CatalogHTTP) ListLaptops(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "laptop.list")

	items, err := h.Svc.List(ctx)
	if err != nil {
		l.Error("laptop_list_error", "status", 500, "reason", "cannot get laptops", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get laptops")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) GetLaptop(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "laptop.get")

	laptop, err := h.Svc.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("laptop_get_error", "status", 404, "reason", "laptop not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "laptop not found")
		}
		l.Error("laptop_get_error", "status", 500, "reason", "cannot get laptop", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot get laptop")
	}
	return c.JSON(http.StatusOK, laptop)
}

func (h *CatalogHTTP) UpdateLaptop(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "laptop.update")

	var req transport.LaptopRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("laptop_update_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	upd, err := req.ToModel()
	if err != nil {
		l.Warn("laptop_update_error", "status", 400, "reason", "missing fields", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	laptop, err := h.Svc.Update(ctx, c.Param("id"), upd)
	if err != nil {
		if errors.Is(err, repo.ErrNotModified) {
			l.Warn("laptop_update_error", "status", 404, "reason", "nothing changed", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "laptop not found or no changes made")
		}
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("laptop_update_error", "status", 404, "reason", "laptop not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "laptop not found")
		}
		l.Error("laptop_update_error", "status", 500, "reason", "cannot update laptop", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update laptop")
	}

	l.Info("laptop_update_success", "id", laptop.ID)
	return c.JSON(http.StatusOK, laptop)
}

func (h *CatalogHTTP) DeleteLaptop(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "laptop.delete")

	id := c.Param("id")
	if err := h.Svc.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("laptop_delete_error", "status", 404, "reason", "laptop not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "laptop not found")
		}
		l.Error("laptop_delete_error", "status", 500, "reason", "cannot delete laptop", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete laptop")
	}

	l.Info("laptop_delete_success", "id", id)
	return c.JSON(http.StatusOK, transport.DetailResponse{Detail: "laptop deleted"})
}
