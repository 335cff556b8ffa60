package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/Skotchmaster/laptop_store/internal/middleware/auth"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	CatalogHandler *CatalogHTTP
	OrderHandler   *OrderHTTP
	Guard          *authmw.BasicMiddleware
	Ready          func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "store unavailable")
			}
		}
		return c.NoContent(http.StatusOK)
	})

	e.POST("/register", d.AuthHandler.Register)
	e.POST("/login", d.AuthHandler.Login)

	api := e.Group("", d.Guard.RequireAuth)

	api.POST("/laptops", d.CatalogHandler.CreateLaptop)
	api.GET("/laptops", d.CatalogHandler.ListLaptops)
	api.GET("/laptops/:id", d.CatalogHandler.GetLaptop)
	api.PUT("/laptops/:id", d.CatalogHandler.UpdateLaptop)
	api.DELETE("/laptops/:id", d.CatalogHandler.DeleteLaptop)
	api.PUT("/laptops/:id/image", d.CatalogHandler.SetLaptopImage)
	api.POST("/import_laptops", d.CatalogHandler.ImportLaptops)
	api.GET("/search_laptops", d.CatalogHandler.SearchLaptops)

	api.POST("/orders", d.OrderHandler.CreateOrder)
	api.GET("/orders", d.OrderHandler.ListOrders)
	api.DELETE("/orders/:id", d.OrderHandler.DeleteOrder)
}
