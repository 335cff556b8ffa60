package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/laptop_store/internal/logging"
	"github.com/Skotchmaster/laptop_store/internal/models"
	"github.com/Skotchmaster/laptop_store/internal/service"
	"github.com/Skotchmaster/laptop_store/internal/util"
)

func (h *CatalogHTTP) SearchLaptops(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "laptop.search")

	f := models.LaptopFilter{Brand: c.QueryParam("brand")}
	var err error
	for _, p := range []struct {
		name string
		dst  **float64
	}{
		{"min_price", &f.MinPrice},
		{"max_price", &f.MaxPrice},
		{"min_rating", &f.MinRating},
	} {
		if *p.dst, err = util.ParseOptionalFloat(p.name, c.QueryParam(p.name)); err != nil {
			l.Warn("laptop_search_error", "status", 400, "reason", "invalid query", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	items, err := h.Svc.Search(ctx, f)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("laptop_search_error", "status", 400, "reason", "invalid range", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "min_price must not exceed max_price")
		}
		l.Error("laptop_search_error", "status", 500, "reason", "cannot search laptops", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot search laptops")
	}
	return c.JSON(http.StatusOK, items)
}
