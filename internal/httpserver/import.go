package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/laptop_store/internal/csvimport"
	"github.com/Skotchmaster/laptop_store/internal/logging"
	"github.com/Skotchmaster/laptop_store/internal/models"
	"github.com/Skotchmaster/laptop_store/internal/repo"
	"github.com/Skotchmaster/laptop_store/internal/transport"
)

const mimeTextCSV = "text/csv"

func decodeImport(c echo.Context) ([]models.Laptop, error) {
	body := c.Request().Body
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), mimeTextCSV) {
		return csvimport.Parse(body)
	}

	var reqs []transport.LaptopRequest
	if err := json.NewDecoder(body).Decode(&reqs); err != nil {
		return nil, fmt.Errorf("invalid body: %w", err)
	}
	items := make([]models.Laptop, 0, len(reqs))
	for i, r := range reqs {
		l, err := r.ToModel()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		items = append(items, l)
	}
	return items, nil
}

func (h *CatalogHTTP) ImportLaptops(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "laptop.import")

	items, err := decodeImport(c)
	if err != nil {
		l.Warn("laptop_import_error", "status", 400, "reason", "invalid payload", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	n, err := h.Svc.Import(ctx, items)
	if err != nil {
		var ie *repo.ImportError
		if errors.As(err, &ie) {
			l.Error("laptop_import_error", "status", 500, "reason", "import stopped", "inserted", ie.Inserted, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError,
				fmt.Sprintf("import stopped after %d inserted records", ie.Inserted))
		}
		l.Error("laptop_import_error", "status", 500, "reason", "cannot import laptops", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot import laptops")
	}

	l.Info("laptop_import_success", "inserted_count", n)
	return c.JSON(http.StatusOK, transport.ImportResponse{InsertedCount: n})
}
