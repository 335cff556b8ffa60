package httpserver

import (
	"bufio"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/laptop_store/internal/logging"
	"github.com/Skotchmaster/laptop_store/internal/service"
)

const maxImageSize = 10 << 20

func (h *CatalogHTTP) SetLaptopImage(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "laptop.set_image")

	fh, err := c.FormFile("file")
	if err != nil {
		l.Warn("laptop_image_error", "status", 400, "reason", "file is required", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if fh.Size > maxImageSize {
		l.Warn("laptop_image_error", "status", 413, "reason", "file too large", "size", fh.Size)
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
	}

	f, err := fh.Open()
	if err != nil {
		l.Error("laptop_image_error", "status", 500, "reason", "cannot read upload", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot read upload")
	}
	defer f.Close()

	br := bufio.NewReader(f)
	contentType := fh.Header.Get(echo.HeaderContentType)
	if contentType == "" || contentType == echo.MIMEOctetStream {
		head, _ := br.Peek(512)
		contentType = http.DetectContentType(head)
	}

	laptop, err := h.Svc.SetImage(ctx, c.Param("id"), service.ImageUpload{
		Filename:    fh.Filename,
		ContentType: contentType,
		Size:        fh.Size,
		Body:        br,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImagesDisabled):
			l.Warn("laptop_image_error", "status", 503, "reason", "image storage is not configured")
			return echo.NewHTTPError(http.StatusServiceUnavailable, "image storage is not configured")
		case errors.Is(err, service.ErrValidation):
			l.Warn("laptop_image_error", "status", 400, "reason", "not an image", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "file must be an image")
		case errors.Is(err, service.ErrNotFound):
			l.Warn("laptop_image_error", "status", 404, "reason", "laptop not found", "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "laptop not found")
		default:
			l.Error("laptop_image_error", "status", 500, "reason", "cannot store image", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot store image")
		}
	}

	l.Info("laptop_image_success", "id", laptop.ID)
	return c.JSON(http.StatusOK, laptop)
}
