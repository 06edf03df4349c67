// Package handler exposes the HTTP layer. Handlers bind and parse the
// request, call the matching service and translate service errors into
// status codes; they hold no business rules of their own.
package handler

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eventease/eventease/internal/repository"
	"github.com/eventease/eventease/internal/service"
)

// pathID parses the numeric :id path parameter.
func pathID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// formImage reads the optional "image" part of a multipart form into an
// upload. It returns (nil, nil) when no file was attached; echo reports
// a missing part and a non-multipart body the same way, and both simply
// mean there is no image.
func formImage(c echo.Context) (*service.ImageUpload, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &service.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// respondErr maps a service or repository error onto an HTTP response.
// Validation failures and not-found sentinels carry their message to the
// client; conflicts get a caller-supplied message because the useful
// wording depends on the endpoint; everything else is logged and hidden
// behind an opaque 500.
func respondErr(c echo.Context, err error, conflictMsg string) error {
	switch {
	case service.IsValidation(err):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, repository.ErrVenueNotFound),
		errors.Is(err, repository.ErrEventNotFound),
		errors.Is(err, repository.ErrEventTypeNotFound),
		errors.Is(err, repository.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, map[string]string{"error": conflictMsg})
	case errors.Is(err, repository.ErrConcurrency):
		return c.JSON(http.StatusConflict, map[string]string{
			"error": "the record was modified by another user, reload and try again",
		})
	default:
		log.Printf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
