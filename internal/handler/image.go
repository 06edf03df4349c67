package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventease/eventease/internal/blob"
)

// ImageHandler serves the /v1/images routes directly off the blob
// store. Keys come from the image_url stored on venues and events.
type ImageHandler struct {
	Blobs     *blob.Store
	SignedTTL time.Duration
}

// NewImageHandler constructs an ImageHandler and panics on a nil store.
func NewImageHandler(blobs *blob.Store, signedTTL time.Duration) *ImageHandler {
	if blobs == nil {
		panic("nil blob store passed to NewImageHandler")
	}
	return &ImageHandler{Blobs: blobs, SignedTTL: signedTTL}
}

// Download handles GET /v1/images/:key and streams the raw object back.
// The content type is sniffed from the data because the store is not
// asked for metadata on this path.
func (h *ImageHandler) Download(c echo.Context) error {
	key := c.Param("key")
	exists, err := h.Blobs.Exists(c.Request().Context(), key)
	if err != nil {
		log.Printf("GET /v1/images/%s: %v", key, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
	if !exists {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "image not found"})
	}
	data, err := h.Blobs.Download(c.Request().Context(), key)
	if err != nil {
		log.Printf("GET /v1/images/%s: %v", key, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
	return c.Blob(http.StatusOK, http.DetectContentType(data), data)
}

// SignedURL handles GET /v1/images/:key/url and returns a time-limited
// read URL for the object.
func (h *ImageHandler) SignedURL(c echo.Context) error {
	key := c.Param("key")
	url, err := h.Blobs.SignedURL(c.Request().Context(), key, h.SignedTTL)
	if err != nil {
		log.Printf("GET /v1/images/%s/url: %v", key, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
	if url == "" {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "image not found"})
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url, "expires_in": h.SignedTTL.String()})
}
