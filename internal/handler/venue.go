package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eventease/eventease/internal/service"
)

// VenueHandler serves the /v1/venues routes. Mutating requests arrive
// as multipart forms so an image can ride along with the fields.
type VenueHandler struct {
	Venues *service.VenueService
}

// NewVenueHandler constructs a VenueHandler and panics on a nil service.
func NewVenueHandler(venues *service.VenueService) *VenueHandler {
	if venues == nil {
		panic("nil service passed to NewVenueHandler")
	}
	return &VenueHandler{Venues: venues}
}

// venueForm pulls the venue fields out of the form body. Capacity must
// be numeric; the rest of the validation happens in the service.
func venueForm(c echo.Context) (service.VenueInput, bool) {
	var in service.VenueInput
	in.Name = strings.TrimSpace(c.FormValue("name"))
	in.Location = strings.TrimSpace(c.FormValue("location"))
	cap64, err := strconv.ParseUint(c.FormValue("capacity"), 10, 32)
	if err != nil {
		return in, false
	}
	in.Capacity = uint32(cap64)
	return in, true
}

// List handles GET /v1/venues.
func (h *VenueHandler) List(c echo.Context) error {
	venues, err := h.Venues.List(c.Request().Context())
	if err != nil {
		return respondErr(c, err, "")
	}
	return c.JSON(http.StatusOK, venues)
}

// Get handles GET /v1/venues/:id.
func (h *VenueHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	v, err := h.Venues.Get(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err, "")
	}
	return c.JSON(http.StatusOK, v)
}

// Create handles POST /v1/venues.
func (h *VenueHandler) Create(c echo.Context) error {
	in, ok := venueForm(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "capacity must be a positive number"})
	}
	img, err := formImage(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "could not read uploaded image"})
	}
	v, err := h.Venues.Create(c.Request().Context(), in, img)
	if err != nil {
		return respondErr(c, err, "")
	}
	return c.JSON(http.StatusCreated, v)
}

// Update handles PUT /v1/venues/:id. The form must carry the version
// the caller last saw so a concurrent edit is detected instead of
// silently overwritten.
func (h *VenueHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	in, ok := venueForm(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "capacity must be a positive number"})
	}
	version64, err := strconv.ParseUint(c.FormValue("version"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "version is required"})
	}
	img, err := formImage(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "could not read uploaded image"})
	}
	v, err := h.Venues.Update(c.Request().Context(), id, in, uint32(version64), img)
	if err != nil {
		return respondErr(c, err, "")
	}
	return c.JSON(http.StatusOK, v)
}

// Delete handles DELETE /v1/venues/:id. The delete is refused while
// events or bookings still reference the venue.
func (h *VenueHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.Venues.Delete(c.Request().Context(), id); err != nil {
		return respondErr(c, err, "cannot delete a venue that is still referenced by events or bookings")
	}
	return c.NoContent(http.StatusNoContent)
}
