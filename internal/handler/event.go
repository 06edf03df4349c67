package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventease/eventease/internal/repository"
	"github.com/eventease/eventease/internal/service"
)

// EventHandler serves the /v1/events and /v1/event-types routes.
type EventHandler struct {
	Events *service.EventService
}

// NewEventHandler constructs an EventHandler and panics on a nil service.
func NewEventHandler(events *service.EventService) *EventHandler {
	if events == nil {
		panic("nil service passed to NewEventHandler")
	}
	return &EventHandler{Events: events}
}

// eventForm pulls the event fields out of the form body. starts_at must
// be RFC 3339 and event_type_id numeric; venue_id is optional and an
// empty value means no venue.
func eventForm(c echo.Context) (service.EventInput, string) {
	var in service.EventInput
	in.Name = strings.TrimSpace(c.FormValue("name"))
	in.Description = strings.TrimSpace(c.FormValue("description"))

	startsAt, err := time.Parse(time.RFC3339, c.FormValue("starts_at"))
	if err != nil {
		return in, "starts_at must be an RFC 3339 timestamp"
	}
	in.StartsAt = startsAt.UTC()

	typeID, err := strconv.ParseUint(c.FormValue("event_type_id"), 10, 64)
	if err != nil {
		return in, "event_type_id must be a positive number"
	}
	in.EventTypeID = typeID

	if raw := strings.TrimSpace(c.FormValue("venue_id")); raw != "" {
		venueID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return in, "venue_id must be a positive number"
		}
		in.VenueID = &venueID
	}
	return in, ""
}

// eventPage is the envelope for paginated event listings.
type eventPage struct {
	Items    []repository.EventDetail `json:"items"`
	Total    int64                    `json:"total"`
	Page     int                      `json:"page"`
	PageSize int                      `json:"page_size"`
}

// List handles GET /v1/events. Supported query parameters: search,
// event_type_id, venue_id, page and page_size.
func (h *EventHandler) List(c echo.Context) error {
	q := repository.EventSearchQuery{
		Search: strings.TrimSpace(c.QueryParam("search")),
	}
	if raw := c.QueryParam("event_type_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "event_type_id must be a positive number"})
		}
		q.EventTypeID = &id
	}
	if raw := c.QueryParam("venue_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "venue_id must be a positive number"})
		}
		q.VenueID = &id
	}
	q.Page, _ = strconv.Atoi(c.QueryParam("page"))
	q.PageSize, _ = strconv.Atoi(c.QueryParam("page_size"))

	items, total, err := h.Events.List(c.Request().Context(), q)
	if err != nil {
		return respondErr(c, err, "")
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 10
	}
	if q.PageSize > 100 {
		q.PageSize = 100
	}
	if items == nil {
		items = []repository.EventDetail{}
	}
	return c.JSON(http.StatusOK, eventPage{Items: items, Total: total, Page: q.Page, PageSize: q.PageSize})
}

// Get handles GET /v1/events/:id.
func (h *EventHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	e, err := h.Events.Get(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err, "")
	}
	return c.JSON(http.StatusOK, e)
}

// ListTypes handles GET /v1/event-types.
func (h *EventHandler) ListTypes(c echo.Context) error {
	types, err := h.Events.Types(c.Request().Context())
	if err != nil {
		return respondErr(c, err, "")
	}
	return c.JSON(http.StatusOK, types)
}

// Create handles POST /v1/events.
func (h *EventHandler) Create(c echo.Context) error {
	in, msg := eventForm(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
	}
	img, err := formImage(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "could not read uploaded image"})
	}
	e, err := h.Events.Create(c.Request().Context(), in, img)
	if err != nil {
		return respondErr(c, err, "")
	}
	return c.JSON(http.StatusCreated, e)
}

// Update handles PUT /v1/events/:id. The form must carry the version
// the caller last saw.
func (h *EventHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	in, msg := eventForm(c)
	if msg != "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
	}
	version64, err := strconv.ParseUint(c.FormValue("version"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "version is required"})
	}
	img, err := formImage(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "could not read uploaded image"})
	}
	e, err := h.Events.Update(c.Request().Context(), id, in, uint32(version64), img)
	if err != nil {
		return respondErr(c, err, "")
	}
	return c.JSON(http.StatusOK, e)
}

// Delete handles DELETE /v1/events/:id. The delete is refused while
// bookings still reference the event.
func (h *EventHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.Events.Delete(c.Request().Context(), id); err != nil {
		return respondErr(c, err, "cannot delete an event that still has bookings")
	}
	return c.NoContent(http.StatusNoContent)
}
