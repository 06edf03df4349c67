package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eventease/eventease/internal/repository"
	"github.com/eventease/eventease/internal/service"
)

// BookingHandler serves the /v1/bookings routes. Bookings carry no
// image, so creation takes a plain JSON body.
type BookingHandler struct {
	Bookings *service.BookingService
}

// NewBookingHandler constructs a BookingHandler and panics on a nil service.
func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	if bookings == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bookings}
}

// List handles GET /v1/bookings. The optional search parameter matches
// the booking id or the booked event's name.
func (h *BookingHandler) List(c echo.Context) error {
	bookings, err := h.Bookings.List(c.Request().Context(), strings.TrimSpace(c.QueryParam("search")))
	if err != nil {
		return respondErr(c, err, "")
	}
	if bookings == nil {
		bookings = []repository.BookingDetail{}
	}
	return c.JSON(http.StatusOK, bookings)
}

// Get handles GET /v1/bookings/:id.
func (h *BookingHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	b, err := h.Bookings.Get(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err, "")
	}
	return c.JSON(http.StatusOK, b)
}

// Create handles POST /v1/bookings.
func (h *BookingHandler) Create(c echo.Context) error {
	var body struct {
		EventID         uint64 `json:"event_id"`
		VenueID         uint64 `json:"venue_id"`
		CustomerName    string `json:"customer_name"`
		CustomerContact string `json:"customer_contact"`
		TicketCount     uint32 `json:"ticket_count"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if body.TicketCount == 0 {
		// Omitting the count books a single ticket.
		body.TicketCount = 1
	}
	b, err := h.Bookings.Create(c.Request().Context(), service.BookingInput{
		EventID:         body.EventID,
		VenueID:         body.VenueID,
		CustomerName:    strings.TrimSpace(body.CustomerName),
		CustomerContact: strings.TrimSpace(body.CustomerContact),
		TicketCount:     body.TicketCount,
	})
	if err != nil {
		return respondErr(c, err, "")
	}
	return c.JSON(http.StatusCreated, b)
}

// Delete handles DELETE /v1/bookings/:id.
func (h *BookingHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.Bookings.Delete(c.Request().Context(), id); err != nil {
		return respondErr(c, err, "")
	}
	return c.NoContent(http.StatusNoContent)
}
