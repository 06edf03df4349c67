package service

import (
	"context"
	"time"

	"github.com/eventease/eventease/internal/queue"
	"github.com/eventease/eventease/internal/repository"
)

// BookingInput carries the fields supplied when a customer books an
// event. The booking date is never accepted from the caller; it is set
// server-side at creation time.
type BookingInput struct {
	EventID         uint64 `validate:"required"`
	VenueID         uint64 `validate:"required"`
	CustomerName    string `validate:"required,max=100"`
	CustomerContact string `validate:"required,max=20,phone"`
	TicketCount     uint32 `validate:"required,min=1,max=100"`
}

// BookingService implements booking management. Bookings have no
// dependents, so deletion is unconditional; creation verifies both
// referenced rows exist before touching the store.
type BookingService struct {
	bookings BookingStore
	events   EventStore
	venues   VenueStore
	// publish emits the booking.created notification. It is a field so
	// tests can intercept it; failures are ignored after logging.
	publish func(ctx context.Context, ev queue.BookingCreatedEvent) error
}

// NewBookingService constructs a BookingService wired to the RabbitMQ
// publisher.
func NewBookingService(bookings BookingStore, events EventStore, venues VenueStore) *BookingService {
	return &BookingService{
		bookings: bookings,
		events:   events,
		venues:   venues,
		publish:  queue.PublishBookingCreated,
	}
}

// List returns all bookings joined with event and venue data, optionally
// filtered by a substring of the booking id or event name.
func (s *BookingService) List(ctx context.Context, search string) ([]repository.BookingDetail, error) {
	return s.bookings.List(ctx, search)
}

// Get returns a single joined booking or repository.ErrBookingNotFound.
func (s *BookingService) Get(ctx context.Context, id uint64) (*repository.BookingDetail, error) {
	return s.bookings.GetDetail(ctx, id)
}

// Create validates the input, confirms the referenced event and venue
// exist, stamps the booking date server-side and persists the booking.
// After the row is committed a booking.created event is published best
// effort; a broker outage never fails the request.
func (s *BookingService) Create(ctx context.Context, in BookingInput) (*repository.Booking, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	event, err := s.events.GetByID(ctx, in.EventID)
	if err != nil {
		return nil, err
	}
	venue, err := s.venues.GetByID(ctx, in.VenueID)
	if err != nil {
		return nil, err
	}

	b := &repository.Booking{
		EventID:         in.EventID,
		VenueID:         in.VenueID,
		BookedAt:        time.Now().UTC(),
		CustomerName:    in.CustomerName,
		CustomerContact: in.CustomerContact,
		TicketCount:     in.TicketCount,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	// The publisher logs its own failures; nothing to do with the error here.
	_ = s.publish(ctx, queue.BookingCreatedEvent{
		BookingID:       b.ID,
		EventID:         event.ID,
		EventName:       event.Name,
		VenueID:         venue.ID,
		VenueName:       venue.Name,
		CustomerName:    b.CustomerName,
		CustomerContact: b.CustomerContact,
		TicketCount:     b.TicketCount,
		BookedAt:        b.BookedAt.Format(time.RFC3339),
	})
	return b, nil
}

// Delete removes a booking unconditionally.
func (s *BookingService) Delete(ctx context.Context, id uint64) error {
	return s.bookings.Delete(ctx, id)
}
