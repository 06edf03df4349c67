package service

import (
	"context"

	"github.com/eventease/eventease/internal/repository"
)

// The services depend on narrow store interfaces rather than the concrete
// repositories so tests can substitute fakes. The repositories satisfy
// these interfaces as-is.

// VenueStore is the slice of venue persistence the services need.
type VenueStore interface {
	Create(ctx context.Context, v *repository.Venue) error
	GetByID(ctx context.Context, id uint64) (*repository.Venue, error)
	List(ctx context.Context) ([]*repository.Venue, error)
	Update(ctx context.Context, v *repository.Venue) error
	Delete(ctx context.Context, id uint64) error
}

// EventStore is the slice of event persistence the services need.
type EventStore interface {
	Create(ctx context.Context, e *repository.Event) error
	GetByID(ctx context.Context, id uint64) (*repository.Event, error)
	GetDetail(ctx context.Context, id uint64) (*repository.EventDetail, error)
	Search(ctx context.Context, q repository.EventSearchQuery) ([]repository.EventDetail, int64, error)
	HasBookings(ctx context.Context, id uint64) (bool, error)
	Update(ctx context.Context, e *repository.Event) error
	Delete(ctx context.Context, id uint64) error
}

// EventTypeStore exposes the seeded category set.
type EventTypeStore interface {
	List(ctx context.Context) ([]*repository.EventType, error)
	GetByID(ctx context.Context, id uint64) (*repository.EventType, error)
}

// BookingStore is the slice of booking persistence the services need.
type BookingStore interface {
	Create(ctx context.Context, b *repository.Booking) error
	GetDetail(ctx context.Context, id uint64) (*repository.BookingDetail, error)
	List(ctx context.Context, search string) ([]repository.BookingDetail, error)
	Delete(ctx context.Context, id uint64) error
}

// BlobStore is the slice of the image store the services need: handlers
// use the full blob.Store directly for downloads and signed URLs.
type BlobStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) (bool, error)
}
