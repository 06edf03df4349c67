package service

import (
	"context"
	"log"
	"time"

	"github.com/eventease/eventease/internal/blob"
	"github.com/eventease/eventease/internal/repository"
)

// EventInput carries the mutable event fields supplied by the caller.
// VenueID is optional; EventTypeID must reference one of the seeded
// categories.
type EventInput struct {
	Name        string    `validate:"required,max=100"`
	StartsAt    time.Time `validate:"required"`
	Description string    `validate:"required"`
	VenueID     *uint64
	EventTypeID uint64 `validate:"required"`
}

// EventService implements event management: filtered listing, CRUD, the
// delete-block invariant against existing bookings, and the image
// lifecycle.
type EventService struct {
	events EventStore
	types  EventTypeStore
	venues VenueStore
	blobs  BlobStore
}

// NewEventService constructs an EventService.
func NewEventService(events EventStore, types EventTypeStore, venues VenueStore, blobs BlobStore) *EventService {
	return &EventService{events: events, types: types, venues: venues, blobs: blobs}
}

// List returns one page of events matching the query plus the total
// match count. Page and PageSize are clamped to sane bounds so callers
// cannot request page 0 or unbounded pages.
func (s *EventService) List(ctx context.Context, q repository.EventSearchQuery) ([]repository.EventDetail, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = 10
	}
	if q.PageSize > 100 {
		q.PageSize = 100
	}
	return s.events.Search(ctx, q)
}

// Get returns an event joined with its type and venue, or
// repository.ErrEventNotFound. The detail also reports whether bookings
// reference the event, so clients know a delete would be refused.
func (s *EventService) Get(ctx context.Context, id uint64) (*repository.EventDetail, error) {
	d, err := s.events.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	has, err := s.events.HasBookings(ctx, id)
	if err != nil {
		return nil, err
	}
	d.HasBookings = has
	return d, nil
}

// Types returns the seeded event categories.
func (s *EventService) Types(ctx context.Context) ([]*repository.EventType, error) {
	return s.types.List(ctx)
}

// Create validates the input, verifies the referenced event type and
// venue exist, uploads the optional image and then writes the row. The
// image goes first; if the row write fails afterwards the fresh blob is
// deleted best effort, and a failed cleanup leaves a harmless orphan.
// Nothing is written to either store before validation has passed.
func (s *EventService) Create(ctx context.Context, in EventInput, img *ImageUpload) (*repository.Event, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if img != nil {
		if err := ValidateImage(*img); err != nil {
			return nil, err
		}
	}
	if _, err := s.types.GetByID(ctx, in.EventTypeID); err != nil {
		return nil, err
	}
	if in.VenueID != nil {
		if _, err := s.venues.GetByID(ctx, *in.VenueID); err != nil {
			return nil, err
		}
	}

	var imageURL *string
	var imageKey string
	if img != nil {
		imageKey = blob.NewKey(img.Filename)
		url, err := s.blobs.Upload(ctx, imageKey, img.Data, img.ContentType)
		if err != nil {
			return nil, err
		}
		imageURL = &url
	}

	e := &repository.Event{
		Name:        in.Name,
		StartsAt:    in.StartsAt,
		Description: in.Description,
		VenueID:     in.VenueID,
		EventTypeID: in.EventTypeID,
		ImageURL:    imageURL,
	}
	if err := s.events.Create(ctx, e); err != nil {
		if imageKey != "" {
			if _, delErr := s.blobs.Delete(ctx, imageKey); delErr != nil {
				log.Printf("event create: could not clean up orphaned image %s: %v", imageKey, delErr)
			}
		}
		return nil, err
	}
	return e, nil
}

// Update fetches the existing event, overwrites its mutable fields and
// persists the row under the caller's version token. A replacement image
// is uploaded before the row write and the previous image removed only
// after everything succeeded; on a stale version or other row failure
// the fresh blob is deleted best effort and the old image stays.
func (s *EventService) Update(ctx context.Context, id uint64, in EventInput, version uint32, img *ImageUpload) (*repository.Event, error) {
	existing, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if img != nil {
		if err := ValidateImage(*img); err != nil {
			return nil, err
		}
	}
	if in.EventTypeID != existing.EventTypeID {
		if _, err := s.types.GetByID(ctx, in.EventTypeID); err != nil {
			return nil, err
		}
	}
	if in.VenueID != nil {
		if _, err := s.venues.GetByID(ctx, *in.VenueID); err != nil {
			return nil, err
		}
	}

	oldURL := existing.ImageURL
	var newKey string
	if img != nil {
		newKey = blob.NewKey(img.Filename)
		url, err := s.blobs.Upload(ctx, newKey, img.Data, img.ContentType)
		if err != nil {
			return nil, err
		}
		existing.ImageURL = &url
	}

	existing.Name = in.Name
	existing.StartsAt = in.StartsAt
	existing.Description = in.Description
	existing.VenueID = in.VenueID
	existing.EventTypeID = in.EventTypeID
	existing.Version = version

	if err := s.events.Update(ctx, existing); err != nil {
		if newKey != "" {
			if _, delErr := s.blobs.Delete(ctx, newKey); delErr != nil {
				log.Printf("event update: could not clean up orphaned image %s: %v", newKey, delErr)
			}
		}
		return nil, err
	}

	if img != nil && oldURL != nil {
		if _, err := s.blobs.Delete(ctx, blob.KeyFromURL(*oldURL)); err != nil {
			log.Printf("event update: could not delete replaced image %s: %v", *oldURL, err)
		}
	}
	return existing, nil
}

// Delete removes an event. The repository rejects the delete with
// repository.ErrConflict while bookings still reference the event; only
// after the row is gone is the associated image removed, best effort.
func (s *EventService) Delete(ctx context.Context, id uint64) error {
	existing, err := s.events.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return err
	}
	if existing.ImageURL != nil {
		if _, err := s.blobs.Delete(ctx, blob.KeyFromURL(*existing.ImageURL)); err != nil {
			log.Printf("event delete: could not delete image %s: %v", *existing.ImageURL, err)
		}
	}
	return nil
}
