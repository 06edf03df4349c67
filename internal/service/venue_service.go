package service

import (
	"context"
	"log"

	"github.com/eventease/eventease/internal/blob"
	"github.com/eventease/eventease/internal/repository"
)

// VenueInput carries the mutable venue fields supplied by the caller.
type VenueInput struct {
	Name     string `validate:"required,max=100"`
	Location string `validate:"required,max=255"`
	Capacity uint32 `validate:"required,min=1"`
}

// VenueService implements venue management: CRUD plus the image
// lifecycle that goes with it.
type VenueService struct {
	venues VenueStore
	blobs  BlobStore
}

// NewVenueService constructs a VenueService.
func NewVenueService(venues VenueStore, blobs BlobStore) *VenueService {
	return &VenueService{venues: venues, blobs: blobs}
}

// List returns all venues.
func (s *VenueService) List(ctx context.Context) ([]*repository.Venue, error) {
	return s.venues.List(ctx)
}

// Get returns a single venue or repository.ErrVenueNotFound.
func (s *VenueService) Get(ctx context.Context, id uint64) (*repository.Venue, error) {
	return s.venues.GetByID(ctx, id)
}

// Create validates the input and optional image, uploads the image
// first and then writes the row. The two stores are independent, so a
// failed row write triggers a best-effort delete of the fresh blob; if
// that cleanup fails too the blob is orphaned, which is logged and
// tolerated rather than escalated.
func (s *VenueService) Create(ctx context.Context, in VenueInput, img *ImageUpload) (*repository.Venue, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	var imageURL *string
	var imageKey string
	if img != nil {
		if err := ValidateImage(*img); err != nil {
			return nil, err
		}
		imageKey = blob.NewKey(img.Filename)
		url, err := s.blobs.Upload(ctx, imageKey, img.Data, img.ContentType)
		if err != nil {
			return nil, err
		}
		imageURL = &url
	}

	v := &repository.Venue{
		Name:     in.Name,
		Location: in.Location,
		Capacity: in.Capacity,
		ImageURL: imageURL,
	}
	if err := s.venues.Create(ctx, v); err != nil {
		if imageKey != "" {
			if _, delErr := s.blobs.Delete(ctx, imageKey); delErr != nil {
				log.Printf("venue create: could not clean up orphaned image %s: %v", imageKey, delErr)
			}
		}
		return nil, err
	}
	return v, nil
}

// Update fetches the existing venue, overwrites its mutable fields and
// persists the row under the caller's version token. A replacement image
// is uploaded before the row write; the previous image is removed only
// after both the upload and the row write succeeded, so a failure along
// the way never loses the old image.
func (s *VenueService) Update(ctx context.Context, id uint64, in VenueInput, version uint32, img *ImageUpload) (*repository.Venue, error) {
	existing, err := s.venues.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	oldURL := existing.ImageURL
	var newKey string
	if img != nil {
		if err := ValidateImage(*img); err != nil {
			return nil, err
		}
		newKey = blob.NewKey(img.Filename)
		url, err := s.blobs.Upload(ctx, newKey, img.Data, img.ContentType)
		if err != nil {
			return nil, err
		}
		existing.ImageURL = &url
	}

	existing.Name = in.Name
	existing.Location = in.Location
	existing.Capacity = in.Capacity
	existing.Version = version

	if err := s.venues.Update(ctx, existing); err != nil {
		if newKey != "" {
			if _, delErr := s.blobs.Delete(ctx, newKey); delErr != nil {
				log.Printf("venue update: could not clean up orphaned image %s: %v", newKey, delErr)
			}
		}
		return nil, err
	}

	if img != nil && oldURL != nil {
		if _, err := s.blobs.Delete(ctx, blob.KeyFromURL(*oldURL)); err != nil {
			log.Printf("venue update: could not delete replaced image %s: %v", *oldURL, err)
		}
	}
	return existing, nil
}

// Delete removes a venue. There is no service-level check for dependent
// bookings; the store's restrict constraint decides and surfaces as
// repository.ErrConflict. The row goes first and the image second, so a
// blocked delete never touches the blob.
func (s *VenueService) Delete(ctx context.Context, id uint64) error {
	existing, err := s.venues.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.venues.Delete(ctx, id); err != nil {
		return err
	}
	if existing.ImageURL != nil {
		if _, err := s.blobs.Delete(ctx, blob.KeyFromURL(*existing.ImageURL)); err != nil {
			log.Printf("venue delete: could not delete image %s: %v", *existing.ImageURL, err)
		}
	}
	return nil
}
