package service

import (
	"context"
	"fmt"

	"github.com/eventease/eventease/internal/repository"
)

// In-memory store fakes backing the service tests. Each mirrors the
// corresponding repository's error contract closely enough for the
// services to be exercised without a database.

type fakeVenueStore struct {
	venues    map[uint64]*repository.Venue
	nextID    uint64
	createErr error
	blocked   map[uint64]bool // venue ids whose delete is refused
}

func newFakeVenueStore() *fakeVenueStore {
	return &fakeVenueStore{venues: map[uint64]*repository.Venue{}, blocked: map[uint64]bool{}}
}

func (f *fakeVenueStore) add(v repository.Venue) *repository.Venue {
	f.nextID++
	v.ID = f.nextID
	if v.Version == 0 {
		v.Version = 1
	}
	stored := v
	f.venues[v.ID] = &stored
	return &stored
}

func (f *fakeVenueStore) Create(_ context.Context, v *repository.Venue) error {
	if f.createErr != nil {
		return f.createErr
	}
	stored := f.add(*v)
	*v = *stored
	return nil
}

func (f *fakeVenueStore) GetByID(_ context.Context, id uint64) (*repository.Venue, error) {
	v, ok := f.venues[id]
	if !ok {
		return nil, repository.ErrVenueNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVenueStore) List(_ context.Context) ([]*repository.Venue, error) {
	out := make([]*repository.Venue, 0, len(f.venues))
	for _, v := range f.venues {
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeVenueStore) Update(_ context.Context, v *repository.Venue) error {
	cur, ok := f.venues[v.ID]
	if !ok {
		return repository.ErrVenueNotFound
	}
	if cur.Version != v.Version {
		return repository.ErrConcurrency
	}
	v.Version++
	cp := *v
	f.venues[v.ID] = &cp
	return nil
}

func (f *fakeVenueStore) Delete(_ context.Context, id uint64) error {
	if _, ok := f.venues[id]; !ok {
		return repository.ErrVenueNotFound
	}
	if f.blocked[id] {
		return repository.ErrConflict
	}
	delete(f.venues, id)
	return nil
}

type fakeEventStore struct {
	events  map[uint64]*repository.Event
	nextID  uint64
	blocked map[uint64]bool
	lastQ   repository.EventSearchQuery
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: map[uint64]*repository.Event{}, blocked: map[uint64]bool{}}
}

func (f *fakeEventStore) add(e repository.Event) *repository.Event {
	f.nextID++
	e.ID = f.nextID
	if e.Version == 0 {
		e.Version = 1
	}
	stored := e
	f.events[e.ID] = &stored
	return &stored
}

func (f *fakeEventStore) Create(_ context.Context, e *repository.Event) error {
	stored := f.add(*e)
	*e = *stored
	return nil
}

func (f *fakeEventStore) GetByID(_ context.Context, id uint64) (*repository.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, repository.ErrEventNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventStore) GetDetail(_ context.Context, id uint64) (*repository.EventDetail, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, repository.ErrEventNotFound
	}
	return &repository.EventDetail{Event: *e}, nil
}

func (f *fakeEventStore) Search(_ context.Context, q repository.EventSearchQuery) ([]repository.EventDetail, int64, error) {
	f.lastQ = q
	out := make([]repository.EventDetail, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, repository.EventDetail{Event: *e})
	}
	return out, int64(len(out)), nil
}

func (f *fakeEventStore) HasBookings(_ context.Context, id uint64) (bool, error) {
	return f.blocked[id], nil
}

func (f *fakeEventStore) Update(_ context.Context, e *repository.Event) error {
	cur, ok := f.events[e.ID]
	if !ok {
		return repository.ErrEventNotFound
	}
	if cur.Version != e.Version {
		return repository.ErrConcurrency
	}
	e.Version++
	cp := *e
	f.events[e.ID] = &cp
	return nil
}

func (f *fakeEventStore) Delete(_ context.Context, id uint64) error {
	if _, ok := f.events[id]; !ok {
		return repository.ErrEventNotFound
	}
	if f.blocked[id] {
		return repository.ErrConflict
	}
	delete(f.events, id)
	return nil
}

type fakeEventTypeStore struct {
	types map[uint64]string
}

func (f *fakeEventTypeStore) List(_ context.Context) ([]*repository.EventType, error) {
	out := make([]*repository.EventType, 0, len(f.types))
	for id, name := range f.types {
		out = append(out, &repository.EventType{ID: id, Name: name})
	}
	return out, nil
}

func (f *fakeEventTypeStore) GetByID(_ context.Context, id uint64) (*repository.EventType, error) {
	name, ok := f.types[id]
	if !ok {
		return nil, repository.ErrEventTypeNotFound
	}
	return &repository.EventType{ID: id, Name: name}, nil
}

type fakeBookingStore struct {
	bookings map[uint64]*repository.Booking
	nextID   uint64
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: map[uint64]*repository.Booking{}}
}

func (f *fakeBookingStore) Create(_ context.Context, b *repository.Booking) error {
	f.nextID++
	b.ID = f.nextID
	b.CreatedAt = b.BookedAt
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f *fakeBookingStore) GetDetail(_ context.Context, id uint64) (*repository.BookingDetail, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	return &repository.BookingDetail{ID: b.ID, EventID: b.EventID, VenueID: b.VenueID}, nil
}

func (f *fakeBookingStore) List(_ context.Context, _ string) ([]repository.BookingDetail, error) {
	out := make([]repository.BookingDetail, 0, len(f.bookings))
	for _, b := range f.bookings {
		out = append(out, repository.BookingDetail{ID: b.ID, EventID: b.EventID, VenueID: b.VenueID})
	}
	return out, nil
}

func (f *fakeBookingStore) Delete(_ context.Context, id uint64) error {
	if _, ok := f.bookings[id]; !ok {
		return repository.ErrBookingNotFound
	}
	delete(f.bookings, id)
	return nil
}

// fakeBlobStore records uploads and deletes so tests can assert on the
// cross-store ordering the services promise.
type fakeBlobStore struct {
	objects   map[string][]byte
	uploaded  []string
	deleted   []string
	uploadErr error
	deleteErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: map[string][]byte{}}
}

func (f *fakeBlobStore) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.objects[key] = data
	f.uploaded = append(f.uploaded, key)
	return fmt.Sprintf("http://blobs.test/event-images/%s", key), nil
}

func (f *fakeBlobStore) Delete(_ context.Context, key string) (bool, error) {
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	_, ok := f.objects[key]
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return ok, nil
}
