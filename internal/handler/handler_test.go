package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventease/eventease/internal/repository"
	"github.com/eventease/eventease/internal/service"
)

// Stub stores with overridable lookups. Unset hooks answer not-found,
// which is what most of the error-mapping tests need.

type stubVenues struct {
	get func(id uint64) (*repository.Venue, error)
	del func(id uint64) error
}

func (s *stubVenues) Create(context.Context, *repository.Venue) error { return nil }
func (s *stubVenues) GetByID(_ context.Context, id uint64) (*repository.Venue, error) {
	if s.get != nil {
		return s.get(id)
	}
	return nil, repository.ErrVenueNotFound
}
func (s *stubVenues) List(context.Context) ([]*repository.Venue, error) { return nil, nil }
func (s *stubVenues) Update(context.Context, *repository.Venue) error {
	return repository.ErrVenueNotFound
}
func (s *stubVenues) Delete(_ context.Context, id uint64) error {
	if s.del != nil {
		return s.del(id)
	}
	return repository.ErrVenueNotFound
}

type stubBookings struct {
	detail func(id uint64) (*repository.BookingDetail, error)
}

func (s *stubBookings) Create(context.Context, *repository.Booking) error { return nil }
func (s *stubBookings) GetDetail(_ context.Context, id uint64) (*repository.BookingDetail, error) {
	if s.detail != nil {
		return s.detail(id)
	}
	return nil, repository.ErrBookingNotFound
}
func (s *stubBookings) List(context.Context, string) ([]repository.BookingDetail, error) {
	return nil, nil
}
func (s *stubBookings) Delete(context.Context, uint64) error { return repository.ErrBookingNotFound }

type stubEvents struct{}

func (stubEvents) Create(context.Context, *repository.Event) error { return nil }
func (stubEvents) GetByID(context.Context, uint64) (*repository.Event, error) {
	return nil, repository.ErrEventNotFound
}
func (stubEvents) GetDetail(context.Context, uint64) (*repository.EventDetail, error) {
	return nil, repository.ErrEventNotFound
}
func (stubEvents) Search(context.Context, repository.EventSearchQuery) ([]repository.EventDetail, int64, error) {
	return nil, 0, nil
}
func (stubEvents) HasBookings(context.Context, uint64) (bool, error) { return false, nil }
func (stubEvents) Update(context.Context, *repository.Event) error { return repository.ErrEventNotFound }
func (stubEvents) Delete(context.Context, uint64) error            { return repository.ErrEventNotFound }

type stubBlobs struct{}

func (stubBlobs) Upload(context.Context, string, []byte, string) (string, error) { return "", nil }
func (stubBlobs) Delete(context.Context, string) (bool, error)                   { return false, nil }

func newBookingHandler(bookings *stubBookings) *BookingHandler {
	svc := service.NewBookingService(bookings, stubEvents{}, &stubVenues{})
	return NewBookingHandler(svc)
}

func doRequest(method, target, body, contentType string, id string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	_ = h(c)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestBookingGetInvalidID(t *testing.T) {
	h := newBookingHandler(&stubBookings{})
	rec := doRequest(http.MethodGet, "/v1/bookings/abc", "", "", "abc", h.Get)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid id", errorBody(t, rec))
}

func TestBookingGetMissing(t *testing.T) {
	h := newBookingHandler(&stubBookings{})
	rec := doRequest(http.MethodGet, "/v1/bookings/42", "", "", "42", h.Get)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "booking not found", errorBody(t, rec))
}

func TestBookingGetFound(t *testing.T) {
	h := newBookingHandler(&stubBookings{detail: func(id uint64) (*repository.BookingDetail, error) {
		return &repository.BookingDetail{ID: id, EventName: "Tech Conference"}, nil
	}})
	rec := doRequest(http.MethodGet, "/v1/bookings/2", "", "", "2", h.Get)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Tech Conference")
}

func TestBookingCreateMalformedBody(t *testing.T) {
	h := newBookingHandler(&stubBookings{})
	rec := doRequest(http.MethodPost, "/v1/bookings", `{"event_id":`, echo.MIMEApplicationJSON, "", h.Create)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid request body", errorBody(t, rec))
}

func TestBookingCreateValidationFailure(t *testing.T) {
	h := newBookingHandler(&stubBookings{})
	body := `{"event_id":1,"venue_id":1,"customer_name":"John","customer_contact":"not a phone","ticket_count":2}`
	rec := doRequest(http.MethodPost, "/v1/bookings", body, echo.MIMEApplicationJSON, "", h.Create)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorBody(t, rec), "phone")
}

func TestBookingCreateUnknownEvent(t *testing.T) {
	h := newBookingHandler(&stubBookings{})
	body := `{"event_id":9,"venue_id":1,"customer_name":"John","customer_contact":"555-1234","ticket_count":2}`
	rec := doRequest(http.MethodPost, "/v1/bookings", body, echo.MIMEApplicationJSON, "", h.Create)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "event not found", errorBody(t, rec))
}

func TestVenueDeleteConflict(t *testing.T) {
	venues := &stubVenues{
		get: func(id uint64) (*repository.Venue, error) {
			return &repository.Venue{ID: id, Name: "Grand Ballroom"}, nil
		},
		del: func(uint64) error { return repository.ErrConflict },
	}
	h := NewVenueHandler(service.NewVenueService(venues, stubBlobs{}))
	rec := doRequest(http.MethodDelete, "/v1/venues/3", "", "", "3", h.Delete)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, errorBody(t, rec), "cannot delete a venue")
}

func TestVenueUpdateMissingVersion(t *testing.T) {
	h := NewVenueHandler(service.NewVenueService(&stubVenues{}, stubBlobs{}))
	form := "name=Grand+Ballroom&location=Downtown&capacity=500"
	rec := doRequest(http.MethodPut, "/v1/venues/3", form, echo.MIMEApplicationForm, "3", h.Update)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "version is required", errorBody(t, rec))
}
