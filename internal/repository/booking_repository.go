// Package repository contains data access logic for Booking domain
// operations. A Booking ties a customer to an event at a venue; both
// references are mandatory and declared RESTRICT so neither parent row can
// be deleted while the booking exists.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// Booking represents a booking row persisted in the database.  BookedAt is
// always set server-side at creation time.
type Booking struct {
	ID              uint64    `json:"id"`
	EventID         uint64    `json:"event_id"`
	VenueID         uint64    `json:"venue_id"`
	BookedAt        time.Time `json:"booked_at"`
	CustomerName    string    `json:"customer_name"`
	CustomerContact string    `json:"customer_contact"`
	TicketCount     uint32    `json:"ticket_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// BookingDetail is a booking joined with its event and venue in a single
// round trip, shaped for listing and detail responses.
type BookingDetail struct {
	ID              uint64    `json:"id"`
	EventID         uint64    `json:"event_id"`
	EventName       string    `json:"event_name"`
	EventStartsAt   time.Time `json:"event_starts_at"`
	EventTypeName   string    `json:"event_type_name"`
	VenueID         uint64    `json:"venue_id"`
	VenueName       string    `json:"venue_name"`
	Location        string    `json:"location"`
	CustomerName    string    `json:"customer_name"`
	CustomerContact string    `json:"customer_contact"`
	TicketCount     uint32    `json:"ticket_count"`
	BookedAt        time.Time `json:"booked_at"`
}

// ErrBookingNotFound is returned when a booking cannot be found in the DB.
var ErrBookingNotFound = errors.New("booking not found")

// BookingRepo encapsulates database queries for bookings.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo constructs a BookingRepo with the given DB handle.
func NewBookingRepo(db *sql.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

// Create inserts a new booking.  The caller is expected to have set
// BookedAt already; the generated ID and created_at are populated on the
// struct after the insert.
func (r *BookingRepo) Create(ctx context.Context, b *Booking) error {
	const q = `INSERT INTO bookings (event_id, venue_id, booked_at, customer_name, customer_contact, ticket_count)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, b.EventID, b.VenueID, b.BookedAt, b.CustomerName, b.CustomerContact, b.TicketCount)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	const sel = `SELECT booked_at, created_at FROM bookings WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, b.ID).Scan(&b.BookedAt, &b.CreatedAt)
}

// GetDetail fetches a booking joined with its event and venue.  It
// returns ErrBookingNotFound if there is no matching row.
func (r *BookingRepo) GetDetail(ctx context.Context, id uint64) (*BookingDetail, error) {
	const q = `SELECT b.id, b.event_id, e.name, e.starts_at, t.name, b.venue_id, v.name, v.location,
	                  b.customer_name, b.customer_contact, b.ticket_count, b.booked_at
	           FROM bookings b
	           JOIN events e ON e.id = b.event_id
	           JOIN event_types t ON t.id = e.event_type_id
	           JOIN venues v ON v.id = b.venue_id
	           WHERE b.id = ?`
	var d BookingDetail
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.EventID, &d.EventName, &d.EventStartsAt, &d.EventTypeName,
		&d.VenueID, &d.VenueName, &d.Location,
		&d.CustomerName, &d.CustomerContact, &d.TicketCount, &d.BookedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &d, nil
}

// List returns all bookings joined with their event and venue, newest
// first.  When search is non-empty it is matched as a substring against
// the booking id and the event name.
func (r *BookingRepo) List(ctx context.Context, search string) ([]BookingDetail, error) {
	q := `SELECT b.id, b.event_id, e.name, e.starts_at, t.name, b.venue_id, v.name, v.location,
	             b.customer_name, b.customer_contact, b.ticket_count, b.booked_at
	      FROM bookings b
	      JOIN events e ON e.id = b.event_id
	      JOIN event_types t ON t.id = e.event_type_id
	      JOIN venues v ON v.id = b.venue_id`
	args := []any{}
	if search != "" {
		q += ` WHERE CAST(b.id AS CHAR) LIKE ? OR LOWER(e.name) LIKE ?`
		args = append(args, "%"+search+"%", "%"+strings.ToLower(search)+"%")
	}
	q += ` ORDER BY b.id DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BookingDetail
	for rows.Next() {
		var d BookingDetail
		if err := rows.Scan(
			&d.ID, &d.EventID, &d.EventName, &d.EventStartsAt, &d.EventTypeName,
			&d.VenueID, &d.VenueName, &d.Location,
			&d.CustomerName, &d.CustomerContact, &d.TicketCount, &d.BookedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a booking by id.  Bookings have no dependents, so the
// delete is unconditional.  ErrBookingNotFound is returned when no row
// was deleted.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBookingNotFound
	}
	return nil
}
