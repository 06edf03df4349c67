// Package repository contains data access logic for Event domain operations.
// This file defines the Event model and repository methods for events. An
// Event is a scheduled happening of one of the seeded categories, optionally
// tied to a venue and optionally carrying an uploaded image.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"errors"       // errors for sentinel definitions
	"strings"      // strings builds dynamic WHERE clauses
	"time"         // time holds schedule and row timestamps
)

// Event represents an event row persisted in the database. VenueID and
// ImageURL are nil when unset. Version is the optimistic concurrency token
// compared on every update.
type Event struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	StartsAt    time.Time `json:"starts_at"`
	Description string    `json:"description"`
	VenueID     *uint64   `json:"venue_id"`
	EventTypeID uint64    `json:"event_type_id"`
	ImageURL    *string   `json:"image_url"`
	Version     uint32    `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventDetail is an Event joined with its event type and venue in a single
// round trip, for detail pages that would otherwise need three queries.
type EventDetail struct {
	Event
	EventTypeName string  `json:"event_type_name"`
	VenueName     *string `json:"venue_name"`
	// HasBookings is populated on detail reads so clients know up front
	// that a delete would be refused. List responses leave it false.
	HasBookings bool `json:"has_bookings"`
}

// EventSearchQuery defines filters & pagination for listing events.
type EventSearchQuery struct {
	Search      string  // substring matched against name and description
	EventTypeID *uint64 // restrict to one category
	VenueID     *uint64 // restrict to one venue
	Page        int     // 1-based page number
	PageSize    int     // rows per page
}

// ErrEventNotFound indicates that an event was not located in the DB.
var ErrEventNotFound = errors.New("event not found")

// EventRepo manages persistence for events.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo constructs an EventRepo with the given DB handle.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

// Create inserts a new event and assigns the generated ID back to the
// struct.  A follow-up SELECT populates the DB-default fields (version,
// created_at, updated_at).
func (r *EventRepo) Create(ctx context.Context, e *Event) error {
	const q = `INSERT INTO events (name, starts_at, description, venue_id, event_type_id, image_url)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, e.Name, e.StartsAt, e.Description, e.VenueID, e.EventTypeID, e.ImageURL)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)

	const sel = `SELECT name, starts_at, description, venue_id, event_type_id, image_url, version, created_at, updated_at
	             FROM events WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, e.ID).Scan(
		&e.Name, &e.StartsAt, &e.Description, &e.VenueID, &e.EventTypeID, &e.ImageURL,
		&e.Version, &e.CreatedAt, &e.UpdatedAt,
	)
}

// GetByID retrieves a bare event row by its ID.  It returns
// ErrEventNotFound if there is no matching row.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*Event, error) {
	const q = `SELECT id, name, starts_at, description, venue_id, event_type_id, image_url, version, created_at, updated_at
	           FROM events WHERE id = ?`
	var e Event
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&e.ID, &e.Name, &e.StartsAt, &e.Description, &e.VenueID, &e.EventTypeID, &e.ImageURL,
		&e.Version, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}

// GetDetail retrieves an event eagerly joined with its event type and
// venue.  The venue join is a LEFT JOIN because the venue reference is
// optional.
func (r *EventRepo) GetDetail(ctx context.Context, id uint64) (*EventDetail, error) {
	const q = `SELECT e.id, e.name, e.starts_at, e.description, e.venue_id, e.event_type_id, e.image_url,
	                  e.version, e.created_at, e.updated_at, t.name, v.name
	           FROM events e
	           JOIN event_types t ON t.id = e.event_type_id
	           LEFT JOIN venues v ON v.id = e.venue_id
	           WHERE e.id = ?`
	var d EventDetail
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&d.ID, &d.Name, &d.StartsAt, &d.Description, &d.VenueID, &d.EventTypeID, &d.ImageURL,
		&d.Version, &d.CreatedAt, &d.UpdatedAt, &d.EventTypeName, &d.VenueName,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &d, nil
}

// Search returns one page of events matching the query together with the
// total number of matching rows, so callers can compute page counts
// without a second round trip.
func (r *EventRepo) Search(ctx context.Context, q EventSearchQuery) ([]EventDetail, int64, error) {
	where := []string{}
	args := []any{}

	if q.Search != "" {
		where = append(where, "(LOWER(e.name) LIKE ? OR LOWER(e.description) LIKE ?)")
		pat := "%" + strings.ToLower(q.Search) + "%"
		args = append(args, pat, pat)
	}
	if q.EventTypeID != nil {
		where = append(where, "e.event_type_id = ?")
		args = append(args, *q.EventTypeID)
	}
	if q.VenueID != nil {
		where = append(where, "e.venue_id = ?")
		args = append(args, *q.VenueID)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	countSQL := `SELECT COUNT(*) FROM events e WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := `SELECT e.id, e.name, e.starts_at, e.description, e.venue_id, e.event_type_id, e.image_url,
	                   e.version, e.created_at, e.updated_at, t.name, v.name
	            FROM events e
	            JOIN event_types t ON t.id = e.event_type_id
	            LEFT JOIN venues v ON v.id = e.venue_id
	            WHERE ` + cond + `
	            ORDER BY e.starts_at ASC, e.id ASC
	            LIMIT ? OFFSET ?`

	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]EventDetail, 0, limit)
	for rows.Next() {
		var d EventDetail
		if err := rows.Scan(
			&d.ID, &d.Name, &d.StartsAt, &d.Description, &d.VenueID, &d.EventTypeID, &d.ImageURL,
			&d.Version, &d.CreatedAt, &d.UpdatedAt, &d.EventTypeName, &d.VenueName,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Update overwrites the event's mutable fields under the version guard.
// When no row matches, a follow-up existence check disambiguates a
// missing row (ErrEventNotFound) from a stale version (ErrConcurrency).
func (r *EventRepo) Update(ctx context.Context, e *Event) error {
	const q = `UPDATE events
	           SET name = ?, starts_at = ?, description = ?, venue_id = ?, event_type_id = ?, image_url = ?, version = version + 1
	           WHERE id = ? AND version = ?`
	res, err := r.db.ExecContext(ctx, q,
		e.Name, e.StartsAt, e.Description, e.VenueID, e.EventTypeID, e.ImageURL, // SET
		e.ID, e.Version, // WHERE (record + token)
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		e.Version++
		return nil
	}

	const qExists = `SELECT 1 FROM events WHERE id = ? LIMIT 1`
	var one int
	if err := r.db.QueryRowContext(ctx, qExists, e.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEventNotFound
		}
		return err
	}
	return ErrConcurrency // row exists but values moved on since the read
}

// HasBookings reports whether any booking still references the event.
func (r *EventRepo) HasBookings(ctx context.Context, id uint64) (bool, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE event_id = ?`, id).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes an event provided no bookings reference it.  The check
// and the delete run in one transaction so a booking created in between
// cannot slip through. If the event does not exist, ErrEventNotFound is
// returned. If any bookings exist for the event, the deletion is aborted
// and ErrConflict is returned.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	// Ensure rollback or commit at the end
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	var one int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM events WHERE id = ?`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrEventNotFound
		}
		return err
	}

	var resCount int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE event_id = ?`, id).Scan(&resCount); err != nil {
		return err
	}
	if resCount > 0 {
		err = ErrConflict
		return err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id); err != nil {
		if isRestrictViolation(err) {
			err = ErrConflict
		}
		return err
	}
	return nil
}
