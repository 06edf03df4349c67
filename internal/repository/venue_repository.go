// Package repository contains data access logic separated from HTTP handlers.
// This file defines the Venue model and repository methods for CRUD and lookup
// operations. A Venue represents a physical location that events are scheduled
// at and bookings are made against.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used to define custom error values
	"time"         // time holds row timestamps
)

// Venue represents a venue row persisted in the database. ImageURL is nil
// when no image has been uploaded for the venue. Version is the optimistic
// concurrency token: every successful update increments it, and updates
// carrying a stale version are rejected.
type Venue struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Capacity  uint32    `json:"capacity"`
	ImageURL  *string   `json:"image_url"`
	Version   uint32    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ErrVenueNotFound is returned when a venue cannot be found in the DB.
var ErrVenueNotFound = errors.New("venue not found")

// VenueRepo encapsulates all database queries related to venues.  It
// depends on a sql.DB connection which should be configured elsewhere.
type VenueRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.  This
// function allows dependency injection of the database in tests and at
// startup.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// Create inserts a new venue into the database.  On success the venue's
// ID field will be populated with the auto-generated value.  After the
// insert, a SELECT is executed to populate the Version, CreatedAt and
// UpdatedAt fields so that callers receive a fully populated record.
func (r *VenueRepo) Create(ctx context.Context, v *Venue) error {
	const qInsert = "INSERT INTO venues (name, location, capacity, image_url) VALUES (?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, v.Name, v.Location, v.Capacity, v.ImageURL)
	if err != nil {
		return err // propagate DB errors to the caller
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	v.ID = uint64(id)

	// Perform a follow-up SELECT to populate default fields (version, created_at, updated_at).
	const qSelect = "SELECT name, location, capacity, image_url, version, created_at, updated_at FROM venues WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, v.ID).Scan(
		&v.Name, &v.Location, &v.Capacity, &v.ImageURL, &v.Version, &v.CreatedAt, &v.UpdatedAt,
	)
}

// GetByID fetches a venue by its ID.  It returns ErrVenueNotFound if no
// row is found.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*Venue, error) {
	const q = "SELECT id, name, location, capacity, image_url, version, created_at, updated_at FROM venues WHERE id = ?"
	var v Venue
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&v.ID, &v.Name, &v.Location, &v.Capacity, &v.ImageURL, &v.Version, &v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &v, nil
}

// List returns all venues ordered by id.
func (r *VenueRepo) List(ctx context.Context) ([]*Venue, error) {
	const q = `SELECT id, name, location, capacity, image_url, version, created_at, updated_at
	           FROM venues ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Venue
	for rows.Next() {
		v := new(Venue)
		if err := rows.Scan(
			&v.ID, &v.Name, &v.Location, &v.Capacity, &v.ImageURL, &v.Version, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites the venue's mutable fields.  The UPDATE is guarded by
// the version token carried on the struct: when no row matches, a
// follow-up existence check disambiguates a missing row
// (ErrVenueNotFound) from a stale version (ErrConcurrency).  On success
// the struct's Version is advanced to the stored value.
func (r *VenueRepo) Update(ctx context.Context, v *Venue) error {
	const q = `UPDATE venues
	           SET name = ?, location = ?, capacity = ?, image_url = ?, version = version + 1
	           WHERE id = ? AND version = ?`
	res, err := r.db.ExecContext(ctx, q, v.Name, v.Location, v.Capacity, v.ImageURL, v.ID, v.Version)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		v.Version++
		return nil
	}

	// Determine whether the row is gone or was modified since it was read.
	const qExists = `SELECT 1 FROM venues WHERE id = ? LIMIT 1`
	var one int
	if err := r.db.QueryRowContext(ctx, qExists, v.ID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVenueNotFound
		}
		return err
	}
	return ErrConcurrency // row exists but carries a newer version
}

// Delete removes a venue by id.  There is deliberately no pre-check for
// dependent bookings here: the foreign keys on bookings and events are
// declared RESTRICT, and a violation of either surfaces as ErrConflict.
// ErrVenueNotFound is returned when no row was deleted.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM venues WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		if isRestrictViolation(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrVenueNotFound
	}
	return nil
}
