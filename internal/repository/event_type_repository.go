package repository

import (
	"context"
	"database/sql"
	"errors"
)

// EventType represents a category an event belongs to.  The set of
// categories is seeded at bootstrap and treated as immutable afterwards.
type EventType struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ErrEventTypeNotFound is returned when an event type cannot be found in the DB.
var ErrEventTypeNotFound = errors.New("event type not found")

// EventTypeRepo encapsulates database queries for event types.
type EventTypeRepo struct {
	db *sql.DB
}

// NewEventTypeRepo constructs an EventTypeRepo with the given DB handle.
func NewEventTypeRepo(db *sql.DB) *EventTypeRepo {
	return &EventTypeRepo{db: db}
}

// List returns all event types ordered by id.
func (r *EventTypeRepo) List(ctx context.Context) ([]*EventType, error) {
	const q = `SELECT id, name FROM event_types ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*EventType
	for rows.Next() {
		t := new(EventType)
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches an event type by its ID.  It returns
// ErrEventTypeNotFound if there is no matching row.
func (r *EventTypeRepo) GetByID(ctx context.Context, id uint64) (*EventType, error) {
	const q = `SELECT id, name FROM event_types WHERE id = ?`
	var t EventType
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&t.ID, &t.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventTypeNotFound
		}
		return nil, err
	}
	return &t, nil
}
