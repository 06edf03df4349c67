package repository

import (
	"context"
	"database/sql"
	"log"
	"time"
)

// eventTypeNames is the fixed category set.  The IDs are assigned
// explicitly so references to them stay stable across environments.
var eventTypeNames = []string{"Conference", "Wedding", "Concert", "Exhibition", "Corporate"}

// Seed performs the idempotent bootstrap of reference and demo data.  It
// is run once during process startup and is gated on explicit emptiness
// checks, so restarting the server never duplicates rows:
//
//   - the five event type categories are inserted when event_types is empty
//   - demo venues, events and bookings are inserted only when all three
//     tables are empty
func Seed(ctx context.Context, db *sql.DB) error {
	var typeCount int64
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM event_types`).Scan(&typeCount); err != nil {
		return err
	}
	if typeCount == 0 {
		for i, name := range eventTypeNames {
			if _, err := db.ExecContext(ctx,
				`INSERT INTO event_types (id, name) VALUES (?, ?)`, i+1, name); err != nil {
				return err
			}
		}
		log.Printf("seeded %d event types", len(eventTypeNames))
	}

	var venueCount, eventCount, bookingCount int64
	if err := db.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM venues), (SELECT COUNT(*) FROM events), (SELECT COUNT(*) FROM bookings)`,
	).Scan(&venueCount, &eventCount, &bookingCount); err != nil {
		return err
	}
	if venueCount > 0 || eventCount > 0 || bookingCount > 0 {
		return nil // DB has been seeded
	}

	venues := []struct {
		name, location string
		capacity       uint32
	}{
		{"Grand Ballroom", "Downtown", 500},
		{"Conference Center", "Business District", 300},
		{"Garden Pavilion", "City Park", 200},
	}
	venueIDs := make([]uint64, len(venues))
	for i, v := range venues {
		res, err := db.ExecContext(ctx,
			`INSERT INTO venues (name, location, capacity) VALUES (?, ?, ?)`,
			v.name, v.location, v.capacity)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		venueIDs[i] = uint64(id)
	}

	now := time.Now().UTC()
	events := []struct {
		name, description string
		startsAt          time.Time
		venueID           uint64
		eventTypeID       uint64
	}{
		{"Tech Conference", "Annual technology conference", now.AddDate(0, 0, 30), venueIDs[1], 1},
		{"Summer Wedding", "Outdoor summer wedding", now.AddDate(0, 0, 45), venueIDs[2], 2},
		{"Music Festival", "Weekend music festival", now.AddDate(0, 0, 60), venueIDs[0], 3},
	}
	eventIDs := make([]uint64, len(events))
	for i, e := range events {
		res, err := db.ExecContext(ctx,
			`INSERT INTO events (name, starts_at, description, venue_id, event_type_id) VALUES (?, ?, ?, ?, ?)`,
			e.name, e.startsAt, e.description, e.venueID, e.eventTypeID)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		eventIDs[i] = uint64(id)
	}

	bookings := []struct {
		customerName, customerContact string
	}{
		{"John Smith", "555-1234"},
		{"Sarah Johnson", "555-5678"},
		{"Mike Brown", "555-9012"},
	}
	for i, b := range bookings {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO bookings (event_id, venue_id, booked_at, customer_name, customer_contact, ticket_count)
			 VALUES (?, ?, ?, ?, ?, 1)`,
			eventIDs[i], events[i].venueID, now, b.customerName, b.customerContact); err != nil {
			return err
		}
	}

	log.Println("seeded demo venues, events and bookings")
	return nil
}
