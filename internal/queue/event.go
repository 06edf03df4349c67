// Package queue defines message payloads exchanged over the message broker
// and the publisher that emits them.
package queue

// BookingCreatedEvent is published when a booking is successfully persisted.
// It contains enough information for downstream consumers to log, notify, or
// trigger analytics without querying the primary database.
type BookingCreatedEvent struct {
	BookingID       uint64 `json:"booking_id"`
	EventID         uint64 `json:"event_id"`
	EventName       string `json:"event_name"`
	VenueID         uint64 `json:"venue_id"`
	VenueName       string `json:"venue_name"`
	CustomerName    string `json:"customer_name"`
	CustomerContact string `json:"customer_contact"`
	TicketCount     uint32 `json:"ticket_count"`
	BookedAt        string `json:"booked_at"`
}
