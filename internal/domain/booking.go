package domain

import "time"

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking reserves seats on a boat tour or tickets for an event.
// Exactly one of TourID and EventID is set.
type Booking struct {
	ID         int64         `json:"id" db:"id"`
	Reference  string        `json:"reference" db:"reference"`
	TouristID  int64         `json:"tourist_id" db:"tourist_id"`
	TourID     *int64        `json:"tour_id,omitempty" db:"tour_id"`
	EventID    *int64        `json:"event_id,omitempty" db:"event_id"`
	PartySize  int           `json:"party_size" db:"party_size"`
	TotalCents int64         `json:"total_cents" db:"total_cents"`
	Status     BookingStatus `json:"status" db:"status"`
	BookedFor  time.Time     `json:"booked_for" db:"booked_for"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at" db:"updated_at"`
}
