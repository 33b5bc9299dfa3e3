package domain

import "time"

// Event is a happening published by an event-producer account.
type Event struct {
	ID          int64     `json:"id" db:"id"`
	ProducerID  int64     `json:"producer_id" db:"producer_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Venue       string    `json:"venue" db:"venue"`
	StartsAt    time.Time `json:"starts_at" db:"starts_at"`
	EndsAt      time.Time `json:"ends_at" db:"ends_at"`
	PriceCents  int64     `json:"price_cents" db:"price_cents"`
	ImageURL    *string   `json:"image_url,omitempty" db:"image_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
