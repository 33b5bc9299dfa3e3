package domain

import "time"

// BoatTour is a bookable tour owned by a boat-tour operator account.
type BoatTour struct {
	ID              int64     `json:"id" db:"id"`
	OperatorID      int64     `json:"operator_id" db:"operator_id"`
	Name            string    `json:"name" db:"name"`
	Description     string    `json:"description" db:"description"`
	DepartureHarbor string    `json:"departure_harbor" db:"departure_harbor"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes"`
	Capacity        int       `json:"capacity" db:"capacity"`
	PriceCents      int64     `json:"price_cents" db:"price_cents"`
	ImageURL        *string   `json:"image_url,omitempty" db:"image_url"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
