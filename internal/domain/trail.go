package domain

import "time"

// TrailDifficulty grades a hiking trail.
type TrailDifficulty string

const (
	TrailEasy     TrailDifficulty = "easy"
	TrailModerate TrailDifficulty = "moderate"
	TrailHard     TrailDifficulty = "hard"
)

// Trail is a hiking trail listing managed by the admin back-office.
type Trail struct {
	ID              int64           `json:"id" db:"id"`
	Name            string          `json:"name" db:"name"`
	Region          string          `json:"region" db:"region"`
	Description     string          `json:"description" db:"description"`
	DistanceKm      float64         `json:"distance_km" db:"distance_km"`
	Difficulty      TrailDifficulty `json:"difficulty" db:"difficulty"`
	DurationMinutes int             `json:"duration_minutes" db:"duration_minutes"`
	ImageURL        *string         `json:"image_url,omitempty" db:"image_url"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}
