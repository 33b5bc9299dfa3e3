package domain

import "time"

// Beach is a curated beach listing managed by the admin back-office.
type Beach struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Region       string    `json:"region" db:"region"`
	Description  string    `json:"description" db:"description"`
	Latitude     float64   `json:"latitude" db:"latitude"`
	Longitude    float64   `json:"longitude" db:"longitude"`
	BlueFlag     bool      `json:"blue_flag" db:"blue_flag"`
	HasLifeguard bool      `json:"has_lifeguard" db:"has_lifeguard"`
	ImageURL     *string   `json:"image_url,omitempty" db:"image_url"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
