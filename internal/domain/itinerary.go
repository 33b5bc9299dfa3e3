package domain

import "time"

// Itinerary is a generated trip plan kept for the requesting user.
// The text comes from an external generation service and is stored
// verbatim together with the model that produced it.
type Itinerary struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Region    string    `json:"region" db:"region"`
	Days      int       `json:"days" db:"days"`
	Interests string    `json:"interests" db:"interests"`
	Content   string    `json:"content" db:"content"`
	Model     string    `json:"model" db:"model"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
