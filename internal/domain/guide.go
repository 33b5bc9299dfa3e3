package domain

import "time"

// GuideProfile is the public profile of a guide account. Verification
// is granted by an admin and cannot be self-set.
type GuideProfile struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	Bio         string    `json:"bio" db:"bio"`
	Languages   string    `json:"languages" db:"languages"`
	Specialties string    `json:"specialties" db:"specialties"`
	Phone       string    `json:"phone" db:"phone"`
	Verified    bool      `json:"verified" db:"verified"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
