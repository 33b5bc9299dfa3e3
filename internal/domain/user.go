package domain

import "time"

// UserType classifies what a user does on the platform. It is chosen
// during profile completion and drives access to role-specific features.
type UserType string

const (
	UserTypeUnset            UserType = "unset"
	UserTypeTourist          UserType = "tourist"
	UserTypeGuide            UserType = "guide"
	UserTypeEventProducer    UserType = "event_producer"
	UserTypeBoatTourOperator UserType = "boat_tour_operator"
	UserTypeAdmin            UserType = "admin"
)

// Valid reports whether t is a known user type.
func (t UserType) Valid() bool {
	switch t {
	case UserTypeUnset, UserTypeTourist, UserTypeGuide,
		UserTypeEventProducer, UserTypeBoatTourOperator, UserTypeAdmin:
		return true
	}
	return false
}

// User represents a platform account. Accounts are created on first
// Google sign-in with an incomplete profile; onboarding fills in the
// name and user type and flips IsProfileComplete.
type User struct {
	ID                int64     `json:"id" db:"id"`
	Email             string    `json:"email" db:"email"`
	FirstName         string    `json:"first_name" db:"first_name"`
	LastName          string    `json:"last_name" db:"last_name"`
	ImageURL          *string   `json:"image_url,omitempty" db:"image_url"`
	UserType          UserType  `json:"user_type" db:"user_type"`
	IsAdmin           bool      `json:"is_admin" db:"is_admin"`
	IsProfileComplete bool      `json:"is_profile_complete" db:"is_profile_complete"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// HasAdminAccess reports whether the user may use the admin back-office.
func (u User) HasAdminAccess() bool {
	return u.IsAdmin || u.UserType == UserTypeAdmin
}
