package domain

import "time"

// Roles
const (
	RoleUser   = "user"
	RoleDealer = "dealer"
)

// Collection holds one document per user keyed by Firebase UID.
const Collection = "users"

// User is the profile document created at signup.
// Firebase UID is the primary identifier
type User struct {
	UID       string    `json:"uid" firestore:"uid"`
	FirstName string    `json:"firstName" firestore:"firstName"`
	LastName  string    `json:"lastName" firestore:"lastName"`
	Email     string    `json:"email" firestore:"email"`
	Country   string    `json:"country" firestore:"country"`
	Role      string    `json:"role" firestore:"role"`
	Phone     string    `json:"phone,omitempty" firestore:"phone,omitempty"`
	Location  string    `json:"location,omitempty" firestore:"location,omitempty"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// CreateUserRequest represents data needed to create a new user document
type CreateUserRequest struct {
	UID       string
	FirstName string
	LastName  string
	Email     string
	Country   string
	Role      string
}

// UpdateProfileRequest represents the editable profile fields
type UpdateProfileRequest struct {
	FirstName string
	LastName  string
	Country   string
	Role      string
	Phone     *string
	Location  *string
}

func ValidRole(role string) bool {
	return role == RoleUser || role == RoleDealer
}
