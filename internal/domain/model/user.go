package model

import (
	"time"
)

const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

// User mirrors the identity issued by the OIDC provider: the ID is the
// provider's subject and the profile fields are overwritten on every login.
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	ProfileImageURL string    `json:"profile_image_url"`
	Role            string    `json:"role"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
