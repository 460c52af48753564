package model

import (
	"time"
)

// Session is a database-resident login session addressed by the id inside
// the signed cookie. Payload is opaque JSON; the portal process keeps no
// session state in memory, so any instance can serve any request.
type Session struct {
	ID        string    `json:"id"`
	Payload   []byte    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionPayload is what the portal stores inside Session.Payload: the
// owning user and the provider tokens needed for refresh.
type SessionPayload struct {
	UserID       string    `json:"user_id"`
	AccessToken  string    `json:"access_token,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenExpiry  time.Time `json:"token_expiry,omitempty"`
}
