package models

import "time"

// Session binds an opaque browser cookie to a bearer token for the
// remote API. The token itself never goes back to the browser after the
// one-time capture from the login-redirect URL.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"-"` // never serialized
	CreatedAt time.Time `json:"created_at"`
}
