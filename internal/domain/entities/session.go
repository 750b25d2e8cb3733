package entities

import "time"

// User identifies the authenticated patient.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Session is the authenticated state persisted across portal restarts.
// Token mirrors the upstream bearer token under its own storage key; the
// remaining fields round-trip as one serialized record.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	User      User      `json:"user"`
	Loading   bool      `json:"loading"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResult is the upstream sign-in response.
type AuthResult struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
}
