// Package api implements the HTTP client for the AuthGate backend.
package api

import "context"

// Profile is the authenticated account as reported by the server.
type Profile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Client abstracts the backend API so the CLI can be tested against a fake.
// SignUp and Login return a bearer token on success.
type Client interface {
	SignUp(ctx context.Context, username, email string, password []byte) (string, error)
	Login(ctx context.Context, email string, password []byte) (string, error)
	Me(ctx context.Context, token string) (*Profile, error)
}
