// Package models holds the server-side data model.
package models

import "time"

// User is a registered account. UserName and Email are each unique across
// all users. UserName is case-sensitive as entered; Email is lower-cased
// before storage and lookup. PasswordHash is the bcrypt digest of the
// password; the plaintext is never persisted.
//
// Users are created once at signup and never mutated afterwards.
type User struct {
	ID           string
	UserName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
