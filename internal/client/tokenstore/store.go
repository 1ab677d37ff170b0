// Package tokenstore persists the session token between CLI runs.
package tokenstore

import "errors"

// ErrNoToken is returned by Load when no token has been saved yet.
var ErrNoToken = errors.New("no saved token")

// Store caches a single bearer token.
type Store interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}
