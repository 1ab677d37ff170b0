package api

import "errors"

var (
	ErrUnavailable   = errors.New("server unavailable")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrAccountExists = errors.New("cannot create account")
	ErrInvalidInput  = errors.New("invalid input")
)
