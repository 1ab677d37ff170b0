// Package common contains shared constants and sentinel errors used across
// AuthGate components.
package common

// AccessTokenHeaderName is the HTTP header key used to carry the access
// token on requests to protected endpoints. The client sends the raw token
// value under this key; there is no "Bearer " prefix.
const AccessTokenHeaderName = "token"
