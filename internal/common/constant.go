// Package common contains shared constants and sentinel errors used across
// locator components.
package common

const (
	// AuthorizationHeaderName carries the bearer token on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the token in the Authorization header value.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName correlates client log lines with server log lines.
	RequestIDHeaderName = "X-Request-ID"

	// AuthBlobKey is the persisted key-value entry holding the session.
	AuthBlobKey = "auth"
)
