// Package common contains shared constants and sentinel errors used across
// StaffKeeper components.
package common

const (
	// AuthorizationHeaderName is the HTTP header / gRPC metadata key carrying
	// the bearer credential on outbound requests.
	AuthorizationHeaderName = "authorization"

	// RequestIDHeaderName correlates a client call with backend logs.
	RequestIDHeaderName = "x-request-id"

	// BearerPrefix precedes the raw token in the authorization value.
	BearerPrefix = "Bearer "
)
