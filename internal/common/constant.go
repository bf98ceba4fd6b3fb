// Package common contains shared constants and sentinel errors used across
// the gallery client components.
package common

// Action tags understood by the Remote Action Endpoint.
const (
	ActionFetchApps      = "fetchApps"
	ActionRegisterApp    = "registerApp"
	ActionUpdateApp      = "updateApp"
	ActionDeleteApp      = "deleteApp"
	ActionVerifyPassword = "verifyPassword"
)

// MaxImages caps the number of screenshots attached to one entry.
const MaxImages = 3

// DefaultDeniedAuthor is the reserved author name hidden from the gallery.
const DefaultDeniedAuthor = "쿠효정"

// PlainTextContentType is sent on every mutation so the endpoint does not
// trigger a CORS pre-flight.
const PlainTextContentType = "text/plain;charset=utf-8"

// RequestIDHeaderName carries the per-request correlation id.
const RequestIDHeaderName = "X-Request-ID"
