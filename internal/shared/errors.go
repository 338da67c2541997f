package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotConfigured indicates the credential record is missing from the secret store.
	ErrNotConfigured = errors.New("credentials not configured")
	// ErrInvalidRange indicates day bounds outside the month for an aggregation window.
	ErrInvalidRange = errors.New("invalid day range")
	// ErrUpstreamUnavailable indicates the warehouse did not answer within the query timeout.
	ErrUpstreamUnavailable = errors.New("warehouse unavailable")
	// ErrQueryFailed indicates the warehouse rejected a query.
	ErrQueryFailed = errors.New("warehouse query failed")
	// ErrCSRFTokenMissing occurs when CSRF token missing.
	ErrCSRFTokenMissing = errors.New("csrf token missing")
	// ErrCSRFTokenMismatch occurs when CSRF tokens do not match.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
)
