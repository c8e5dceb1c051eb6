package integration

import "errors"

var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrProviderDenied     = errors.New("provider denied authorization")
	ErrCSRFMismatch       = errors.New("state does not match")
	ErrTokenExchange      = errors.New("token exchange failed")
	ErrMissingCredentials = errors.New("no credentials found")
	ErrUpstreamFetch      = errors.New("upstream fetch failed")
	ErrMalformedTimestamp = errors.New("malformed timestamp")
)
