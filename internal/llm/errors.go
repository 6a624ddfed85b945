package llm

import "errors"

var (
	// ErrUpstreamUnavailable indicates the completion API is unreachable.
	ErrUpstreamUnavailable = errors.New("completion api unavailable")

	// ErrMissingToken indicates no bearer token is configured.
	ErrMissingToken = errors.New("completion api token not configured")
)
