package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingParameter is returned when the feed URL was not supplied
	ErrMissingParameter = errors.New("missing RSS feed URL")

	// ErrInvalidParameter is returned when the feed URL is not an absolute http(s) URL
	ErrInvalidParameter = errors.New("invalid RSS feed URL")

	// ErrFetchTimeout is returned when the upstream did not answer within the timeout budget
	ErrFetchTimeout = errors.New("feed fetch timed out")

	// ErrFetch is returned for network failures other than timeouts
	ErrFetch = errors.New("could not fetch feed")

	// ErrEmptyResponse is returned when the upstream answered with a zero-length body
	ErrEmptyResponse = errors.New("upstream returned an empty response")

	// ErrMalformedInput is returned when a document does not look like syndication markup
	ErrMalformedInput = errors.New("document is not RSS or Atom markup")

	// ErrParse wraps any parser failure surfaced by the gateway
	ErrParse = errors.New("could not parse feed")
)

// UpstreamHTTPError is returned when the remote server answered with a non-success status
type UpstreamHTTPError struct {
	StatusCode int
}

func (e *UpstreamHTTPError) Error() string {
	return fmt.Sprintf("upstream responded with status %d", e.StatusCode)
}
