package entity

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// ProxyParams represents validated request parameters for the RSS proxy
type ProxyParams struct {
	// FeedURL is the absolute http(s) URL of the feed to fetch
	FeedURL string

	// Sanitize determines if item bodies are passed through the HTML sanitizer
	Sanitize bool
}

// NewProxyParamsFromRequest parses and validates request parameters and creates a new ProxyParams
func NewProxyParamsFromRequest(r *http.Request) (*ProxyParams, error) {
	qp := r.URL.Query()

	feedURL := strings.TrimSpace(qp.Get("url"))

	if feedURL == "" {
		return nil, ErrMissingParameter
	}

	u, err := url.Parse(feedURL)

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParameter, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme must be http or https", ErrInvalidParameter)
	}

	if u.Host == "" {
		return nil, fmt.Errorf("%w: host is required", ErrInvalidParameter)
	}

	sanitize := false

	if s := qp.Get("sanitize"); s != "" {
		if s == "1" || strings.EqualFold(s, "true") {
			sanitize = true
		}
	}

	return &ProxyParams{
		FeedURL:  feedURL,
		Sanitize: sanitize,
	}, nil
}
