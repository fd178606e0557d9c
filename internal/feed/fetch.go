package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/nDmitry/rssproxy/internal/app"
	"github.com/nDmitry/rssproxy/internal/entity"
)

const acceptHeader = "application/rss+xml, application/xml, text/xml, */*"

// Fetcher retrieves feed documents, making exactly one attempt per call
type Fetcher struct {
	timeout     time.Duration
	userAgent   string
	maxBodySize int
	logger      *slog.Logger
}

// NewFetcher creates a Fetcher with a hard per-request timeout
func NewFetcher(timeout time.Duration, userAgent string, maxBodySize int) *Fetcher {
	return &Fetcher{
		timeout:     timeout,
		userAgent:   userAgent,
		maxBodySize: maxBodySize,
		logger:      app.Logger(),
	}
}

// Fetch downloads feedURL. The request is cancelled once the timeout elapses
// or ctx is done, releasing the underlying connection.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) (*entity.RawDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	// A fresh collector per call keeps requests independent and lets the same URL be fetched again.
	c := colly.NewCollector(
		colly.UserAgent(f.userAgent),
		colly.MaxBodySize(f.maxBodySize),
		colly.StdlibContext(ctx),
		colly.AllowURLRevisit(),
		colly.ParseHTTPErrorResponse(),
	)

	c.WithTransport(httpTransport)
	c.SetRequestTimeout(f.timeout)

	var doc *entity.RawDocument
	var statusCode int

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", acceptHeader)
	})

	c.OnResponse(func(r *colly.Response) {
		statusCode = r.StatusCode
		doc = &entity.RawDocument{
			URL:         feedURL,
			Body:        string(r.Body),
			ContentType: r.Headers.Get("Content-Type"),
			Length:      len(r.Body),
		}
	})

	if err := c.Visit(feedURL); err != nil {
		return nil, f.classify(ctx, feedURL, err)
	}

	if doc == nil {
		return nil, entity.ErrEmptyResponse
	}

	f.logger.InfoContext(ctx, "Upstream responded", "url", feedURL, "status", statusCode)

	if statusCode < 200 || statusCode >= 300 {
		return nil, &entity.UpstreamHTTPError{StatusCode: statusCode}
	}

	if doc.Length == 0 {
		return nil, entity.ErrEmptyResponse
	}

	f.logger.InfoContext(ctx, "Fetched feed",
		"url", feedURL,
		"bytes", doc.Length,
		"content_type", doc.ContentType,
	)

	return doc, nil
}

// classify maps a transport failure onto the fetch error taxonomy
func (f *Fetcher) classify(ctx context.Context, feedURL string, err error) error {
	f.logger.ErrorContext(ctx, "Could not fetch feed", "url", feedURL, "error", err)

	var netErr net.Error

	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w after %s: %w", entity.ErrFetchTimeout, f.timeout, err)
	}

	return fmt.Errorf("%w %s: %w", entity.ErrFetch, feedURL, err)
}
