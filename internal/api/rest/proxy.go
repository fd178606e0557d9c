package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/nDmitry/rssproxy/internal/app"
	"github.com/nDmitry/rssproxy/internal/entity"
	"github.com/nDmitry/rssproxy/internal/metrics"
	"github.com/nDmitry/rssproxy/internal/parser"
)

// Fetcher retrieves a remote feed document
type Fetcher interface {
	Fetch(ctx context.Context, feedURL string) (*entity.RawDocument, error)
}

// Parser extracts normalized items from a feed document
type Parser interface {
	Parse(doc string) ([]entity.FeedItem, error)
}

// errorResponse is the body of every failed request
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ProxyHandler fetches a feed on behalf of the caller and returns its items as JSON
type ProxyHandler struct {
	fetcher Fetcher
	parser  Parser
	logger  *slog.Logger
}

// NewProxyHandler creates a new ProxyHandler and sets up its routes on mux
func NewProxyHandler(mux *http.ServeMux, f Fetcher, p Parser) *ProxyHandler {
	handler := &ProxyHandler{
		fetcher: f,
		parser:  p,
		logger:  app.Logger(),
	}

	mux.HandleFunc("GET /rss-proxy", handler.GetFeed)

	return handler
}

// GetFeed handles requests for a normalized feed
func (h *ProxyHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params, err := entity.NewProxyParamsFromRequest(r)

	if err != nil {
		h.handleError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "RSS proxy request received", "url", params.FeedURL, "sanitize", params.Sanitize)

	start := time.Now()
	doc, err := h.fetcher.Fetch(ctx, params.FeedURL)

	if err != nil {
		metrics.RecordFetch(classify(err).outcome, time.Since(start).Seconds(), 0)
		h.handleError(ctx, w, err)
		return
	}

	metrics.RecordFetch("ok", time.Since(start).Seconds(), doc.Length)

	items, err := h.parser.Parse(doc.Body)

	if err != nil {
		h.handleError(ctx, w, fmt.Errorf("%w: %w", entity.ErrParse, err))
		return
	}

	if items == nil {
		items = []entity.FeedItem{}
	}

	h.logger.InfoContext(ctx, "Parsed feed", "url", params.FeedURL, "items", len(items))
	metrics.RecordParse(len(items))

	if params.Sanitize {
		items = parser.SanitizeItems(items)
	}

	h.serveJSON(ctx, w, http.StatusOK, items)
	metrics.RecordRequest("ok")
}

// handleError maps err onto a status code and responds with a structured error body
func (h *ProxyHandler) handleError(ctx context.Context, w http.ResponseWriter, err error) {
	f := classify(err)

	h.logger.ErrorContext(ctx, "Request error", "error", err, "status", f.status, "outcome", f.outcome)
	metrics.RecordRequest(f.outcome)

	h.serveJSON(ctx, w, f.status, errorResponse{
		Error:   f.message,
		Details: err.Error(),
	})
}

// serveJSON encodes body up front so a failed encoding never leaves partial JSON on the wire
func (h *ProxyHandler) serveJSON(ctx context.Context, w http.ResponseWriter, statusCode int, body any) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(body); err != nil {
		h.logger.ErrorContext(ctx, "failed to encode a response", "error", err, "status", statusCode)

		buf.Reset()
		buf.WriteString(`{"error":"Internal server error"}` + "\n")
		statusCode = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.ErrorContext(ctx, "failed to write a response", "error", err)
	}
}

// failure describes how an error is reported to the caller
type failure struct {
	status  int
	message string
	// Metrics label.
	outcome string
}

func classify(err error) failure {
	var upstreamErr *entity.UpstreamHTTPError

	switch {
	case errors.Is(err, entity.ErrMissingParameter):
		return failure{http.StatusBadRequest, "Missing RSS feed URL", "missing_parameter"}
	case errors.Is(err, entity.ErrInvalidParameter):
		return failure{http.StatusBadRequest, "Invalid RSS feed URL", "invalid_parameter"}
	case errors.Is(err, entity.ErrFetchTimeout):
		return failure{http.StatusGatewayTimeout, "Timed out fetching RSS feed", "fetch_timeout"}
	case errors.As(err, &upstreamErr):
		return failure{http.StatusBadGateway, "Failed to fetch RSS feed", "upstream_status"}
	case errors.Is(err, entity.ErrEmptyResponse):
		return failure{http.StatusBadGateway, "RSS feed returned an empty response", "empty_response"}
	case errors.Is(err, entity.ErrFetch):
		return failure{http.StatusBadGateway, "Failed to fetch RSS feed", "fetch_failed"}
	case errors.Is(err, entity.ErrParse):
		return failure{http.StatusBadGateway, "Failed to parse RSS feed", "parse_failed"}
	default:
		return failure{http.StatusInternalServerError, "Internal server error", "internal"}
	}
}
