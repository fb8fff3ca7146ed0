// Package client talks to the URL shortener backend.
//
// Every operation collapses failures into a plain result: a ShortenResult
// with an error message, an empty slice, an absent summary or false. Callers
// never see transport errors, and nothing is retried or cached.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"url-shortener-console/internal/domain"
	"url-shortener-console/internal/metrics"
	"url-shortener-console/pkg/logger"
)

// ErrConnect is the message shown when the backend could not be reached
// or did not answer with JSON.
const ErrConnect = "Failed to connect to server"

const (
	opShorten   = "shorten"
	opList      = "list"
	opAnalytics = "analytics"
	opDelete    = "delete"
)

// Client is an HTTP client for the shortener API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the backend at baseURL.
// A nil httpClient means http.DefaultClient; a nil logger discards logs.
func NewClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// BaseURL returns the backend address the client was configured with
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Wire shapes of the backend responses

type shortenRequest struct {
	OriginalURL string `json:"originalUrl"`
}

type shortenResponse struct {
	Success bool              `json:"success"`
	Data    *domain.ShortLink `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
}

type listResponse struct {
	Success bool               `json:"success"`
	Data    []domain.ShortLink `json:"data"`
}

type analyticsResponse struct {
	Success bool                     `json:"success"`
	Data    *domain.AnalyticsSummary `json:"data"`
}

type deleteResponse struct {
	Success bool `json:"success"`
}

// errDecode marks a response body that was not the JSON we expected
var errDecode = errors.New("malformed response body")

// Shorten submits originalURL for shortening
func (c *Client) Shorten(ctx context.Context, originalURL string) domain.ShortenResult {
	body, err := json.Marshal(shortenRequest{OriginalURL: originalURL})
	if err != nil {
		return domain.ShortenResult{Error: ErrConnect}
	}

	var resp shortenResponse
	if err := c.do(ctx, opShorten, http.MethodPost, "/api/shorten", body, &resp); err != nil {
		return domain.ShortenResult{Error: ErrConnect}
	}
	c.record(opShorten, resp.Success)

	return domain.ShortenResult{
		Success: resp.Success,
		Link:    resp.Data,
		Error:   resp.Error,
	}
}

// ListAll returns every short link, or an empty slice on any failure
func (c *Client) ListAll(ctx context.Context) []domain.ShortLink {
	var resp listResponse
	if err := c.do(ctx, opList, http.MethodGet, "/api/urls", nil, &resp); err != nil {
		return []domain.ShortLink{}
	}
	c.record(opList, resp.Success)

	if !resp.Success || resp.Data == nil {
		return []domain.ShortLink{}
	}
	return resp.Data
}

// GetAnalytics returns the click summary for shortCode.
// The second result is false on any failure, including not found.
func (c *Client) GetAnalytics(ctx context.Context, shortCode string) (*domain.AnalyticsSummary, bool) {
	var resp analyticsResponse
	path := "/api/analytics/" + url.PathEscape(shortCode)
	if err := c.do(ctx, opAnalytics, http.MethodGet, path, nil, &resp); err != nil {
		return nil, false
	}
	c.record(opAnalytics, resp.Success)

	if !resp.Success || resp.Data == nil {
		return nil, false
	}
	if resp.Data.RecentClicks == nil {
		resp.Data.RecentClicks = []domain.ClickEvent{}
	}
	return resp.Data, true
}

// DeleteByCode deletes the link for shortCode and reports whether the
// backend confirmed it
func (c *Client) DeleteByCode(ctx context.Context, shortCode string) bool {
	var resp deleteResponse
	path := "/api/urls/" + url.PathEscape(shortCode)
	if err := c.do(ctx, opDelete, http.MethodDelete, path, nil, &resp); err != nil {
		return false
	}
	c.record(opDelete, resp.Success)
	return resp.Success
}

// do performs one request and decodes the JSON body into out regardless of
// the HTTP status. Failures are logged and counted here.
func (c *Client) do(ctx context.Context, op, method, path string, body []byte, out any) error {
	start := time.Now()
	log := logger.FromContext(ctx, c.logger).With("operation", op)

	err := c.roundTrip(ctx, method, path, body, out)
	elapsed := time.Since(start)

	switch {
	case err == nil:
		metrics.BackendCallDuration.WithLabelValues(op).Observe(elapsed.Seconds())
		return nil
	case errors.Is(err, errDecode):
		metrics.ObserveBackendCall(op, metrics.OutcomeDecodeError, elapsed)
	default:
		metrics.ObserveBackendCall(op, metrics.OutcomeTransportError, elapsed)
	}

	log.Error("Backend request failed",
		"method", method,
		"path", path,
		"duration_ms", elapsed.Milliseconds(),
		"error", err,
	)
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requestID, ok := logger.RequestIDFromContext(ctx); ok {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: status %d: %v", errDecode, resp.StatusCode, err)
	}
	return nil
}

// record counts a decoded response by whether the backend reported success
func (c *Client) record(op string, success bool) {
	outcome := metrics.OutcomeOK
	if !success {
		outcome = metrics.OutcomeRejected
	}
	metrics.BackendCallsTotal.WithLabelValues(op, outcome).Inc()
}
