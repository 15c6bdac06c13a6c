// Package searchclient talks to the journey search backend: station list,
// itinerary search and liveness.
package searchclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"trajetviz.dev/internal/clock"
	"trajetviz.dev/internal/itinerary"
	"trajetviz.dev/internal/logging"
)

const maxBodySize = 5 * 1024 * 1024

// Observer receives the timing of every backend call.
type Observer interface {
	ObserveBackend(endpoint string, d time.Duration, err error)
}

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("search backend %s returned %s", e.Endpoint, e.Status)
}

// BackendError is returned when the backend answers 2xx but reports a
// non-success status in the payload.
type BackendError struct {
	Status  string
	Message string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("search backend reported %s: %s", e.Status, e.Message)
}

// Query is one itinerary search.
type Query struct {
	Depart  string
	Arrivee string
	Date    time.Time
}

type searchRequest struct {
	Depart  string `json:"depart"`
	Arrivee string `json:"arrivee"`
	Date    string `json:"date"`
}

type Client struct {
	baseURL  string
	http     *http.Client
	logger   *slog.Logger
	observer Observer
	timeout  time.Duration
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) { client.http = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(client *Client) { client.logger = l }
}

func WithObserver(o Observer) Option {
	return func(client *Client) { client.observer = o }
}

// WithTimeout bounds every call, overriding the HTTP client's own timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) { client.timeout = d }
}

// New returns a client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 10 * time.Second,
				IdleConnTimeout:       90 * time.Second,
			},
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		httpClient := *c.http
		httpClient.Timeout = c.timeout
		c.http = &httpClient
	}
	c.logger = c.logger.With(slog.String("component", "search_client"))
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Search posts q to /search and decodes the payload. Trips are not
// validated here; call Trips on the result.
func (c *Client) Search(ctx context.Context, q Query) (*itinerary.SearchResponse, error) {
	payload, err := json.Marshal(searchRequest{
		Depart:  q.Depart,
		Arrivee: q.Arrivee,
		Date:    q.Date.Format(clock.SearchLayout),
	})
	if err != nil {
		return nil, fmt.Errorf("encode search request: %w", err)
	}

	var resp *itinerary.SearchResponse
	err = c.do(ctx, http.MethodPost, "/search", bytes.NewReader(payload), func(body io.Reader) error {
		decoded, err := itinerary.DecodeSearchResponse(body)
		if err != nil {
			return err
		}
		resp = decoded
		return nil
	})
	if err != nil {
		return nil, err
	}

	if resp.Status != "" && resp.Status != "success" {
		return nil, &BackendError{Status: resp.Status, Message: resp.Message}
	}
	return resp, nil
}

// Stations returns the station names the backend knows.
func (c *Client) Stations(ctx context.Context) ([]string, error) {
	var payload struct {
		Status   string   `json:"status"`
		Stations []string `json:"stations"`
	}
	err := c.do(ctx, http.MethodGet, "/stations", nil, func(body io.Reader) error {
		if err := json.NewDecoder(body).Decode(&payload); err != nil {
			return fmt.Errorf("decode stations response: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if payload.Stations == nil {
		return []string{}, nil
	}
	return payload.Stations, nil
}

// Healthy reports whether the backend root answers 2xx.
func (c *Client) Healthy(ctx context.Context) bool {
	err := c.do(ctx, http.MethodGet, "/", nil, func(io.Reader) error { return nil })
	return err == nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader, decode func(io.Reader) error) (err error) {
	start := time.Now()
	defer func() {
		if c.observer != nil {
			c.observer.ObserveBackend(endpointLabel(endpoint), time.Since(start), err)
		}
	}()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("create %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("search backend %s: %w", endpoint, err)
	}
	defer logging.SafeCloseWithLogging(resp.Body, c.logger, "http_response_body")

	c.logger.Debug("backend response",
		slog.String("method", method),
		slog.String("endpoint", endpoint),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return fmt.Errorf("read %s response: %w", endpoint, err)
	}
	if len(data) > maxBodySize {
		return fmt.Errorf("search backend %s response exceeds size limit of %d bytes", endpoint, maxBodySize)
	}

	return decode(bytes.NewReader(data))
}

func endpointLabel(endpoint string) string {
	switch endpoint {
	case "/":
		return "health"
	default:
		return strings.TrimPrefix(endpoint, "/")
	}
}
