// Package client is a thin HTTP client for the event calendar API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/Shivanand-hulikatti/event-calendar/internal/model"
)

// DefaultTimeout bounds every request. There are no retries.
const DefaultTimeout = 10 * time.Second

// Network failure messages shown to the user.
const (
	MsgTimeout     = "Request timeout. Please check your connection."
	MsgNetwork     = "Network error. Please check if the server is running."
	MsgUnreachable = "Unable to connect to server. Please try again later."
)

// APIError is a response from the server with a non-2xx status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// NetworkError means no response was received.
type NetworkError struct {
	Message string
	Err     error
}

func (e *NetworkError) Error() string { return e.Message }
func (e *NetworkError) Unwrap() error { return e.Err }

// Message returns the text to show the user for err: the server's error
// string, the normalized network message, or err itself.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.Message
	}
	return err.Error()
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// Client calls the /api/events endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List returns every event.
func (c *Client) List(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	if err := c.do(ctx, http.MethodGet, "/api/events", nil, &events); err != nil {
		return nil, err
	}
	if events == nil {
		events = []model.Event{}
	}
	return events, nil
}

// Get returns one event.
func (c *Client) Get(ctx context.Context, id string) (*model.Event, error) {
	var e model.Event
	if err := c.do(ctx, http.MethodGet, eventPath(id), nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Create posts a new event.
func (c *Client) Create(ctx context.Context, in model.EventInput) (*model.Event, error) {
	var e model.Event
	if err := c.do(ctx, http.MethodPost, "/api/events", in, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Update sends the fields set in in.
func (c *Client) Update(ctx context.Context, id string, in model.EventInput) (*model.Event, error) {
	var e model.Event
	if err := c.do(ctx, http.MethodPut, eventPath(id), in, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Delete removes an event and returns the deleted record.
func (c *Client) Delete(ctx context.Context, id string) (*model.Event, error) {
	var e model.Event
	if err := c.do(ctx, http.MethodDelete, eventPath(id), nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func eventPath(id string) string {
	return "/api/events/" + url.PathEscape(id)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return normalize(err)
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode >= http.StatusBadRequest {
		msg := env.Error
		if decodeErr != nil || msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}

// normalize maps transport failures onto the user-facing messages.
func normalize(err error) error {
	var ne net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &ne) && ne.Timeout():
		return &NetworkError{Message: MsgTimeout, Err: err}
	case errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.ECONNRESET), isDNSError(err):
		return &NetworkError{Message: MsgNetwork, Err: err}
	default:
		return &NetworkError{Message: MsgUnreachable, Err: err}
	}
}

func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}
