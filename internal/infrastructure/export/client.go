package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	jsoniter "github.com/json-iterator/go"

	"github.com/reglet-dev/chartopts/internal/application/dto"
	"github.com/reglet-dev/chartopts/internal/domain/schema"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	defaultTimeout = 30 * time.Second
	defaultRetries = 3
	// maxResponseSize bounds rendered output read into memory (64MB).
	maxResponseSize = 64 << 20
)

// StatusError is a non-2xx answer from the export server.
type StatusError struct {
	Body       string
	StatusCode int
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("export server returned %d", e.StatusCode)
	}
	return fmt.Sprintf("export server returned %d: %s", e.StatusCode, e.Body)
}

// Client posts export requests to a server.
type Client struct {
	http     *retryablehttp.Client
	logger   *slog.Logger
	server   Server
	user     string
	password string
}

// Option configures a Client.
type Option func(*Client)

// WithBasicAuth authenticates every request. Both parts must be non-empty.
func WithBasicAuth(user, password string) Option {
	return func(c *Client) {
		c.user, c.password = user, password
	}
}

// WithRetries sets how many times failed requests are retried.
func WithRetries(n int) Option {
	return func(c *Client) {
		c.http.RetryMax = n
	}
}

// WithTimeout bounds each attempt.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.HTTPClient.Timeout = d
	}
}

// WithBackoff sets the wait bounds between retries.
func WithBackoff(minWait, maxWait time.Duration) Option {
	return func(c *Client) {
		c.http.RetryWaitMin, c.http.RetryWaitMax = minWait, maxWait
	}
}

// WithLogger sets the logger for the client and its retries.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for server.
func NewClient(server Server, opts ...Option) (*Client, error) {
	if err := server.Validate(); err != nil {
		return nil, err
	}

	hc := retryablehttp.NewClient()
	hc.RetryMax = defaultRetries
	hc.HTTPClient.Timeout = defaultTimeout
	// Hand the last response back so non-2xx bodies can be reported.
	hc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	c := &Client{http: hc, server: server, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	hc.Logger = c.logger
	return c, nil
}

// Server returns the server the client posts to.
func (c *Client) Server() Server {
	return c.server
}

// Render implements ports.Renderer.
func (c *Client) Render(ctx context.Context, req dto.RenderRequest) ([]byte, error) {
	rec, err := NewRequest(req)
	if err != nil {
		return nil, fmt.Errorf("invalid export settings: %w", err)
	}
	return c.export(ctx, rec, req.RequestID)
}

// Export posts an export request record and returns the rendered chart.
func (c *Client) Export(ctx context.Context, req *schema.Record) ([]byte, error) {
	return c.export(ctx, req, "")
}

func (c *Client) export(ctx context.Context, req *schema.Record, requestID string) ([]byte, error) {
	if req.Schema() != Request {
		return nil, fmt.Errorf("expected an %s record, got %s", Request.Name(), req.Schema().Name())
	}
	if err := missing(req); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(req.ToExternal())
	if err != nil {
		return nil, fmt.Errorf("failed to encode export request: %w", err)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.server.URL(), payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create export request: %w", err)
	}
	if requestID == "" {
		requestID = uuid.NewString()
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if c.user != "" && c.password != "" {
		httpReq.SetBasicAuth(c.user, c.password)
	}

	c.logger.Debug("posting export request", "url", c.server.URL(), "request_id", requestID, "bytes", len(payload))

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("export request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read export response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
