package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tansoy/restkit/logger"
	"github.com/tansoy/restkit/observability"
)

// Client is a configurable HTTP client with built-in auth and TLS.
// It is immutable after construction and safe for concurrent use.
type Client struct {
	httpClient *http.Client
	config     Config

	log            *logger.Logger
	metrics        *observability.Metrics
	tracing        bool
	stampRequestID bool
}

// New creates a new HTTP client with the given configuration.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()

	// Apply TLS configuration
	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		if tlsCfg != nil {
			transport.TLSClientConfig = tlsCfg
		}
	}

	c := &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		config: cfg,
	}

	// Apply options
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (c *Client) Unwrap() *http.Client {
	return c.httpClient
}

// Name returns the configured client name.
func (c *Client) Name() string {
	return c.config.Name
}

// GetConfig returns the client's configuration.
func (c *Client) GetConfig() Config {
	return c.config
}

// Close releases idle connections held by the client.
func (c *Client) Close(_ context.Context) error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// Do executes an HTTP request and returns the complete response.
// Non-2xx responses return both the response and a classified *Error
// carrying the peer's status, headers, and body.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if c.tracing {
		var span trace.Span
		ctx, span = observability.StartSpan(ctx, c.config.Name+".request")
		defer span.End()
		observability.SetSpanAttributes(ctx,
			attribute.String("http.method", req.Method),
			attribute.String("http.path", req.Path),
		)
	}
	if c.metrics != nil {
		c.metrics.RecordRequestStart(ctx)
	}

	start := time.Now()
	resp, err := c.executeRequest(ctx, req)
	duration := time.Since(start)

	status := "error"
	if err == nil {
		status = "ok"
	}
	if c.tracing {
		if resp != nil {
			observability.SetSpanAttributes(ctx, attribute.Int("http.status_code", resp.StatusCode))
		}
		if err != nil {
			observability.SetSpanError(ctx, err)
		}
	}
	if c.metrics != nil {
		c.metrics.RecordRequestEnd(ctx, c.config.Name, req.Method, status, duration)
	}
	if c.log != nil {
		fields := logger.Fields(
			"client", c.config.Name,
			"method", req.Method,
			"path", req.Path,
			"duration", duration.String(),
		)
		if resp != nil {
			fields["status"] = resp.StatusCode
		}
		if err != nil {
			fields["error"] = err.Error()
			c.log.Debug("request failed", fields)
		} else {
			c.log.Debug("request ok", fields)
		}
	}

	return resp, err
}

// executeRequest builds and sends the HTTP request.
func (c *Client) executeRequest(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, NewTimeoutError(err)
		}
		return nil, NewConnectionError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewConnectionError(fmt.Errorf("read response body: %w", err))
	}

	headers := flattenHeaders(resp.Header)
	result := &Response{
		StatusCode: resp.StatusCode,
		Headers:    headers,
		Body:       body,
	}

	if classErr := ClassifyStatusCode(resp.StatusCode, headers, body); classErr != nil {
		return result, classErr
	}

	return result, nil
}

// buildRequest constructs an *http.Request from the client config and request.
func (c *Client) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	// Resolve URL
	url := req.Path
	if c.config.BaseURL != "" && !strings.HasPrefix(req.Path, "http://") && !strings.HasPrefix(req.Path, "https://") {
		url = strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(req.Path, "/")
	}

	// Build body
	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("encode body: %v", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, body)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("create request: %v", err))
	}

	// Apply query parameters
	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	// Apply default headers
	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}

	// Apply request-specific headers (override defaults)
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	// Set content-type if body present and not already set
	if body != nil && httpReq.Header.Get("Content-Type") == "" && contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	// Stamp a request id unless the caller set one
	if c.stampRequestID && httpReq.Header.Get(requestIDHeader) == "" {
		httpReq.Header.Set(requestIDHeader, uuid.NewString())
	}

	// Apply auth: request-level overrides client-level
	auth := c.config.Auth
	if req.Auth != nil {
		auth = req.Auth
	}
	auth.apply(httpReq)

	return httpReq, nil
}

// encodeBody converts a body value into an io.Reader and content type.
func encodeBody(body any) (io.Reader, string, error) {
	if body == nil {
		return nil, "", nil
	}
	switch v := body.(type) {
	case io.Reader:
		return v, "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	case string:
		return strings.NewReader(v), "text/plain", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
