package httpclient

import (
	"github.com/tansoy/restkit/logger"
	"github.com/tansoy/restkit/observability"
)

// requestIDHeader is the header stamped by WithRequestID.
const requestIDHeader = "X-Request-ID"

// Option configures optional per-request hooks on a Client.
// All hooks are off by default; none of them alter the request/response
// contract.
type Option func(*Client)

// WithLogger enables debug logging of each request (method, path,
// status, duration) on the given logger.
func WithLogger(log *logger.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithTracing opens an OpenTelemetry span around each request, named
// "{client name}.request", recording method, path, and status.
func WithTracing() Option {
	return func(c *Client) {
		c.tracing = true
	}
}

// WithMetrics records request counts and durations on the given
// instruments.
func WithMetrics(m *observability.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithRequestID stamps an X-Request-ID header with a fresh UUID on
// every outgoing request that does not already carry one.
func WithRequestID() Option {
	return func(c *Client) {
		c.stampRequestID = true
	}
}
