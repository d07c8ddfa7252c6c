package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/tansoy/restkit/httpclient"
	"github.com/tansoy/restkit/result"
	"github.com/tansoy/restkit/util"
)

// StatusUnknown is the status reported for failures that carry no
// interpretable HTTP status at all (DNS, TLS, refused connections).
// 500 is a compatibility choice, not a protocol requirement; it keeps
// statusless failures in the "server error" class.
const StatusUnknown = http.StatusInternalServerError

// Client is a JSON-focused facade over the base HTTP client.
// All requests use Content-Type: application/json and Accept:
// application/json unless overridden. A Client owns its transport
// exclusively and is safe for concurrent use.
type Client struct {
	http *httpclient.Client
}

// New creates a facade for the given base URL. JSON headers are applied
// as defaults; cfg carries everything else the transport accepts at
// construction (timeout, default headers, auth, TLS).
func New(baseURL string, cfg httpclient.Config, opts ...httpclient.Option) (*Client, error) {
	cfg.BaseURL = baseURL

	// Copy before adding defaults so the caller's map is left alone.
	headers := make(map[string]string, len(cfg.Headers)+2)
	for k, v := range cfg.Headers {
		headers[k] = v
	}
	if _, ok := headers["Content-Type"]; !ok {
		headers["Content-Type"] = "application/json"
	}
	if _, ok := headers["Accept"]; !ok {
		headers["Accept"] = "application/json"
	}
	cfg.Headers = headers

	c, err := httpclient.New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{http: c}, nil
}

// NewFromClient creates a facade from an existing HTTP client.
func NewFromClient(c *httpclient.Client) *Client {
	return &Client{http: c}
}

// HTTP returns the underlying HTTP client.
func (c *Client) HTTP() *httpclient.Client {
	return c.http
}

// RequestOption configures a single request.
type RequestOption func(*httpclient.Request)

// WithQuery adds query parameters to the request.
func WithQuery(params map[string]string) RequestOption {
	return func(r *httpclient.Request) {
		r.Query = params
	}
}

// WithHeaders adds headers to the request.
func WithHeaders(headers map[string]string) RequestOption {
	return func(r *httpclient.Request) {
		r.Headers = headers
	}
}

// WithAuth overrides authentication for the request.
func WithAuth(auth *httpclient.AuthConfig) RequestOption {
	return func(r *httpclient.Request) {
		r.Auth = auth
	}
}

// Response is the uniform outcome of a facade call.
//
// On success Err is nil and Status/Headers/Data mirror the transport's
// resolved response (Data is nil for empty bodies). On failure Data is
// nil, Err holds the original failure unchanged, and Status/Headers are
// salvaged from the failure when the peer actually responded —
// StatusUnknown and an empty mapping otherwise.
type Response[T any] struct {
	// Status is the HTTP status code, or StatusUnknown when the failure
	// carried none.
	Status int
	// Headers are the response headers; never nil, possibly empty.
	Headers map[string]string
	// Data is the decoded response body, nil when absent.
	Data *T
	// Err is the failure, nil on success.
	Err error
}

// Get performs a GET request and decodes the JSON response into type T.
func Get[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) *Response[T] {
	return do[T](ctx, c, http.MethodGet, path, nil, opts...)
}

// Post performs a POST request with an optional body and decodes the response into type T.
func Post[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) *Response[T] {
	return do[T](ctx, c, http.MethodPost, path, body, opts...)
}

// Put performs a PUT request with an optional body and decodes the response into type T.
func Put[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) *Response[T] {
	return do[T](ctx, c, http.MethodPut, path, body, opts...)
}

// Patch performs a PATCH request with an optional body and decodes the response into type T.
func Patch[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) *Response[T] {
	return do[T](ctx, c, http.MethodPatch, path, body, opts...)
}

// Delete performs a DELETE request and decodes the JSON response into type T.
func Delete[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) *Response[T] {
	return do[T](ctx, c, http.MethodDelete, path, nil, opts...)
}

// do executes one request and maps whatever happened into a Response.
// It never returns an error and never panics.
func do[T any](ctx context.Context, c *Client, method, path string, body any, opts ...RequestOption) *Response[T] {
	req := httpclient.Request{
		Method: method,
		Path:   path,
		Body:   body,
	}
	for _, opt := range opts {
		opt(&req)
	}

	res := result.Of(func() (*httpclient.Response, error) {
		return c.http.Do(ctx, req)
	})

	return mapOutcome[T](res)
}

// mapOutcome converts a wrapped transport outcome into the uniform
// response shape. It is pure: the same outcome always maps to the same
// response.
func mapOutcome[T any](res result.Result[*httpclient.Response]) *Response[T] {
	if res.IsErr() {
		return failure[T](res.Err())
	}

	raw := res.Value()
	out := &Response[T]{
		Status:  raw.StatusCode,
		Headers: raw.Headers,
	}
	if out.Headers == nil {
		out.Headers = make(map[string]string)
	}

	if len(raw.Body) > 0 {
		var data T
		if err := json.Unmarshal(raw.Body, &data); err != nil {
			out.Err = fmt.Errorf("rest: decode response: %w", err)
			return out
		}
		out.Data = util.Ptr(data)
	}

	return out
}

// failure builds a response from a failed call, salvaging status and
// headers from the nested peer response when one exists.
func failure[T any](err error) *Response[T] {
	out := &Response[T]{
		Status:  StatusUnknown,
		Headers: make(map[string]string),
		Err:     err,
	}

	var he *httpclient.Error
	if errors.As(err, &he) {
		if he.StatusCode > 0 {
			out.Status = he.StatusCode
		}
		if he.Headers != nil {
			out.Headers = he.Headers
		}
	}

	return out
}
