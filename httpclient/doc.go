// Package httpclient provides a configurable HTTP transport binding
// with built-in authentication, TLS, and structured error classification.
//
// The Client handles all HTTP protocol concerns: base URL resolution,
// body encoding, header and query merging, and mapping of non-2xx and
// connection-level outcomes into *Error values that carry whatever the
// peer returned. The rest subpackage builds a typed, never-failing
// facade on top of it.
//
// # Basic Usage
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.example.com",
//	    Timeout: 30 * time.Second,
//	    Auth:    httpclient.BearerAuth("my-token"),
//	})
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    Path:   "/users/123",
//	})
//
// Per-request hooks for debug logging, request-id stamping, and
// tracing are opt-in via options:
//
//	client, err := httpclient.New(cfg,
//	    httpclient.WithLogger(log),
//	    httpclient.WithRequestID(),
//	)
package httpclient
