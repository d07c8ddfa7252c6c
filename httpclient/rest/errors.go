package rest

import "github.com/tansoy/restkit/httpclient"

// Error helpers delegate to httpclient's classification so facade users
// can inspect Response.Err without importing httpclient directly.

// IsNotFound checks if the error is a 404 Not Found.
func IsNotFound(err error) bool { return httpclient.IsNotFound(err) }

// IsAuth checks if the error is a 401/403 authentication error.
func IsAuth(err error) bool { return httpclient.IsAuth(err) }

// IsRateLimit checks if the error is a 429 Too Many Requests.
func IsRateLimit(err error) bool { return httpclient.IsRateLimit(err) }

// IsServerError checks if the error is a 5xx server error.
func IsServerError(err error) bool { return httpclient.IsServerError(err) }

// IsTimeout checks if the error is a timeout.
func IsTimeout(err error) bool { return httpclient.IsTimeout(err) }

// IsConnection checks if the error is a connection-level failure.
func IsConnection(err error) bool { return httpclient.IsConnection(err) }
