package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions detected before any request leaves the
// process.
var (
	// ErrClientClosed is returned when attempting to use a closed client.
	ErrClientClosed = errors.New("client is closed")
	// ErrMissingCredentials is returned when a signed endpoint is called
	// without an API key pair configured.
	ErrMissingCredentials = errors.New("no credentials configured")
	// ErrCircuitOpen is returned while the optional circuit breaker is
	// rejecting calls.
	ErrCircuitOpen = errors.New("circuit breaker is open")
)

// TransportError reports a connection-level failure: DNS, TCP or TLS. The
// request never produced an HTTP status. This is the class callers usually
// choose to retry; the client itself never does.
type TransportError struct {
	// Op is the "METHOD /path" of the attempted call.
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPStatusError reports a non-200 response. Message carries the documented
// cause for known status codes; APICode and APIMessage are filled when the
// body contains the exchange's {code,msg} error envelope.
type HTTPStatusError struct {
	StatusCode int
	Message    string
	APICode    int
	APIMessage string
}

func (e *HTTPStatusError) Error() string {
	if e.APICode != 0 {
		return fmt.Sprintf("http status %d (code %d): %s", e.StatusCode, e.APICode, e.APIMessage)
	}
	return fmt.Sprintf("http status %d: %s", e.StatusCode, e.Message)
}

// DecodeError reports a response body that could not be parsed into the
// expected shape. Unlike a transport or status failure, the request itself
// succeeded; retrying is unlikely to help.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// RateLimitConfigError reports an endpoint registered against a missing or
// mismatched quota scope. It is raised at catalog construction and is fatal:
// a client cannot be built over a broken catalog.
type RateLimitConfigError struct {
	Endpoint string
	Reason   string
}

func (e *RateLimitConfigError) Error() string {
	return fmt.Sprintf("rate limit config: %s: %s", e.Endpoint, e.Reason)
}

var statusMessages = map[int]string{
	400: "Bad request. Need to send the request with GET / POST (must be capitalized)",
	401: "Unauthorized. 1. Invalid API Key; 2. Need to put authentication params in the request header",
	403: "Forbidden request. Possible causes: 1. IP rate limit breached; 2. You send GET request with an empty json body",
	404: "Cannot find path. Possible causes: 1. Wrong path",
	405: "Method Not Allowed. You tried to access the resource with an invalid method",
	500: "Internal Server Error. Try again later",
	503: "Service Unavailable. Possible causes: 1. Maintenance. Try again later",
}

// StatusMessage returns the documented cause for a status code, or a generic
// fallback for codes outside the table.
func StatusMessage(code int) string {
	if msg, ok := statusMessages[code]; ok {
		return msg
	}
	return "Unknown error."
}

// IsTransport reports whether err is a connection-level failure.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsHTTPStatus reports whether err carries a non-200 HTTP status.
func IsHTTPStatus(err error) bool {
	var se *HTTPStatusError
	return errors.As(err, &se)
}

// IsDecode reports whether err is a response parsing failure.
func IsDecode(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// IsServerError reports whether err is a 5xx response, the status class that
// may resolve on its own server-side.
func IsServerError(err error) bool {
	var se *HTTPStatusError
	return errors.As(err, &se) && se.StatusCode >= 500
}

// StatusCode extracts the HTTP status carried by err, or 0 when err is not
// a status failure.
func StatusCode(err error) int {
	var se *HTTPStatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
