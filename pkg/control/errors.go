package control

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTransport indicates no response was received from the remote service.
	ErrTransport = errors.New("control transport failure")

	// ErrHTTPStatus indicates the remote service answered with a non-success status.
	ErrHTTPStatus = errors.New("control http status")
)

// TransportError wraps a failure that prevented any response from arriving
// (connection refused, DNS failure, timeout, cancelled context).
type TransportError struct {
	Method Method
	URL    string
	Err    error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: transport: %v", e.Method, e.URL, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *TransportError) Unwrap() error { return e.Err }

// Is implements errors.Is support
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// HTTPStatusError carries a non-success response for caller inspection.
type HTTPStatusError struct {
	Method     Method
	URL        string
	StatusCode int
	Body       []byte
}

// Error implements the error interface
func (e *HTTPStatusError) Error() string {
	snippet := bodySnippet(e.Body)
	if snippet == "" {
		return fmt.Sprintf("%s %s: http response status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: http response status %d: %s", e.Method, e.URL, e.StatusCode, snippet)
}

// Is implements errors.Is support
func (e *HTTPStatusError) Is(target error) bool { return target == ErrHTTPStatus }

func bodySnippet(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if len(body) > 512 {
		body = body[:512]
	}
	return strings.TrimSpace(string(body))
}
