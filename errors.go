package strata

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies request failures for recovery dispatch.
type ErrorKind uint8

const (
	// RouteNotFound: no route matched the request path. Recovered by the
	// not-found reserved handler.
	RouteNotFound ErrorKind = iota

	// HandlerError: a page or API handler returned an error or panicked.
	// Recovered by the error reserved handler.
	HandlerError

	// RenderError: serializing the tree to HTML failed. Treated the same
	// as HandlerError.
	RenderError
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case RouteNotFound:
		return "route-not-found"
	case HandlerError:
		return "handler-error"
	case RenderError:
		return "render-error"
	default:
		return "unknown"
	}
}

// HTTPError carries an HTTP status code alongside an error. Handlers
// return it to control the response status.
type HTTPError struct {
	Code    int
	Message string
	Err     error
}

// NewHTTPError creates an HTTPError with the given status and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{Code: code, Message: message}
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

// Unwrap returns the wrapped error.
func (e *HTTPError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code.
func (e *HTTPError) StatusCode() int {
	return e.Code
}

// requestError pairs a failure with its kind for the recovery path.
type requestError struct {
	kind ErrorKind
	err  error
}

func (e *requestError) Error() string {
	return fmt.Sprintf("%s: %v", e.kind, e.err)
}

func (e *requestError) Unwrap() error {
	return e.err
}
