package strata

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPErrorMessage(t *testing.T) {
	err := NewHTTPError(http.StatusBadRequest, "missing field")
	if got := err.Error(); got != "missing field" {
		t.Errorf("Error = %q", got)
	}
	if got := err.StatusCode(); got != http.StatusBadRequest {
		t.Errorf("StatusCode = %d", got)
	}
}

func TestHTTPErrorFallsBackToStatusText(t *testing.T) {
	err := NewHTTPError(http.StatusNotFound, "")
	if got := err.Error(); got != http.StatusText(http.StatusNotFound) {
		t.Errorf("Error = %q", got)
	}
}

func TestHTTPErrorUnwrap(t *testing.T) {
	cause := errors.New("db gone")
	err := &HTTPError{Code: http.StatusServiceUnavailable, Err: cause}

	if got := err.Error(); got != "db gone" {
		t.Errorf("Error = %q", got)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find wrapped cause")
	}
}

func TestErrorKindString(t *testing.T) {
	cases := map[ErrorKind]string{
		RouteNotFound: "route-not-found",
		HandlerError:  "handler-error",
		RenderError:   "render-error",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}

func TestRequestErrorWrapsCause(t *testing.T) {
	cause := fmt.Errorf("component blew up")
	err := &requestError{kind: HandlerError, err: cause}

	if !errors.Is(err, cause) {
		t.Error("errors.Is did not find cause")
	}
	if got := err.Error(); got != "handler-error: component blew up" {
		t.Errorf("Error = %q", got)
	}
}
