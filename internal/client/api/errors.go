package api

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/loandesk/internal/common"
)

// Error is a failed API call. StatusCode is 0 for transport failures.
type Error struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func transportError(fallback string, cause error) *Error {
	return &Error{
		Message: fallback,
		Err:     fmt.Errorf("%w: %w", common.ErrUnavailable, cause),
	}
}

// statusError maps a non-2xx response. Only a request that carried a bearer
// token can be rejected as unauthorized; on the sign-in endpoints a 401 is an
// ordinary failure whose message is shown as is.
func statusError(status int, message, fallback string, authenticated bool) *Error {
	if message == "" {
		message = fallback
	}
	e := &Error{StatusCode: status, Message: message}
	if authenticated && (status == http.StatusUnauthorized || status == http.StatusForbidden) {
		e.Err = common.ErrUnauthorized
	}
	return e
}
