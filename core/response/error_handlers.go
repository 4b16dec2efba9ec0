package response

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/paranoid/core/handler"
)

// statusCode lets arbitrary errors provide an HTTP status code.
type statusCode interface {
	StatusCode() int
}

// toHTTPError converts any error to an HTTPError.
func toHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	base, ok := httpErrorsByStatus[status]
	if !ok {
		base = newHTTPError(status, "error")
		if http.StatusText(status) == "" {
			base = ErrInternalServerError
		}
	}
	return base.WithError(err)
}

// ErrorHandler renders errors as plain text.
// HTTPError values keep their status; other errors use their StatusCode() or 500.
func ErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := toHTTPError(err)
	Render(ctx, StringWithStatus(httpErr.Error(), httpErr.Status))
}

// JSONErrorHandler renders errors as JSON objects.
func JSONErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := toHTTPError(err)
	Render(ctx, JSONWithStatus(httpErr, httpErr.Status))
}
