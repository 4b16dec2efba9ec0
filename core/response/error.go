package response

import (
	"net/http"

	"github.com/dmitrymomot/paranoid/core/handler"
)

// Error returns a response that propagates err to the router's ErrorHandler.
// Use it to surface failures through the application's standard error path
// instead of rendering them inline.
func Error(err error) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		return err
	}
}
