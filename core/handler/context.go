package handler

import (
	"context"
	"net/http"
)

// Context defines the contract for request contexts.
// The router provides a default implementation; custom contexts plug in
// through router.WithContextFactory.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Param(key string) string
	// SetValue stores a request-scoped value readable through Value.
	SetValue(key, val any)
}
