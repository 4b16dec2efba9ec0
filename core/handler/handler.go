package handler

import "net/http"

// Response renders an HTTP response.
// It sets headers, status code, and writes the body. A returned error is passed
// to the router's ErrorHandler, which is how middleware surfaces failures
// consistently with the rest of the application.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc is a type-safe HTTP request handler with custom context support.
type HandlerFunc[C Context] func(ctx C) Response

// ErrorHandler handles errors returned while rendering a Response.
type ErrorHandler[C Context] func(ctx C, err error)

// Middleware wraps handlers to add cross-cutting functionality.
// A middleware may return a Response without calling next to short-circuit the chain.
type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]
