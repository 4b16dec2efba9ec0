package router

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/paranoid/core/handler"
)

var supportedMethods = []string{
	http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch,
	http.MethodDelete, http.MethodConnect, http.MethodOptions, http.MethodTrace,
}

// mux is the private implementation of Router.
// Pattern matching is delegated to chi; handler chains, contexts, and error
// handling stay generic over C.
type mux[C handler.Context] struct {
	root         *chi.Mux
	chi          chi.Router
	middlewares  []handler.Middleware[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request, map[string]string) C
	logger       *slog.Logger
	names        *names
	prefix       string
	hasRoutes    bool
}

func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	root := chi.NewRouter()
	m := &mux[C]{
		root:         root,
		chi:          root,
		errorHandler: defaultErrorHandler[C],
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		names:        newNames(),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.newContext == nil {
		m.newContext = func(w http.ResponseWriter, r *http.Request, params map[string]string) C {
			if c, ok := any(newContext(w, r, params)).(C); ok {
				return c
			}
			panic(ErrNoContextFactory)
		}
	}

	root.NotFound(func(w http.ResponseWriter, r *http.Request) {
		ww := newResponseWriter(w)
		m.errorHandler(m.newContext(ww, r, nil), ErrNotFound)
	})
	root.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		ww := newResponseWriter(w)
		m.errorHandler(m.newContext(ww, r, nil), ErrMethodNotAllowed)
	})

	return m
}

// ServeHTTP implements http.Handler.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.root.ServeHTTP(w, r)
}

// Get registers a handler for GET requests.
func (m *mux[C]) Get(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodGet, pattern, h)
}

// Post registers a handler for POST requests.
func (m *mux[C]) Post(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPost, pattern, h)
}

// Put registers a handler for PUT requests.
func (m *mux[C]) Put(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPut, pattern, h)
}

// Delete registers a handler for DELETE requests.
func (m *mux[C]) Delete(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodDelete, pattern, h)
}

// Patch registers a handler for PATCH requests.
func (m *mux[C]) Patch(pattern string, h handler.HandlerFunc[C]) {
	m.handle(http.MethodPatch, pattern, h)
}

// Handle registers a handler for all HTTP methods.
func (m *mux[C]) Handle(pattern string, h handler.HandlerFunc[C]) {
	m.handle("", pattern, h)
}

// Method registers a handler for one or more specific HTTP methods.
func (m *mux[C]) Method(pattern string, h handler.HandlerFunc[C], methods ...string) {
	if len(methods) == 0 {
		panic(fmt.Errorf("%w: no methods provided", ErrInvalidMethod))
	}

	seen := make(map[string]bool, len(methods))
	for _, method := range methods {
		method = strings.ToUpper(method)
		if !slices.Contains(supportedMethods, method) {
			panic(fmt.Errorf("%w: %s", ErrInvalidMethod, method))
		}
		if seen[method] {
			continue
		}
		seen[method] = true
		m.handle(method, pattern, h)
	}
}

// Use appends middleware to the router.
// Middleware is bound when a route is registered, so it must come first.
func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	if m.hasRoutes {
		panic("router: all middlewares must be defined before routes on a mux")
	}
	m.middlewares = append(m.middlewares, middlewares...)
}

// With creates an inline router with additional middleware.
func (m *mux[C]) With(middlewares ...handler.Middleware[C]) Router[C] {
	im := m.derive(m.chi, m.prefix)
	im.middlewares = append(im.middlewares, middlewares...)
	return im
}

// Group creates an inline router for grouping routes.
func (m *mux[C]) Group(fn func(r Router[C])) Router[C] {
	im := m.derive(m.chi, m.prefix)
	if fn != nil {
		fn(im)
	}
	return im
}

// Route creates a sub-router mounted at the given pattern.
func (m *mux[C]) Route(pattern string, fn func(r Router[C])) Router[C] {
	if fn == nil {
		panic(fmt.Errorf("%w: nil sub-router on '%s'", ErrInvalidPattern, pattern))
	}
	validatePattern(pattern)

	var sub *mux[C]
	m.chi.Route(pattern, func(r chi.Router) {
		sub = m.derive(r, joinPath(m.prefix, pattern))
		fn(sub)
	})
	m.hasRoutes = true
	return sub
}

// Name registers pattern under name for reverse lookup.
func (m *mux[C]) Name(name, pattern string) {
	validatePattern(pattern)
	m.names.add(name, joinPath(m.prefix, pattern))
}

// URL builds the path registered under name.
func (m *mux[C]) URL(name string, params ...string) (string, error) {
	return m.names.url(name, params...)
}

// Routes returns all registered routes.
func (m *mux[C]) Routes() []Route {
	var routes []Route
	_ = chi.Walk(m.root, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, Route{Method: method, Pattern: route})
		return nil
	})
	return routes
}

// derive returns a router sharing configuration with m but bound to r.
func (m *mux[C]) derive(r chi.Router, prefix string) *mux[C] {
	return &mux[C]{
		root:         m.root,
		chi:          r,
		middlewares:  slices.Clone(m.middlewares),
		errorHandler: m.errorHandler,
		newContext:   m.newContext,
		logger:       m.logger,
		names:        m.names,
		prefix:       prefix,
	}
}

func (m *mux[C]) handle(method, pattern string, fn handler.HandlerFunc[C]) {
	validatePattern(pattern)
	m.hasRoutes = true

	h := fn
	if len(m.middlewares) > 0 {
		h = chain(m.middlewares, fn)
	}

	if method == "" {
		m.chi.Handle(pattern, m.serve(h))
		return
	}
	m.chi.Method(method, pattern, m.serve(h))
}

// serve adapts a typed handler chain to net/http.
func (m *mux[C]) serve(h handler.HandlerFunc[C]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ww := newResponseWriter(w)
		ctx := m.newContext(ww, r, urlParams(r))

		// Recover from panics to prevent server crashes
		defer func() {
			if p := recover(); p != nil {
				panicErr := &panicError{value: p, stack: debug.Stack()}
				if ww.Written() {
					m.logger.Error("panic after response written",
						"value", panicErr.value,
						"stack", string(panicErr.stack),
						"path", r.URL.Path,
						"method", r.Method,
						"status", ww.Status(),
					)
					return
				}
				m.errorHandler(ctx, panicErr)
			}
		}()

		resp := h(ctx)
		if resp == nil {
			m.errorHandler(ctx, ErrNilResponse)
			return
		}

		if err := resp(ww, ctx.Request()); err != nil {
			m.errorHandler(ctx, err)
		}
	}
}

// chain builds a single handler from a middleware stack and endpoint.
// The first middleware in the slice runs first.
func chain[C handler.Context](middlewares []handler.Middleware[C], endpoint handler.HandlerFunc[C]) handler.HandlerFunc[C] {
	h := endpoint
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

func urlParams(r *http.Request) map[string]string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || len(rctx.URLParams.Keys) == 0 {
		return nil
	}
	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		if i < len(rctx.URLParams.Values) {
			params[key] = rctx.URLParams.Values[i]
		}
	}
	return params
}

func validatePattern(pattern string) {
	if pattern == "" || pattern[0] != '/' {
		panic(fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern))
	}
}

func joinPath(prefix, pattern string) string {
	p := strings.TrimSuffix(prefix, "/") + pattern
	if p == "" {
		return "/"
	}
	return p
}
