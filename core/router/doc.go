// Package router provides a generic HTTP router built on chi.
//
// Handlers receive a typed context and return handler.Response values. The
// router owns the error path: any error returned while rendering, any
// recovered panic, and unmatched routes all go through one ErrorHandler.
//
//	r := router.New[*router.Context](
//		router.WithErrorHandler(response.ErrorHandler[*router.Context]),
//	)
//	r.Use(middleware.Session[*router.Context](transport))
//	r.Get("/", index)
//
// # Named routes
//
// Routes can be registered under a name and resolved back to a path, which
// lets other components redirect to a destination without hard-coding URLs:
//
//	r.Get("/users/{id}", showUser)
//	r.Name("user", "/users/{id}")
//	path, err := r.URL("user", "42") // "/users/42"
//
// Names registered on a sub-router created by Route include the mount prefix.
// The router satisfies the URLResolver interface expected by core/paranoid.
//
// Custom context types are supported through WithContextFactory. Without a
// factory only *Context can be used.
package router
