// Package handler defines the request processing contract shared by the router,
// the response helpers, and the middleware packages.
//
// A handler receives a typed context and returns a Response, a deferred render
// function. Because rendering is deferred, middleware can inspect, replace, or
// decorate the response before anything is written:
//
//	type Response func(w http.ResponseWriter, r *http.Request) error
//	type HandlerFunc[C Context] func(ctx C) Response
//	type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]
//
// Returning a Response without calling next short-circuits the chain. The
// session guard in core/paranoid relies on this to stop a request whose
// fingerprint no longer matches its session:
//
//	func guard[C handler.Context](next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
//		return func(ctx C) handler.Response {
//			if suspicious(ctx.Request()) {
//				return response.Error(response.ErrUnauthorized)
//			}
//			return next(ctx)
//		}
//	}
//
// Errors returned from a Response are routed to the router's ErrorHandler so
// every failure is rendered the same way.
package handler
