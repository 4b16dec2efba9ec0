// Package middleware provides handler.Middleware components for session
// handling, session hijack protection and request bookkeeping.
//
// Every middleware follows the same pattern: a generic constructor with
// defaults (Session, Paranoid, RequestID, Logging), a WithConfig variant
// taking a config struct with an optional Skip func, and context helpers for
// reading what the middleware stored (GetSession, GetVerdict, GetRequestID).
//
// # Session
//
// Session loads the session through a SessionTransport, stores it in the
// request context, and persists it after the handler returns. A session that
// was cleared during the request is deleted and its cookie expired.
//
//	r.Use(middleware.Session[*router.Context](transport))
//
// # Paranoid
//
// Paranoid binds each session to a fingerprint of the client address and
// User-Agent. It must run after Session. A request whose fingerprint is not
// trusted by its session never reaches the handler: the guard's invalid-session
// response is returned and the session is cleared.
//
//	guard := paranoid.MustNew(paranoid.DefaultConfig(), paranoid.WithRedirect("/login"))
//	r.Use(middleware.Session[*router.Context](transport))
//	r.Use(middleware.Paranoid[*router.Context](guard))
//
// Handlers can inspect the outcome:
//
//	if v, ok := middleware.GetVerdict(ctx); ok && v == paranoid.VerdictNewSession {
//		// first request of this session
//	}
//
// # Request ID and Logging
//
// RequestID tags each request with an ID echoed in the X-Request-ID header.
// Logging writes one access log record per request, including the request
// ID, verdict and session ID when the other middlewares are installed inside it.
//
//	r.Use(
//		middleware.RequestID[*router.Context](),
//		middleware.LoggingWithLogger[*router.Context](log),
//		middleware.Session[*router.Context](transport),
//		middleware.Paranoid[*router.Context](guard),
//	)
package middleware
