// Package paranoid protects sessions against hijacking by binding them to a
// fingerprint of the client.
//
// The fingerprint token is a hash of the client address and User-Agent (see
// pkg/fingerprint). The first request of a session records the token under the
// session key "_paranoid_tokens". Later requests must present a recorded
// token; otherwise the invalid-session handler runs, the session is cleared and
// the handler's response is returned instead of the application's.
//
// Retention controls what is recorded: RetentionSingle keeps one token,
// RetentionMultiple appends every token written. Address granularity
// "network" binds the /24 (IPv4) or /64 (IPv6) network instead of the full
// address, tolerating address changes within a provider's pool.
//
// The invalid-session handler is one of:
//   - DefaultHandler: 401 Unauthorized through the router's ErrorHandler,
//     with ErrSessionMismatch as the cause
//   - CallbackHandler: any handler.Response the application builds
//   - RedirectHandler: a 302 to an absolute URL, a path, or a named route
//     resolved through a URLResolver
//
// If the host uses a persistent-login cookie, enable RememberCookie so a
// mismatch expires it too.
//
// The guard is usually installed through middleware.Paranoid:
//
//	guard := paranoid.MustNew(cfg,
//		paranoid.WithRedirect("login"),
//		paranoid.WithURLResolver(r),
//	)
//	r.Use(middleware.Session[*router.Context](transport))
//	r.Use(middleware.Paranoid[*router.Context](guard))
package paranoid
