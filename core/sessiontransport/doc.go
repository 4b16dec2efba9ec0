// Package sessiontransport moves session identity between HTTP requests and
// the core/session package.
//
// The Cookie transport stores the session ID in a signed cookie. Load never
// fails on a missing or tampered cookie; it falls back to a fresh session.
// Store persists the session and refreshes the cookie, or expires the cookie
// when the session was cleared during the request.
//
//	mgr := session.NewManager(session.NewMemoryStore())
//	cookies, _ := cookie.New([]string{secret})
//	transport := sessiontransport.NewCookie(mgr, cookies, "session")
//
//	r.Use(middleware.Session[*router.Context](transport))
package sessiontransport
