// Package session provides server-side key-value sessions.
//
// A Session holds arbitrary JSON-encodable values under string keys. The
// Manager loads, creates and persists sessions through a Store; MemoryStore is
// the in-process implementation, and the integration/sessionstore packages
// provide Redis and PostgreSQL backends.
//
// Calling Clear on a session empties it and marks it for destruction. On the
// next Manager.Store call the session is deleted and ErrDestroyed is returned,
// which the transport layer uses to expire the client cookie.
//
//	mgr := session.NewManager(session.NewMemoryStore(), session.WithTTL(time.Hour))
//	sess := mgr.New()
//	sess.Set("user_id", "42")
//	if err := mgr.Store(ctx, sess); err != nil {
//		return err
//	}
package session
