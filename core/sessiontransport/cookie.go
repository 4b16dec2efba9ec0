package sessiontransport

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/paranoid/core/cookie"
	"github.com/dmitrymomot/paranoid/core/handler"
	"github.com/dmitrymomot/paranoid/core/session"
)

// Cookie carries the session ID in a signed HTTP cookie.
type Cookie struct {
	manager *session.Manager
	cookies *cookie.Manager
	name    string
	opts    []cookie.Option
}

// NewCookie creates a cookie-based session transport.
// opts override the cookie manager defaults for the session cookie.
func NewCookie(mgr *session.Manager, cookies *cookie.Manager, name string, opts ...cookie.Option) *Cookie {
	if name == "" {
		name = DefaultCookieName
	}
	return &Cookie{
		manager: mgr,
		cookies: cookies,
		name:    name,
		opts:    opts,
	}
}

// Name returns the session cookie name.
func (c *Cookie) Name() string {
	return c.name
}

// Load returns the session referenced by the request cookie.
// A missing, tampered or stale cookie yields a fresh empty session.
// Only store failures and context cancellation are returned as errors.
func (c *Cookie) Load(ctx handler.Context) (*session.Session, error) {
	id, err := c.sessionID(ctx.Request())
	if err != nil {
		return c.manager.New(), nil
	}
	sess, err := c.manager.LoadOrNew(ctx, id)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}
	return sess, nil
}

// Store persists the session and writes the session cookie.
// When the session was cleared, the cookie is expired instead.
func (c *Cookie) Store(ctx handler.Context, sess *session.Session) error {
	err := c.manager.Store(ctx, sess)
	switch {
	case errors.Is(err, session.ErrDestroyed):
		http.SetCookie(ctx.ResponseWriter(), c.cookies.Expired(c.name, c.opts...))
		return nil
	case err != nil:
		return err
	}

	// New sessions without values are not persisted; no cookie needed.
	if sess.IsNew() {
		return nil
	}

	until := time.Until(sess.ExpiresAt)
	if until <= 0 {
		return ErrExpiredSession
	}

	opts := append([]cookie.Option{cookie.WithMaxAge(int(until.Seconds()))}, c.opts...)
	return c.cookies.SetSigned(ctx.ResponseWriter(), c.name, sess.ID.String(), opts...)
}

// Destroy deletes the current session and expires the cookie.
func (c *Cookie) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if id, err := c.sessionID(r); err == nil {
		if err := c.manager.Destroy(ctx, id); err != nil {
			return err
		}
	}
	http.SetCookie(w, c.cookies.Expired(c.name, c.opts...))
	return nil
}

func (c *Cookie) sessionID(r *http.Request) (uuid.UUID, error) {
	raw, err := c.cookies.GetSigned(r, c.name)
	if err != nil {
		if errors.Is(err, cookie.ErrCookieNotFound) {
			return uuid.Nil, ErrNoToken
		}
		return uuid.Nil, errors.Join(ErrInvalidToken, err)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.Join(ErrInvalidToken, err)
	}
	return id, nil
}
