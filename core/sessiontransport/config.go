package sessiontransport

import (
	"github.com/dmitrymomot/paranoid/core/cookie"
	"github.com/dmitrymomot/paranoid/core/session"
)

// DefaultCookieName is the session cookie name used when none is configured.
const DefaultCookieName = "session"

// CookieConfig provides environment-based configuration for the cookie transport.
type CookieConfig struct {
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"session"`
}

// DefaultCookieConfig returns a CookieConfig with defaults.
func DefaultCookieConfig() CookieConfig {
	return CookieConfig{CookieName: DefaultCookieName}
}

// NewCookieFromConfig creates a cookie transport from configuration.
func NewCookieFromConfig(cfg CookieConfig, mgr *session.Manager, cookies *cookie.Manager) *Cookie {
	return NewCookie(mgr, cookies, cfg.CookieName)
}
