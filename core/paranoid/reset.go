package paranoid

import (
	"github.com/dmitrymomot/paranoid/core/cookie"
	"github.com/dmitrymomot/paranoid/core/handler"
	"github.com/dmitrymomot/paranoid/core/response"
)

// Reset clears the session and, if the remember cookie is enabled, adds an
// expired remember cookie to resp. It returns the decorated response.
//
// The session transport notices the cleared session and expires the session
// cookie itself.
func Reset(resp handler.Response, sess Session, remember RememberCookie) handler.Response {
	sess.Clear()

	if !remember.Enabled {
		return resp
	}
	name := remember.Name
	if name == "" {
		name = DefaultRememberCookieName
	}
	return response.WithCookie(resp, cookie.Expired(name, cookie.Options{Path: "/"}))
}
