// Package cookie provides signed HTTP cookies with secure defaults.
//
// Values are signed with HMAC-SHA256. Several secrets may be configured: the
// first one signs, all of them verify, so keys can be rotated without logging
// everybody out.
//
//	m, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")})
//	if err != nil {
//		return err
//	}
//	_ = m.SetSigned(w, "__session", sessionID, cookie.WithMaxAge(3600))
//	id, err := m.GetSigned(r, "__session")
//
// Expired builds the empty, already expired cookie used to make a browser drop
// a cookie. Its attributes must match the ones used when the cookie was set,
// otherwise the browser keeps the original:
//
//	http.SetCookie(w, cookie.Expired("remember_token", cookie.Options{Path: "/"}))
//
// Defaults are Path=/, HttpOnly, and SameSite=Lax.
package cookie
