package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/paranoid/core/cookie"
	"github.com/dmitrymomot/paranoid/core/session"
	"github.com/dmitrymomot/paranoid/core/sessiontransport"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestTransport(t *testing.T) (*sessiontransport.Cookie, *session.MemoryStore) {
	t.Helper()
	cookies, err := cookie.New([]string{testSecret})
	require.NoError(t, err)
	store := session.NewMemoryStore()
	return sessiontransport.NewCookie(session.NewManager(store), cookies, "session"), store
}

// browser replays cookies between requests the way a user agent would.
type browser struct {
	h       http.Handler
	ua      string
	addr    string
	cookies map[string]*http.Cookie
}

func newBrowser(h http.Handler, ua string) *browser {
	return &browser{h: h, ua: ua, addr: "192.0.2.1:1234", cookies: make(map[string]*http.Cookie)}
}

func (b *browser) get(path string, mods ...func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = b.addr
	if b.ua != "" {
		req.Header.Set("User-Agent", b.ua)
	}
	for _, c := range b.cookies {
		req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}
	for _, mod := range mods {
		mod(req)
	}

	rec := httptest.NewRecorder()
	b.h.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}
	return rec
}

func forwardedFor(addr string) func(*http.Request) {
	return func(r *http.Request) {
		r.Header.Set("X-Forwarded-For", addr)
	}
}

func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
