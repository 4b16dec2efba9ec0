package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/paranoid/core/cookie"
	"github.com/dmitrymomot/paranoid/core/paranoid"
	"github.com/dmitrymomot/paranoid/core/session"
	"github.com/dmitrymomot/paranoid/core/sessiontransport"
	"github.com/dmitrymomot/paranoid/pkg/fingerprint"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type testApp struct {
	handler http.Handler
	store   *session.MemoryStore
	reg     *prometheus.Registry
}

func newTestApp(t *testing.T, cfg paranoid.Config) testApp {
	t.Helper()

	cookies, err := cookie.New([]string{testSecret})
	require.NoError(t, err)

	store := session.NewMemoryStore()
	reg := prometheus.NewRegistry()

	h, err := newHandler(appDeps{
		Transport: sessiontransport.NewCookie(session.NewManager(store), cookies, "session"),
		Cookies:   cookies,
		Paranoid:  cfg,
		Registry:  reg,
	})
	require.NoError(t, err)

	return testApp{handler: h, store: store, reg: reg}
}

// client replays cookies between requests like a browser would.
type client struct {
	h       http.Handler
	addr    string
	ua      string
	cookies map[string]*http.Cookie
}

func newClient(h http.Handler) *client {
	return &client{h: h, addr: "192.0.2.1:1234", ua: "demo-browser/1.0", cookies: make(map[string]*http.Cookie)}
}

func (c *client) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.RemoteAddr = c.addr
	req.Header.Set("User-Agent", c.ua)
	for _, ck := range c.cookies {
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	}

	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return rec
}

func (c *client) clone() *client {
	cp := &client{h: c.h, addr: c.addr, ua: c.ua, cookies: make(map[string]*http.Cookie, len(c.cookies))}
	for k, v := range c.cookies {
		cp.cookies[k] = v
	}
	return cp
}

func expiredCookie(rec *httptest.ResponseRecorder, name string) bool {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name && ck.MaxAge < 0 {
			return true
		}
	}
	return false
}

func TestDemo_LoginFlow(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, paranoid.DefaultConfig())
	alice := newClient(app.handler)

	rec := alice.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/login"`)
	assert.Contains(t, rec.Body.String(), "verdict: new_session")

	rec = alice.do(http.MethodPost, "/login", url.Values{"username": {"alice"}, "remember": {"on"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	require.Contains(t, alice.cookies, "remember_token")

	rec = alice.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Signed in as <strong>alice</strong>")
	assert.Contains(t, rec.Body.String(), "verdict: match")
}

func TestDemo_HijackedSessionIsReset(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, paranoid.DefaultConfig())
	alice := newClient(app.handler)

	alice.do(http.MethodGet, "/", nil)
	alice.do(http.MethodPost, "/login", url.Values{"username": {"alice"}, "remember": {"on"}})
	require.Equal(t, 1, app.store.Len())

	attacker := alice.clone()
	attacker.addr = "198.51.100.7:4444"

	rec := attacker.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.True(t, expiredCookie(rec, "session"), "session cookie must be expired")
	assert.True(t, expiredCookie(rec, "remember_token"), "remember cookie must be expired")
	assert.Equal(t, 0, app.store.Len())

	// Following the redirect shows the login form again.
	rec = attacker.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Signed in as")

	// The victim's session is gone too; its remember cookie logs it back in.
	rec = alice.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Signed in as <strong>alice</strong>")
}

func TestDemo_NetworkGranularityToleratesSameSubnet(t *testing.T) {
	t.Parallel()

	cfg := paranoid.DefaultConfig()
	cfg.AddressGranularity = fingerprint.GranularityNetwork

	app := newTestApp(t, cfg)
	alice := newClient(app.handler)

	alice.do(http.MethodGet, "/", nil)
	alice.do(http.MethodPost, "/login", url.Values{"username": {"alice"}})

	alice.addr = "192.0.2.200:5555"
	rec := alice.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Signed in as <strong>alice</strong>")
}

func TestDemo_Logout(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, paranoid.DefaultConfig())
	alice := newClient(app.handler)

	alice.do(http.MethodGet, "/", nil)
	alice.do(http.MethodPost, "/login", url.Values{"username": {"alice"}, "remember": {"on"}})

	rec := alice.do(http.MethodPost, "/logout", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.True(t, expiredCookie(rec, "remember_token"))
	assert.True(t, expiredCookie(rec, "session"))

	rec = alice.do(http.MethodGet, "/", nil)
	assert.NotContains(t, rec.Body.String(), "Signed in as")
}

func TestDemo_LoginRequiresUsername(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, paranoid.DefaultConfig())
	alice := newClient(app.handler)

	rec := alice.do(http.MethodPost, "/login", url.Values{"username": {"   "}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDemo_InfraRoutesBypassGuard(t *testing.T) {
	t.Parallel()

	app := newTestApp(t, paranoid.DefaultConfig())
	c := newClient(app.handler)

	rec := c.do(http.MethodGet, "/live", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Result().Cookies())

	rec = c.do(http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	c.do(http.MethodGet, "/", nil)
	rec = c.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `paranoid_verdicts_total{verdict="new_session"} 1`)
}
