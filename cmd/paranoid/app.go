package main

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/paranoid/core/cookie"
	"github.com/dmitrymomot/paranoid/core/handler"
	"github.com/dmitrymomot/paranoid/core/health"
	"github.com/dmitrymomot/paranoid/core/logger"
	"github.com/dmitrymomot/paranoid/core/paranoid"
	"github.com/dmitrymomot/paranoid/core/response"
	"github.com/dmitrymomot/paranoid/core/router"
	"github.com/dmitrymomot/paranoid/middleware"
	"github.com/dmitrymomot/paranoid/pkg/clientip"
)

const (
	userKey       = "user"
	routeIndex    = "index"
	maxNameLength = 64
)

// appDeps are the collaborators of the demo app.
type appDeps struct {
	Logger    *slog.Logger
	Transport middleware.SessionTransport
	Cookies   *cookie.Manager
	Paranoid  paranoid.Config
	Registry  *prometheus.Registry
	Checks    []health.Check
}

type app struct {
	log      *slog.Logger
	guard    *paranoid.Guard
	cookies  *cookie.Manager
	remember string
}

// newHandler builds the demo router.
//
// Every page runs behind the guard. A mismatch clears the session, expires the
// remember cookie and redirects to the index route, which then shows the
// login form again.
func newHandler(d appDeps) (http.Handler, error) {
	if d.Logger == nil {
		d.Logger = logger.Nop()
	}
	if d.Registry == nil {
		d.Registry = prometheus.NewRegistry()
	}

	metrics, err := paranoid.NewPrometheusMetrics(d.Registry)
	if err != nil {
		return nil, err
	}

	// index restores logins from the remember cookie, so a mismatch has to expire it.
	d.Paranoid.RememberCookie.Enabled = true

	r := router.New[*router.Context](
		router.WithErrorHandler(response.ErrorHandler[*router.Context]),
		router.WithLogger[*router.Context](d.Logger),
	)

	guard, err := paranoid.New(d.Paranoid,
		paranoid.WithRedirect(routeIndex),
		paranoid.WithURLResolver(r),
		paranoid.WithMetrics(metrics),
		paranoid.WithLogger(d.Logger),
	)
	if err != nil {
		return nil, err
	}

	a := &app{
		log:      d.Logger,
		guard:    guard,
		cookies:  d.Cookies,
		remember: guard.Config().RememberCookie.Name,
	}

	infra := func(ctx *router.Context) bool {
		switch ctx.Request().URL.Path {
		case "/live", "/ready", "/metrics":
			return true
		}
		return false
	}

	r.Use(
		middleware.RequestID[*router.Context](),
		middleware.LoggingWithConfig(middleware.LoggingConfig[*router.Context]{
			Logger: d.Logger.With(logger.Component("http.request")),
			Skip:   infra,
		}),
		middleware.SessionWithConfig(middleware.SessionConfig[*router.Context]{
			Transport: d.Transport,
			Logger:    d.Logger,
			Skip:      infra,
		}),
		middleware.ParanoidWithConfig(middleware.ParanoidConfig[*router.Context]{
			Guard:  guard,
			Logger: d.Logger,
			Skip:   infra,
		}),
	)

	r.Name(routeIndex, "/")
	r.Get("/", a.index)
	r.Post("/login", a.login)
	r.Post("/logout", a.logout)

	r.Get("/live", health.Liveness[*router.Context])
	r.Get("/ready", health.Readiness[*router.Context](d.Logger, d.Checks...))
	r.Get("/metrics", wrap(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))

	return r, nil
}

// index shows the signed-in user, restoring the login from the remember cookie
// when the session has none.
func (a *app) index(ctx *router.Context) handler.Response {
	sess := middleware.MustGetSession(ctx)

	user, _ := sess.Get(userKey)
	name, _ := user.(string)
	if name == "" {
		if remembered, err := a.cookies.GetSigned(ctx.Request(), a.remember); err == nil && remembered != "" {
			name = remembered
			sess.Set(userKey, name)
			a.log.InfoContext(ctx, "login restored from remember cookie",
				logger.Component("demo"),
				logger.SessionID(sess.ID),
			)
		}
	}

	verdict, _ := middleware.GetVerdict(ctx)
	return page(pageData{
		User:    name,
		Verdict: verdict.String(),
		Token:   a.guard.Token(ctx.Request()),
	})
}

func (a *app) login(ctx *router.Context) handler.Response {
	req := ctx.Request()
	name := strings.TrimSpace(req.FormValue("username"))
	if name == "" || len(name) > maxNameLength {
		return response.Error(response.ErrBadRequest.WithMessage("username is required"))
	}

	sess := middleware.MustGetSession(ctx)
	sess.Set(userKey, name)
	a.guard.Trust(req, sess)

	a.log.InfoContext(ctx, "user logged in",
		logger.Component("demo"),
		logger.SessionID(sess.ID),
		logger.ClientIP(clientip.Address(req)),
	)

	remember := req.FormValue("remember") != ""
	return func(w http.ResponseWriter, r *http.Request) error {
		if remember {
			if err := a.cookies.SetSigned(w, a.remember, name, cookie.WithMaxAge(30*24*60*60)); err != nil {
				return err
			}
		}
		return response.RedirectSeeOther("/")(w, r)
	}
}

func (a *app) logout(ctx *router.Context) handler.Response {
	middleware.MustGetSession(ctx).Clear()
	return response.WithCookie(response.RedirectSeeOther("/"), a.cookies.Expired(a.remember))
}

// wrap adapts a net/http handler to the router.
func wrap(h http.Handler) handler.HandlerFunc[*router.Context] {
	return func(ctx *router.Context) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			h.ServeHTTP(w, r)
			return nil
		}
	}
}

type pageData struct {
	User    string
	Verdict string
	Token   string
}

var pageTmpl = template.Must(template.New("page").Parse(`<!doctype html>
<html>
<head><title>paranoid demo</title></head>
<body>
{{if .User}}
<p>Signed in as <strong>{{.User}}</strong>.</p>
<form method="post" action="/logout"><button type="submit">Log out</button></form>
{{else}}
<form method="post" action="/login">
	<label>Username <input name="username" maxlength="64" required></label>
	<label><input type="checkbox" name="remember"> Remember me</label>
	<button type="submit">Log in</button>
</form>
{{end}}
<p><small>verdict: {{.Verdict}} &middot; token: <code>{{.Token}}</code></small></p>
</body>
</html>
`))

func page(data pageData) handler.Response {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return response.Error(err)
	}
	return response.HTML(buf.String())
}
