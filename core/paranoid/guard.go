package paranoid

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"

	"github.com/dmitrymomot/paranoid/core/handler"
	"github.com/dmitrymomot/paranoid/core/logger"
	"github.com/dmitrymomot/paranoid/core/response"
	"github.com/dmitrymomot/paranoid/pkg/clientip"
	"github.com/dmitrymomot/paranoid/pkg/fingerprint"
)

// Verdict is the outcome of checking a request against its session.
type Verdict int

const (
	// VerdictNewSession means the session had no tokens; the current one was recorded.
	VerdictNewSession Verdict = iota
	// VerdictMatch means the request token is trusted.
	VerdictMatch
	// VerdictMismatch means the request token is unknown and the session was reset.
	VerdictMismatch
)

func (v Verdict) String() string {
	switch v {
	case VerdictNewSession:
		return "new_session"
	case VerdictMatch:
		return "match"
	case VerdictMismatch:
		return "mismatch"
	default:
		return "unknown"
	}
}

// TokenFunc computes the token for a request.
type TokenFunc func(r *http.Request) string

// Result describes a checked request.
type Result struct {
	Verdict Verdict
	Token   string
	// Response is set only for VerdictMismatch.
	Response handler.Response
}

// Guard binds sessions to client fingerprints.
// It is immutable after New and safe for concurrent use.
type Guard struct {
	cfg       Config
	tokens    TokenStore
	generator *fingerprint.Generator
	tokenFunc TokenFunc
	onInvalid Handler
	urls      URLResolver
	metrics   Metrics
	logger    *slog.Logger
}

// Option configures a Guard.
type Option func(*Guard)

// WithInvalidSessionHandler sets the mismatch handler.
func WithInvalidSessionHandler(h Handler) Option {
	return func(g *Guard) {
		g.onInvalid = h
	}
}

// WithCallback answers mismatches with the response from fn.
func WithCallback(fn Callback) Option {
	return WithInvalidSessionHandler(CallbackHandler(fn))
}

// WithRedirect answers mismatches with a redirect to target.
// See RedirectHandler for how target is interpreted.
func WithRedirect(target string) Option {
	return WithInvalidSessionHandler(RedirectHandler(target))
}

// WithURLResolver sets the resolver for named redirect targets.
func WithURLResolver(urls URLResolver) Option {
	return func(g *Guard) {
		g.urls = urls
	}
}

// WithTokenFunc replaces token computation.
func WithTokenFunc(fn TokenFunc) Option {
	return func(g *Guard) {
		if fn != nil {
			g.tokenFunc = fn
		}
	}
}

// WithTokenStore sets the session key used for the trusted token list.
func WithTokenStore(store TokenStore) Option {
	return func(g *Guard) {
		g.tokens = store
	}
}

// WithMetrics sets the verdict observer.
func WithMetrics(m Metrics) Option {
	return func(g *Guard) {
		if m != nil {
			g.metrics = m
		}
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(g *Guard) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates a Guard. Empty config fields take their defaults; unknown values
// are rejected with the matching Err* value.
func New(cfg Config, opts ...Option) (*Guard, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	g := &Guard{
		cfg:    cfg,
		tokens: NewTokenStore(SessionKey),
		generator: fingerprint.NewGenerator(
			fingerprint.WithGranularity(cfg.AddressGranularity),
			fingerprint.WithHash(cfg.Hash),
		),
		onInvalid: DefaultHandler(),
		metrics:   nopMetrics{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	g.tokenFunc = g.generator.FromRequest

	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// MustNew is like New but panics on error.
func MustNew(cfg Config, opts ...Option) *Guard {
	g, err := New(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return g
}

// Config returns the effective configuration.
func (g *Guard) Config() Config {
	return g.cfg
}

// InvalidSessionHandler returns the handler used on mismatch.
func (g *Guard) InvalidSessionHandler() Handler {
	return g.onInvalid
}

// Token computes the fingerprint token for r.
func (g *Guard) Token(r *http.Request) string {
	return g.tokenFunc(r)
}

// Check evaluates r against sess.
//
// A session without tokens records the request token. A known token passes
// unchanged. An unknown token produces the mismatch response, clears the
// session and returns the decorated response in Result.Response.
func (g *Guard) Check(r *http.Request, sess Session) Result {
	token := g.Token(r)
	res := Result{Token: token}

	trusted, ok := g.tokens.ReadTokens(sess)
	switch {
	case !ok:
		g.tokens.WriteToken(sess, token, g.cfg.TokenRetention)
		res.Verdict = VerdictNewSession
	case slices.Contains(trusted, token):
		res.Verdict = VerdictMatch
	default:
		res.Verdict = VerdictMismatch
		g.logger.WarnContext(r.Context(), "session fingerprint mismatch",
			logger.Component("paranoid"),
			logger.Verdict(res.Verdict),
			logger.ClientIP(clientip.Address(r)),
			logger.UserAgent(r.UserAgent()),
			logger.Token(token),
			logger.Path(r.URL.Path),
		)
		res.Response = Reset(g.respond(r), sess, g.cfg.RememberCookie)
	}

	g.metrics.ObserveVerdict(res.Verdict)
	return res
}

// Trust records the request token in sess according to the retention mode and
// returns it. Call it after re-authenticating a client, typically from a route
// the middleware skips: single retention replaces the trusted token, multiple
// retention adds to it.
func (g *Guard) Trust(r *http.Request, sess Session) string {
	token := g.Token(r)
	g.tokens.WriteToken(sess, token, g.cfg.TokenRetention)
	return token
}

// Tokens returns the tokens trusted by sess.
func (g *Guard) Tokens(sess Session) ([]string, bool) {
	return g.tokens.ReadTokens(sess)
}

// respond builds the mismatch response from the configured handler.
func (g *Guard) respond(r *http.Request) handler.Response {
	h := g.onInvalid
	switch h.kind {
	case HandlerCallback:
		return h.callback(r)
	case HandlerRedirect:
		if isLiteralTarget(h.target) {
			return response.Redirect(h.target)
		}
		url, err := g.resolve(h.target)
		if err != nil {
			g.logger.ErrorContext(r.Context(), "invalid session redirect failed",
				logger.Component("paranoid"),
				logger.Error(err),
			)
			return unauthorized()
		}
		return response.Redirect(url)
	case HandlerDefault:
		return unauthorized()
	default:
		return unauthorized()
	}
}

func (g *Guard) resolve(name string) (string, error) {
	if g.urls == nil {
		return "", fmt.Errorf("%w: %q: no url resolver", ErrRouteNotResolved, name)
	}
	url, err := g.urls.URL(name)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrRouteNotResolved, name, err)
	}
	return url, nil
}

func unauthorized() handler.Response {
	return response.Error(fmt.Errorf("%w: %w", response.ErrUnauthorized, ErrSessionMismatch))
}
