package middleware

import (
	"errors"
	"io"
	"log/slog"

	"github.com/dmitrymomot/paranoid/core/handler"
	"github.com/dmitrymomot/paranoid/core/logger"
	"github.com/dmitrymomot/paranoid/core/paranoid"
	"github.com/dmitrymomot/paranoid/core/response"
)

// ErrNoSession is returned when the paranoid middleware runs without a session in context.
var ErrNoSession = errors.New("paranoid middleware: no session in context")

type verdictKey struct{}

// ParanoidConfig configures the paranoid middleware.
type ParanoidConfig[C handler.Context] struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx C) bool
	// Guard evaluates requests. When nil, one is built from Config and Options.
	Guard *paranoid.Guard
	// Config is used only when Guard is nil
	Config paranoid.Config
	// Options are used only when Guard is nil
	Options []paranoid.Option
	// Session returns the session to check (default: GetSession)
	Session func(ctx C) (paranoid.Session, bool)
	// Logger for structured logging (default: slog with io.Discard)
	Logger *slog.Logger
}

// Paranoid creates middleware that rejects requests whose client fingerprint
// does not match the one recorded in their session.
//
// It must run after the Session middleware:
//
//	r.Use(middleware.Session[*router.Context](transport))
//	r.Use(middleware.Paranoid[*router.Context](guard))
//
// On mismatch the handler is not called; the guard's invalid-session response
// is returned and the session is cleared.
func Paranoid[C handler.Context](guard *paranoid.Guard) handler.Middleware[C] {
	return ParanoidWithConfig(ParanoidConfig[C]{
		Guard:  guard,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

// ParanoidWithConfig creates a paranoid middleware with custom configuration.
// It panics if the guard configuration is invalid.
//
//	cfg := middleware.ParanoidConfig[*router.Context]{
//		Config:  paranoid.Config{TokenRetention: paranoid.RetentionMultiple},
//		Options: []paranoid.Option{paranoid.WithRedirect("/login")},
//		Skip: func(ctx *router.Context) bool {
//			return ctx.Request().URL.Path == "/health"
//		},
//	}
//	r.Use(middleware.ParanoidWithConfig(cfg))
func ParanoidWithConfig[C handler.Context](cfg ParanoidConfig[C]) handler.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if cfg.Guard == nil {
		opts := append([]paranoid.Option{paranoid.WithLogger(cfg.Logger)}, cfg.Options...)
		guard, err := paranoid.New(cfg.Config, opts...)
		if err != nil {
			panic("paranoid middleware: " + err.Error())
		}
		cfg.Guard = guard
	}

	if cfg.Session == nil {
		cfg.Session = func(ctx C) (paranoid.Session, bool) {
			sess, ok := GetSession(ctx)
			if !ok {
				return nil, false
			}
			return sess, true
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			if err := ctx.Err(); err != nil {
				return response.Error(err)
			}

			sess, ok := cfg.Session(ctx)
			if !ok {
				cfg.Logger.ErrorContext(ctx, "paranoid middleware: session missing, is the Session middleware installed?",
					logger.Component("paranoid"),
				)
				return response.Error(response.ErrInternalServerError.WithError(ErrNoSession))
			}

			res := cfg.Guard.Check(ctx.Request(), sess)
			ctx.SetValue(verdictKey{}, res.Verdict)

			if res.Verdict == paranoid.VerdictMismatch {
				return res.Response
			}
			return next(ctx)
		}
	}
}

// GetVerdict returns the verdict the paranoid middleware reached for this request.
func GetVerdict(ctx handler.Context) (paranoid.Verdict, bool) {
	if ctx == nil {
		return 0, false
	}
	v, ok := ctx.Value(verdictKey{}).(paranoid.Verdict)
	return v, ok
}
