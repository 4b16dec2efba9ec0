package middleware

import (
	"io"
	"log/slog"

	"github.com/dmitrymomot/paranoid/core/handler"
	"github.com/dmitrymomot/paranoid/core/logger"
	"github.com/dmitrymomot/paranoid/core/response"
	"github.com/dmitrymomot/paranoid/core/session"
)

type sessionKey struct{}

// SessionTransport loads and stores sessions for a request.
// sessiontransport.Cookie implements it.
type SessionTransport interface {
	Load(handler.Context) (*session.Session, error)
	Store(handler.Context, *session.Session) error
}

// SessionConfig configures the session middleware.
type SessionConfig[C handler.Context] struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx C) bool
	// Transport loads the session before the handler and stores it afterwards (required)
	Transport SessionTransport
	// Logger for structured logging (default: slog with io.Discard)
	Logger *slog.Logger
	// ErrorHandler builds the response when storing the session fails.
	// Default: response.Error(response.ErrInternalServerError)
	ErrorHandler func(ctx C, err error) handler.Response
}

// Session creates middleware that loads the session from transport, puts it in
// the request context, runs the handler and stores the session afterwards.
//
// A session cleared during the request is deleted from the store and its
// cookie expired by the transport.
//
//	r.Use(middleware.Session[*router.Context](transport))
//
//	r.Get("/", func(ctx *router.Context) handler.Response {
//		sess := middleware.MustGetSession(ctx)
//		sess.Set("visits", 1)
//		return response.String("ok")
//	})
func Session[C handler.Context](transport SessionTransport) handler.Middleware[C] {
	return SessionWithConfig(SessionConfig[C]{
		Transport: transport,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

// SessionWithConfig creates a session middleware with custom configuration.
//
//	cfg := middleware.SessionConfig[*router.Context]{
//		Transport: transport,
//		Logger:    log,
//		Skip: func(ctx *router.Context) bool {
//			return ctx.Request().URL.Path == "/health"
//		},
//	}
//	r.Use(middleware.SessionWithConfig(cfg))
func SessionWithConfig[C handler.Context](cfg SessionConfig[C]) handler.Middleware[C] {
	if cfg.Transport == nil {
		panic("session middleware: transport is required")
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(ctx C, err error) handler.Response {
			return response.Error(response.ErrInternalServerError)
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			sess, err := cfg.Transport.Load(ctx)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return response.Error(ctxErr)
				}
				cfg.Logger.ErrorContext(ctx, "session middleware: failed to load session",
					logger.Component("session"),
					logger.Error(err),
				)
				return cfg.ErrorHandler(ctx, err)
			}

			ctx.SetValue(sessionKey{}, sess)

			resp := next(ctx)

			// Handlers may swap the session in context.
			current, ok := GetSession(ctx)
			if !ok {
				return resp
			}

			if err := cfg.Transport.Store(ctx, current); err != nil {
				cfg.Logger.ErrorContext(ctx, "session middleware: failed to store session",
					logger.Component("session"),
					logger.SessionID(current.ID),
					logger.Error(err),
				)
				return cfg.ErrorHandler(ctx, err)
			}

			return resp
		}
	}
}

// GetSession retrieves the session from context.
func GetSession(ctx handler.Context) (*session.Session, bool) {
	if ctx == nil {
		return nil, false
	}
	sess, ok := ctx.Value(sessionKey{}).(*session.Session)
	return sess, ok && sess != nil
}

// MustGetSession retrieves the session from context or panics if not found.
// Use this when session existence is guaranteed by middleware.
func MustGetSession(ctx handler.Context) *session.Session {
	sess, ok := GetSession(ctx)
	if !ok {
		panic("session not found in context")
	}
	return sess
}

// SetSession replaces the session in context.
func SetSession(ctx handler.Context, sess *session.Session) {
	ctx.SetValue(sessionKey{}, sess)
}
