package middleware

import (
	"github.com/google/uuid"

	"github.com/dmitrymomot/paranoid/core/handler"
	"github.com/dmitrymomot/paranoid/core/response"
)

// maxRequestIDLen bounds incoming IDs accepted with UseExisting.
const maxRequestIDLen = 128

type requestIDKey struct{}

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig[C handler.Context] struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx C) bool
	// Generator creates new request IDs (default: UUID v4)
	Generator func() string
	// HeaderName specifies the header name for the request ID (default: "X-Request-ID")
	HeaderName string
	// UseExisting reuses a well-formed ID sent by the client or a proxy
	UseExisting bool
}

// RequestID creates a request ID middleware with default configuration.
// Every request gets a new UUID, stored in context and echoed in the response header.
func RequestID[C handler.Context]() handler.Middleware[C] {
	return RequestIDWithConfig(RequestIDConfig[C]{})
}

// RequestIDWithConfig creates a request ID middleware with custom configuration.
func RequestIDWithConfig[C handler.Context](cfg RequestIDConfig[C]) handler.Middleware[C] {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Request-ID"
	}

	if cfg.Generator == nil {
		cfg.Generator = func() string {
			return uuid.New().String()
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			var requestID string
			if cfg.UseExisting {
				if existing := ctx.Request().Header.Get(cfg.HeaderName); validRequestID(existing) {
					requestID = existing
				}
			}
			if requestID == "" {
				requestID = cfg.Generator()
			}

			ctx.SetValue(requestIDKey{}, requestID)

			return response.WithHeaders(next(ctx), map[string]string{cfg.HeaderName: requestID})
		}
	}
}

// GetRequestID retrieves the request ID from the request context.
func GetRequestID(ctx handler.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if c := id[i]; c < 0x21 || c > 0x7e {
			return false
		}
	}
	return true
}
