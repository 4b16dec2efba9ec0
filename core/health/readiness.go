package health

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/paranoid/core/handler"
	"github.com/dmitrymomot/paranoid/core/logger"
	"github.com/dmitrymomot/paranoid/core/response"
)

// Check probes one dependency.
type Check func(context.Context) error

// DefaultTimeout bounds a readiness probe.
const DefaultTimeout = 5 * time.Second

// Readiness runs every check concurrently and answers "READY", or 503 when
// any of them fails or the probe exceeds DefaultTimeout.
//
//	r.Get("/ready", health.Readiness[*router.Context](log,
//		redis.Healthcheck(client),
//	))
func Readiness[C handler.Context](log *slog.Logger, checks ...Check) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		probeCtx, cancel := context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()

		g, gctx := errgroup.WithContext(probeCtx)
		for _, check := range checks {
			g.Go(func() error { return check(gctx) })
		}

		if err := g.Wait(); err != nil {
			log.ErrorContext(ctx, "readiness check failed",
				logger.Component("health"),
				logger.Error(err),
			)
			return response.Error(response.ErrServiceUnavailable.WithError(err))
		}
		return response.String("READY")
	}
}
