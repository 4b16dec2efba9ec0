// Package health provides liveness and readiness handlers.
//
//	r.Get("/live", health.Liveness[*router.Context])
//	r.Get("/ready", health.Readiness[*router.Context](log,
//		redis.Healthcheck(client),
//		pg.Healthcheck(pool),
//	))
//
// A check is any func(context.Context) error. Readiness runs them in parallel and
// answers 503 through the router's ErrorHandler when one fails.
package health
