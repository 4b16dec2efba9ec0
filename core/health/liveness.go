package health

import (
	"github.com/dmitrymomot/paranoid/core/handler"
	"github.com/dmitrymomot/paranoid/core/response"
)

// Liveness reports that the process is up. It never checks dependencies.
//
//	r.Get("/live", health.Liveness[*router.Context])
func Liveness[C handler.Context](C) handler.Response {
	return response.String("ALIVE")
}
