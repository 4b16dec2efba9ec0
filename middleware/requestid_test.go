package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/paranoid/core/handler"
	"github.com/dmitrymomot/paranoid/core/response"
	"github.com/dmitrymomot/paranoid/core/router"
	"github.com/dmitrymomot/paranoid/middleware"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	newRouter := func(mw handler.Middleware[*router.Context]) router.Router[*router.Context] {
		r := router.New[*router.Context]()
		r.Use(mw)
		r.Get("/", func(ctx *router.Context) handler.Response {
			id, _ := middleware.GetRequestID(ctx)
			return response.String(id)
		})
		return r
	}

	t.Run("generates uuid", func(t *testing.T) {
		t.Parallel()

		r := newRouter(middleware.RequestID[*router.Context]())
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		id := rec.Header().Get("X-Request-ID")
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, rec.Body.String())
	})

	t.Run("reuses valid incoming id", func(t *testing.T) {
		t.Parallel()

		r := newRouter(middleware.RequestIDWithConfig(middleware.RequestIDConfig[*router.Context]{UseExisting: true}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "upstream-42")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, "upstream-42", rec.Header().Get("X-Request-ID"))
	})

	t.Run("rejects oversized incoming id", func(t *testing.T) {
		t.Parallel()

		r := newRouter(middleware.RequestIDWithConfig(middleware.RequestIDConfig[*router.Context]{
			UseExisting: true,
			Generator:   func() string { return "generated" },
			HeaderName:  "X-Trace",
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Trace", strings.Repeat("a", 200))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, "generated", rec.Header().Get("X-Trace"))
	})
}
