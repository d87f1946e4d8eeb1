package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Marga-Ghale/ora-project-dashboard/internal/api/handlers"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/api/middleware"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/repository"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/seed"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/service"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/socket"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/web"
)

func newTestRouter(t *testing.T, limiter *middleware.RateLimiter) *gin.Engine {
	return newTestRouterWithOrigins(t, limiter, []string{"http://localhost:5173"})
}

func newTestRouterWithOrigins(t *testing.T, limiter *middleware.RateLimiter, origins []string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos := repository.NewRepositories(nil, time.Minute)
	require.NoError(t, seed.SeedData(context.Background(), repos))

	hub := socket.NewHub()
	services := service.NewServices(&service.ServiceDeps{
		Repos:       repos,
		Broadcaster: socket.NewBroadcaster(hub),
		Location:    time.UTC,
	})

	locale, _, err := web.NewLocale("en-US")
	require.NoError(t, err)
	renderer, err := web.NewRenderer(locale)
	require.NoError(t, err)

	return NewRouter(RouterDeps{
		Handlers:    handlers.NewHandlers(services, renderer),
		Hub:         hub,
		WS:          socket.NewHandler(hub, nil),
		RateLimiter: limiter,
		CORSOrigins: origins,
		CacheStatus: "disabled",
	})
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	r := newTestRouter(t, nil)

	w := get(r, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "disabled", body["cache"])
	assert.Equal(t, float64(0), body["ws_clients"])
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_Metrics(t *testing.T) {
	r := newTestRouter(t, nil)

	get(r, "/api/projects")
	w := get(r, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ora_dashboard_http_requests_total")
}

func TestRouter_Routes(t *testing.T) {
	r := newTestRouter(t, nil)

	for _, path := range []string{"/", "/api/projects", "/api/projects/stats", "/api/options"} {
		assert.Equal(t, http.StatusOK, get(r, path).Code, path)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/forms", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	assert.Equal(t, http.StatusNotFound, get(r, "/api/forms/unknown").Code)
}

func TestRouter_DashboardEnglish(t *testing.T) {
	r := newTestRouter(t, nil)

	w := get(r, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "4/15/2024")
}

func TestRouter_RateLimit(t *testing.T) {
	r := newTestRouter(t, middleware.NewRateLimiter(1, 2))

	assert.Equal(t, http.StatusOK, get(r, "/api/options").Code)
	assert.Equal(t, http.StatusOK, get(r, "/api/options").Code)

	w := get(r, "/api/options")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "Too many requests"))
}

func TestRouter_CORSPreflight(t *testing.T) {
	r := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/forms", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRouter_CORSWithoutOriginsSkipsCredentials(t *testing.T) {
	r := newTestRouterWithOrigins(t, nil, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/forms", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSConfig(t *testing.T) {
	cfg := corsConfig(nil)
	assert.True(t, cfg.AllowAllOrigins)
	assert.False(t, cfg.AllowCredentials)

	cfg = corsConfig([]string{"*"})
	assert.True(t, cfg.AllowAllOrigins)
	assert.False(t, cfg.AllowCredentials)

	cfg = corsConfig([]string{"http://localhost:3000"})
	assert.False(t, cfg.AllowAllOrigins)
	assert.True(t, cfg.AllowCredentials)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowOrigins)
}
