// internal/api/router.go
package api

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Marga-Ghale/ora-project-dashboard/internal/api/handlers"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/api/middleware"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/metrics"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/socket"
)

// RouterDeps is everything the HTTP surface needs.
type RouterDeps struct {
	Handlers    *handlers.Handlers
	Hub         *socket.Hub
	WS          *socket.Handler
	RateLimiter *middleware.RateLimiter
	CORSOrigins []string
	// CacheStatus reports "connected" or "disabled" for /health.
	CacheStatus string
}

// NewRouter wires middleware and routes.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(metrics.GinMiddleware())

	r.Use(cors.New(corsConfig(deps.CORSOrigins)))

	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.Middleware())
	}

	h := deps.Handlers

	// Health check
	r.GET("/health", func(c *gin.Context) {
		body := gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"cache":     deps.CacheStatus,
		}
		if deps.Hub != nil {
			body["websocket"] = "active"
			body["ws_clients"] = deps.Hub.GetConnectedClientsCount()
		}
		c.JSON(http.StatusOK, body)
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// HTML dashboard
	r.GET("/", h.Dashboard.Show)

	api := r.Group("/api")
	{
		if deps.WS != nil {
			api.GET("/ws", deps.WS.HandleWebSocket)
		}

		api.GET("/options", h.Option.List)

		// Project routes
		projects := api.Group("/projects")
		{
			projects.GET("", h.Project.List)
			projects.POST("", h.Project.Create)
			projects.GET("/stats", h.Project.Stats)
		}

		// Form routes
		forms := api.Group("/forms")
		{
			forms.POST("", h.Form.Create)
			forms.GET("/:id", h.Form.Get)
			forms.PATCH("/:id", h.Form.Update)
			forms.DELETE("/:id", h.Form.Discard)
			forms.POST("/:id/open", h.Form.Open)
			forms.PUT("/:id/scratch", h.Form.SetScratch)
			forms.POST("/:id/keys", h.Form.PressKey)
			forms.DELETE("/:id/members/:index", h.Form.RemoveMember)
			forms.POST("/:id/submit", h.Form.Submit)
			forms.POST("/:id/cancel", h.Form.Cancel)
		}
	}

	return r
}

// corsConfig allows credentials only for explicitly listed origins. With no
// origins configured every origin is allowed without credentials.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowOrigins = nil
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowCredentials = true
	return cfg
}
