// main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"

	"github.com/Marga-Ghale/ora-project-dashboard/internal/api"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/api/handlers"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/api/middleware"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/config"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/cron"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/db"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/logging"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/repository"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/seed"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/service"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/socket"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/web"
)

func main() {
	// ============================================
	// Load configuration
	// ============================================
	cfg, err := config.Load()
	if err != nil {
		logging.L().WithError(err).Fatal("invalid configuration")
	}

	logging.Init(cfg.LogLevel, cfg.LogFormat)
	log := logging.C("main")

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	location, err := cfg.Location()
	if err != nil {
		log.WithError(err).Fatal("invalid time zone")
	}

	// ============================================
	// Initialize Redis (optional)
	// ============================================
	var redisDB *db.RedisDB
	if cfg.RedisURL != "" {
		redisDB, err = db.NewRedisDB(cfg.RedisURL)
		if err != nil {
			log.WithError(err).Warn("redis unavailable, continuing with in-memory forms and no view cache")
			redisDB = nil
		} else {
			defer redisDB.Close()
			log.Info("redis cache enabled")
		}
	}

	// ============================================
	// Initialize Repositories
	// ============================================
	repos := repository.NewRepositories(redisDB, cfg.FormTTL)

	// ============================================
	// Seed Data
	// ============================================
	if cfg.SeedData {
		if err := seed.SeedData(context.Background(), repos); err != nil {
			log.WithError(err).Fatal("seeding failed")
		}
	}

	// ============================================
	// Initialize WebSocket Hub
	// ============================================
	hubCtx, stopHub := context.WithCancel(context.Background())
	hub := socket.NewHub()
	go hub.Run(hubCtx)
	wsHandler := socket.NewHandler(hub, cfg.CORSOrigins)

	// ============================================
	// Initialize All Services
	// ============================================
	deps := &service.ServiceDeps{
		Repos:       repos,
		Broadcaster: socket.NewBroadcaster(hub),
		CacheTTL:    cfg.ViewCacheTTL,
		Location:    location,
	}
	if redisDB != nil {
		deps.Cache = redisDB
	}
	services := service.NewServices(deps)

	// ============================================
	// Initialize Handlers
	// ============================================
	locale, matched, err := web.NewLocale(cfg.Locale)
	if err != nil {
		log.WithError(err).Fatal("invalid locale")
	}
	if !matched {
		log.WithField("locale", cfg.Locale).Warnf("unsupported locale, using %s", locale.Tag())
	}
	renderer, err := web.NewRenderer(locale)
	if err != nil {
		log.WithError(err).Fatal("failed to load templates")
	}
	h := handlers.NewHandlers(services, renderer)

	// ============================================
	// Initialize Cron Scheduler
	// ============================================
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	scheduler := cron.NewScheduler(services, limiter, cfg.FormTTL)
	if err := scheduler.Start(); err != nil {
		log.WithError(err).Fatal("failed to start scheduler")
	}

	// ============================================
	// Create Gin Router
	// ============================================
	cacheStatus := "disabled"
	if redisDB != nil {
		cacheStatus = "connected"
	}
	r := api.NewRouter(api.RouterDeps{
		Handlers:    h,
		Hub:         hub,
		WS:          wsHandler,
		RateLimiter: limiter,
		CORSOrigins: cfg.CORSOrigins,
		CacheStatus: cacheStatus,
	})

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		log.WithField("port", cfg.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}
	scheduler.Stop()
	stopHub()

	log.Info("server exited")
}
