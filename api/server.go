package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/eventpilot/backend/assets"
	"github.com/eventpilot/backend/auth"
	"github.com/eventpilot/backend/config"
	"github.com/eventpilot/backend/database"
	"github.com/eventpilot/backend/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(cfg config.Config, database database.Database, authenticator *auth.Authenticator, uploader assets.Uploader) Server {
	address := fmt.Sprintf("0.0.0.0:%s", cfg.Server.Port)
	startupTime := time.Now()

	router := newRouter(database, authenticator, withConfig(cfg), withUploader(uploader))

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return Server{server, startupTime}
}

type router struct {
	config   config.Config
	uploader assets.Uploader
}

func withConfig(c config.Config) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

// withUploader enables POST /api/upload. Without it uploads answer 503.
func withUploader(u assets.Uploader) func(*router) {
	return func(r *router) {
		r.uploader = u
	}
}

func newRouter(database database.Database, authenticator *auth.Authenticator, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	maxUpload := router.config.Upload.MaxBytes
	if maxUpload <= 0 {
		maxUpload = 1 << 20
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(metrics.PrometheusMiddleware)
	chiRouter.Use(HTTPLoggingMiddleware(!router.config.IsProduction()))

	policy := corsPolicy{
		origins:    router.config.Server.AllowedOrigins,
		production: router.config.IsProduction(),
	}
	chiRouter.Use(CORSCheckMiddleware(policy))
	chiRouter.Use(corsMiddleware(policy))

	handlers := initializeHandlers(database, authenticator, router.uploader, maxUpload)
	authMiddleware := newAuthMiddleware(authenticator)

	setupSystemRoutes(chiRouter)
	setupAPIRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

// Uptime is how long ago the server was built.
func (s Server) Uptime() time.Duration {
	return time.Since(s.startupTime)
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
