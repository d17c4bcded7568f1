// Package server exposes the feed engine over HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"decathlonminds/internal/cache"
	"decathlonminds/internal/config"
	"decathlonminds/internal/feed"
	"decathlonminds/internal/fetch"
	"decathlonminds/internal/logger"
)

// Server is the HTTP front of the feed engine.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	assembler  *feed.Assembler
	cache      *cache.FeedCache
	checker    *fetch.Checker
	config     config.ServerConfig
	log        *slog.Logger
}

// New creates an HTTP server around the assembler.
func New(assembler *feed.Assembler, c *cache.FeedCache, cfg config.ServerConfig) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		assembler: assembler,
		cache:     c,
		checker:   fetch.NewChecker(),
		config:    cfg,
		log:       logger.Get(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	origins := s.config.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/feed", s.handleGetFeed)
		r.Post("/feed", s.handlePostFeed)
		r.Get("/articles", s.handleArticles)
		r.Get("/images/check", s.handleImageCheck)
	})
}

// Start runs the server until it is shut down.
func (s *Server) Start() error {
	s.log.Info("starting HTTP server",
		"addr", s.httpServer.Addr,
		"read_timeout", s.config.ReadTimeout,
		"write_timeout", s.config.WriteTimeout,
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed to start: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down HTTP server")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

// Router returns the chi router, useful for tests.
func (s *Server) Router() *chi.Mux {
	return s.router
}
