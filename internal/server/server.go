// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the composition root: the full dependency chain is assembled here
// and nowhere else.
//
//	sqlite.DB → AuthService/ArticleService → AuthHandler/ArticleHandler
//	TokenService ↗ (shared by AuthService and the RequireAuth middleware)
//
// Each layer receives only what it needs - services get the repository
// interfaces, handlers get the services, and no handler ever touches the
// store directly.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/articles-api/internal/auth"
	"github.com/sakif/articles-api/internal/config"
	"github.com/sakif/articles-api/internal/handler"
	"github.com/sakif/articles-api/internal/middleware"
	sqliteRepo "github.com/sakif/articles-api/internal/repository/sqlite"
	"github.com/sakif/articles-api/internal/service"
)

// Server owns the router and the resources that must be released at
// shutdown (the store).
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server with all dependencies wired.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware and all route handlers.
//
// ROUTE STRUCTURE:
//
//	POST   /auth/register          → create account (public)
//	POST   /auth/login             → issue session token (public)
//	GET    /api/articles           → list articles (public)
//	POST   /api/articles           → create article (auth)
//	PUT    /api/articles/{id}      → partial update (auth)
//	DELETE /api/articles/{id}      → delete (auth)
//	/api/v1/...                    → same article routes, same shapes
//
// /api/v1 exists for older clients that still call the versioned prefix.
// The response envelope is identical on both mounts.
func (s *Server) setupRoutes() error {
	// Global middleware, in order: request ID → real IP → panic recovery →
	// request logging.
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret, s.config.TokenTTL)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)
	articleService := service.NewArticleService(s.db, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	articleHandler := handler.NewArticleHandler(articleService, s.logger)

	s.router.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
	})

	articleRoutes := func(r chi.Router) {
		r.Get("/articles", articleHandler.HandleList)

		// Every mutating route sits behind the auth gate.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))
			r.Post("/articles", articleHandler.HandleCreate)
			r.Put("/articles/{id}", articleHandler.HandleUpdate)
			r.Delete("/articles/{id}", articleHandler.HandleDelete)
		})
	}
	s.router.Route("/api", articleRoutes)
	s.router.Route("/api/v1", articleRoutes)

	// Optional static file serving for a public/ directory.
	if s.config.StaticDir != "" {
		fileServer := http.FileServer(http.Dir(s.config.StaticDir))
		s.router.Handle("/*", fileServer)
	} else {
		s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"not found","code":"not_found"}` + "\n"))
		})
	}

	return nil
}

// Handler exposes the router, mainly so tests can drive the full stack with
// httptest without opening a port.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the server's resources. Start calls this itself; callers
// that never Start (tests) should Close explicitly.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30s to
// drain, then close the store.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("store", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
