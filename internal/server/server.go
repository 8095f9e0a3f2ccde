// Package server wires the stores, services, handlers and routes together
// and runs the HTTP server.
//
// DEPENDENCY FLOW:
//
//	config → Document Store (mongo | sqlite) ─┐
//	config → Media Store (cloudinary | nil)  ─┼→ services → handlers → routes
//
// This is the composition root: nothing else in the tree constructs a
// concrete store.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/sweet-memories/internal/config"
	"github.com/sakif/sweet-memories/internal/handler"
	"github.com/sakif/sweet-memories/internal/media"
	"github.com/sakif/sweet-memories/internal/media/cloudinary"
	"github.com/sakif/sweet-memories/internal/middleware"
	"github.com/sakif/sweet-memories/internal/repository"
	mongoRepo "github.com/sakif/sweet-memories/internal/repository/mongo"
	sqliteRepo "github.com/sakif/sweet-memories/internal/repository/sqlite"
	"github.com/sakif/sweet-memories/internal/service"
)

// Server owns the router and the long-lived resources: the store handle
// and the memory service's background asset cleanups.
type Server struct {
	router   *chi.Mux
	config   *config.Config
	logger   *slog.Logger
	store    repository.Store
	memories *service.MemoryService
}

// New builds the store, the media client and every handler.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	store, err := openStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
	}
	s.setupRoutes(openMedia(cfg, logger))

	return s, nil
}

// openStore picks the Document Store backend. Mongo connects lazily, so
// this never dials it.
func openStore(cfg *config.Config, logger *slog.Logger) (repository.Store, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		if cfg.SQLitePath != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
		db, err := sqliteRepo.New(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		return db, nil

	default:
		if cfg.MongoURI == "" {
			logger.Warn("MONGODB_URI not set: store calls will fail until it is configured")
		}
		return mongoRepo.New(cfg.MongoURI, cfg.MongoDatabase), nil
	}
}

// mediaCredentials collects the Cloudinary settings from config.
func mediaCredentials(cfg *config.Config) cloudinary.Credentials {
	return cloudinary.Credentials{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		URL:       cfg.CloudinaryURL,
	}
}

// openMedia returns the media store, or nil when it cannot be used. The
// interface is returned as an untyped nil in that case so services can
// compare against nil.
func openMedia(cfg *config.Config, logger *slog.Logger) media.Store {
	creds := mediaCredentials(cfg)
	if !creds.Usable() {
		logger.Warn("cloudinary not configured: image uploads are disabled")
		return nil
	}

	store, err := cloudinary.New(creds)
	if err != nil {
		logger.Warn("cloudinary unavailable: image uploads are disabled", slog.String("error", err.Error()))
		return nil
	}
	return store
}

// setupRoutes registers middleware and routes.
//
// ROUTES:
// GET    /api/health
// POST   /api/upload
// POST   /api/folder-upload
// GET    /api/memories
// POST   /api/memories
// PATCH  /api/memories/{id}
// DELETE /api/memories/{id}
// GET    /api/guestbook
// POST   /api/guestbook
//
// Middleware runs in the order added: request id, real IP, logging, panic
// recovery, CORS, body size cap.
func (s *Server) setupRoutes(mediaStore media.Store) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.CORS(s.config.CORSAllowedOrigins))
	s.router.Use(chimiddleware.RequestSize(s.config.MaxBodyBytes))

	s.memories = service.NewMemoryService(s.store, mediaStore, s.logger)
	memoryHandler := handler.NewMemoryHandler(s.memories, s.logger)
	guestbookHandler := handler.NewGuestbookHandler(service.NewGuestbookService(s.store, s.logger), s.logger)
	uploadHandler := handler.NewUploadHandler(service.NewUploadService(mediaStore, s.logger), s.logger)
	healthHandler := handler.NewHealthHandler(service.NewHealthService(s.store, mediaCredentials(s.config).Complete()))

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.HandleHealth)

		r.Post("/upload", uploadHandler.HandleUpload)
		r.Post("/folder-upload", uploadHandler.HandleFolderUpload)

		r.Get("/memories", memoryHandler.HandleList)
		r.Post("/memories", memoryHandler.HandleCreate)
		r.Patch("/memories/{id}", memoryHandler.HandleSetFavorite)
		r.Delete("/memories/{id}", memoryHandler.HandleDelete)

		r.Get("/guestbook", guestbookHandler.HandleList)
		r.Post("/guestbook", guestbookHandler.HandleCreate)
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until SIGINT/SIGTERM, then shuts down in order:
//  1. stop accepting connections and drain in-flight requests
//  2. stop scheduling asset cleanups and wait for the scheduled ones
//  3. close the store
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Port),
		Handler: s.router,
		// Uploads carry base64 images up to MaxBodyBytes, so reads get a
		// generous window.
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("store", s.config.DBDriver),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	var runErr error
	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			runErr = fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	s.memories.Wait()
	if err := s.Close(context.Background()); err != nil {
		s.logger.Error("closing store", slog.String("error", err.Error()))
	}
	if runErr == nil {
		s.logger.Info("server stopped gracefully")
	}
	return runErr
}

// Close releases the store.
func (s *Server) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.store.Close(ctx)
}
