// Copyright (c) 2026 VisionLife Creative
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/visionlife/agency-go/internal/cache"
	"github.com/visionlife/agency-go/internal/config"
	"github.com/visionlife/agency-go/internal/handler"
	"github.com/visionlife/agency-go/internal/handler/api"
	"github.com/visionlife/agency-go/internal/logging"
	"github.com/visionlife/agency-go/internal/middleware"
	"github.com/visionlife/agency-go/internal/render"
	"github.com/visionlife/agency-go/internal/scheduler"
	"github.com/visionlife/agency-go/internal/session"
	"github.com/visionlife/agency-go/internal/store"
	"github.com/visionlife/agency-go/internal/upload"
	"github.com/visionlife/agency-go/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// crudHandlers defines the standard CRUD handler methods.
type crudHandlers struct {
	List     http.HandlerFunc
	NewForm  http.HandlerFunc
	Create   http.HandlerFunc
	EditForm http.HandlerFunc
	Update   http.HandlerFunc
	Delete   http.HandlerFunc
}

// registerCRUD registers standard CRUD routes for a resource.
// Routes: GET /, GET /new, POST /, GET /{id}, POST /{id}, POST /{id}/delete
func registerCRUD(r chi.Router, base, baseID string, h crudHandlers) {
	r.Get(base, h.List)
	r.Get(base+handler.RouteSuffixNew, h.NewForm)
	r.Post(base, h.Create)
	r.Get(baseID, h.EditForm)
	r.Post(baseID, h.Update)
	r.Post(baseID+handler.RouteSuffixDelete, h.Delete)
}

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Agency - marketing site and content admin\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AGENCY_SESSION_SECRET    Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AGENCY_DB_PATH           SQLite database path (default: ./data/agency.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AGENCY_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AGENCY_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AGENCY_UPLOADS_DIR       Image upload directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AGENCY_REDIS_URL         Redis URL for the content cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AGENCY_ADMIN_EMAIL       Initial admin email (optional, with AGENCY_ADMIN_PASSWORD)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AGENCY_DO_SEED           Seed demo content on startup (default: false)\n")
	}

	flag.Parse()

	// Handle -h/-help flag
	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	// Handle -v/-version flag
	if *showVersion {
		_, _ = fmt.Printf("agency %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Initialize database
	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	// Run migrations
	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also persist WARN and ERROR logs to the events table
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	eventLogHandler := logging.NewEventLogHandler(textHandler, db)
	logger = slog.New(eventLogHandler)
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	ctx := context.Background()

	// Bootstrap the initial admin account when configured
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := store.EnsureAdmin(ctx, db, cfg.AdminEmail, cfg.AdminPassword, logger); err != nil {
			return fmt.Errorf("ensuring admin account: %w", err)
		}
	}

	// Seed demo content if enabled
	if cfg.DoSeed {
		if err := store.SeedContent(ctx, db, logger); err != nil {
			return fmt.Errorf("seeding demo content: %w", err)
		}
	}

	queries := store.New(db)

	// Initialize session manager
	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	// Initialize the content cache backend. Redis when configured,
	// in-process memory otherwise; Redis failure falls back to memory.
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	var backend cache.Cache
	if cfg.UseRedisCache() {
		redisCache, err := cache.NewRedisCache(cache.RedisOptions{
			URL:        cfg.RedisURL,
			Prefix:     cfg.CachePrefix,
			DefaultTTL: cacheTTL,
		})
		if err != nil {
			slog.Warn("Redis unavailable, using memory cache", "error", err)
			backend = cache.NewMemoryCache(cacheTTL)
		} else {
			slog.Info("content cache initialized", "backend", "redis", "url", cfg.RedisURL)
			backend = redisCache
		}
	} else {
		slog.Info("content cache initialized", "backend", "memory")
		backend = cache.NewMemoryCache(cacheTTL)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			slog.Error("error closing cache backend", "error", err)
		}
	}()
	contentCache := cache.NewContentCache(backend, logger)

	// Initialize template renderer
	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}

	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	// Initialize the image upload service
	uploads, err := upload.NewService(cfg.UploadsDir, logger)
	if err != nil {
		return fmt.Errorf("initializing upload service: %w", err)
	}

	// Initialize and start scheduler
	sched := scheduler.New(queries, uploads, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	// Initialize login protection
	loginProtection := middleware.NewLoginProtector()

	// CSRF protection middleware (applied globally, API routes are exempted)
	csrfConfig := middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment(), cfg.ServerAddr())
	csrfMiddleware := middleware.CSRF(csrfConfig)
	slog.Info("CSRF protection initialized")

	// Initialize handlers
	authHandler := handler.NewAuthHandler(db, renderer, sessionManager, loginProtection)
	adminHandler := handler.NewAdminHandler(db, renderer)
	projectsHandler := handler.NewProjectsHandler(db, renderer, contentCache)
	testimonialsHandler := handler.NewTestimonialsHandler(db, renderer, contentCache)
	servicesHandler := handler.NewServicesHandler(db, renderer, contentCache)
	postsHandler := handler.NewPostsHandler(db, renderer, contentCache)
	statsHandler := handler.NewStatsHandler(db, renderer, contentCache)
	inquiriesHandler := handler.NewInquiriesHandler(db, renderer)
	mediaHandler := handler.NewMediaHandler(uploads)
	frontendHandler := handler.NewFrontendHandler(db, renderer, contentCache)
	apiHandler := api.NewHandler(db)

	// Create router
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5)) // Gzip compression with level 5
	r.Use(chimw.GetHead)     // Handle HEAD requests for uptime monitoring
	r.Use(middleware.SecurityHeaders)
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.SkipCSRF("/api/v1"))
	r.Use(csrfMiddleware)

	// Health check route
	r.Get("/healthz", frontendHandler.Health)

	// Public frontend routes
	r.Get(handler.RouteRoot, frontendHandler.Home)
	r.Get(handler.RouteServices, frontendHandler.Services)
	r.Get(handler.RoutePortfolio, frontendHandler.Portfolio)
	r.Get(handler.RouteContact, frontendHandler.ContactForm)
	r.Post(handler.RouteContact, frontendHandler.ContactSubmit)
	r.Get(handler.RouteBlog, frontendHandler.BlogIndex)
	r.Get(handler.RouteBlogSlug, frontendHandler.BlogPost)

	// Admin routes
	r.Route("/admin", func(r chi.Router) {
		// Auth routes (public)
		r.Get(handler.RouteLogin, authHandler.LoginForm)
		r.Post(handler.RouteLogin, authHandler.Login)
		r.Get(handler.RouteSetup, authHandler.SetupForm)
		r.Post(handler.RouteSetup, authHandler.Setup)
		r.Post(handler.RouteLogout, authHandler.Logout)

		// Protected routes (signed-in, allow-listed users only)
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(sessionManager))
			r.Use(middleware.LoadUser(sessionManager, queries, logger))
			r.Use(middleware.RequireAllowlisted(sessionManager, queries, logger))

			r.Get(handler.RouteRoot, adminHandler.Dashboard)

			registerCRUD(r, handler.RouteProjects, handler.RouteProjectsID, crudHandlers{
				List: projectsHandler.List, NewForm: projectsHandler.NewForm, Create: projectsHandler.Create,
				EditForm: projectsHandler.EditForm, Update: projectsHandler.Update, Delete: projectsHandler.Delete,
			})

			registerCRUD(r, handler.RouteTestimonials, handler.RouteTestimonialsID, crudHandlers{
				List: testimonialsHandler.List, NewForm: testimonialsHandler.NewForm, Create: testimonialsHandler.Create,
				EditForm: testimonialsHandler.EditForm, Update: testimonialsHandler.Update, Delete: testimonialsHandler.Delete,
			})

			registerCRUD(r, handler.RouteServices, handler.RouteServicesID, crudHandlers{
				List: servicesHandler.List, NewForm: servicesHandler.NewForm, Create: servicesHandler.Create,
				EditForm: servicesHandler.EditForm, Update: servicesHandler.Update, Delete: servicesHandler.Delete,
			})

			registerCRUD(r, handler.RoutePosts, handler.RoutePostsID, crudHandlers{
				List: postsHandler.List, NewForm: postsHandler.NewForm, Create: postsHandler.Create,
				EditForm: postsHandler.EditForm, Update: postsHandler.Update, Delete: postsHandler.Delete,
			})

			registerCRUD(r, handler.RouteStats, handler.RouteStatsID, crudHandlers{
				List: statsHandler.List, NewForm: statsHandler.NewForm, Create: statsHandler.Create,
				EditForm: statsHandler.EditForm, Update: statsHandler.Update, Delete: statsHandler.Delete,
			})

			// Contact inquiries (read-only inbox)
			r.Get(handler.RouteInquiries, inquiriesHandler.List)
			r.Post(handler.RouteInquiriesID+handler.RouteSuffixRead, inquiriesHandler.MarkRead)
			r.Post(handler.RouteInquiriesID+handler.RouteSuffixDelete, inquiriesHandler.Delete)

			// Image uploads (JSON endpoint used by the admin forms)
			r.Post(handler.RouteUploads, mediaHandler.Upload)
		})
	})

	// REST API v1 routes (read-only JSON)
	r.Mount("/api/v1", apiHandler.Routes())
	slog.Info("REST API v1 mounted at /api/v1")

	// Static file serving
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Serve uploaded images from the uploads directory
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))

	// 404 Not Found handler
	r.NotFound(frontendHandler.NotFound)

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for image uploads and slow connections
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
