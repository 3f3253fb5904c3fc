package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"namavruksha/internal/config"
	"namavruksha/internal/container"
	"namavruksha/internal/domain"
	"namavruksha/internal/handler"
	"namavruksha/internal/middleware"
	"namavruksha/internal/reader"
	"namavruksha/internal/repository"
	"namavruksha/internal/service"
	"namavruksha/pkg/database"
	"namavruksha/pkg/logger"
	"namavruksha/pkg/redis"
)

// Resources holds all resources that need cleanup
type Resources struct {
	db          *database.PostgresDB
	redisClient *redis.Client
	server      *http.Server
	log         *logger.Logger
	mu          sync.Mutex
	closed      bool
}

// Cleanup gracefully closes all resources
func (r *Resources) Cleanup(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var errors []error

	r.log.Info("Starting graceful shutdown...")

	// Shutdown HTTP server first to stop accepting new requests
	if r.server != nil {
		r.log.Info("Shutting down HTTP server...")
		if err := r.server.Shutdown(ctx); err != nil {
			r.log.WithError(err).Error("Failed to shutdown HTTP server")
			errors = append(errors, fmt.Errorf("HTTP server shutdown: %w", err))
		} else {
			r.log.Info("HTTP server shutdown complete")
		}
	}

	// Close Redis connection with health check
	if r.redisClient != nil {
		r.log.Info("Closing Redis connection...")

		healthCtx, healthCancel := context.WithTimeout(ctx, 2*time.Second)
		if err := r.redisClient.Health(healthCtx); err != nil {
			r.log.WithError(err).Warn("Redis health check failed before closing")
		}
		healthCancel()

		if err := r.redisClient.Close(); err != nil {
			r.log.WithError(err).Error("Failed to close Redis connection")
			errors = append(errors, fmt.Errorf("Redis close: %w", err))
		} else {
			r.log.Info("Redis connection closed successfully")
		}
	}

	// Close database connection pool with health check
	if r.db != nil {
		r.log.Info("Closing database connection pool...")

		healthCtx, healthCancel := context.WithTimeout(ctx, 2*time.Second)
		if err := r.db.Health(healthCtx); err != nil {
			r.log.WithError(err).Warn("Database health check failed before closing")
		}
		healthCancel()

		r.db.Close()
		r.log.Info("Database connection pool closed successfully")
	}

	if len(errors) > 0 {
		r.log.WithField("error_count", len(errors)).Error("Cleanup completed with errors")
		return fmt.Errorf("cleanup completed with %d errors: %v", len(errors), errors)
	}

	r.log.Info("Graceful shutdown completed successfully")
	return nil
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.WithFields(map[string]interface{}{
		"port":        cfg.Port,
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
	}).Info("Starting namavruksha server")

	// Create dependency injection container
	container, err := container.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create container")
	}

	// Initialize database connection
	ctx := context.Background()
	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	// Initialize Redis connection
	redisClient, err := redis.NewClient(cfg.RedisURL, cfg.Environment, log.Logger)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to Redis")
	}

	// Initialize repositories
	entryRepo := repository.NewEntryRepository(db)
	userRepo := repository.NewUserRepository(db)
	sankalpaRepo := repository.NewSankalpaRepository(db)
	bookRepo := repository.NewBookRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)

	// Initialize services
	mailer := service.NewHTTPMailer(cfg, log)
	statsService := service.NewStatsService(entryRepo, sankalpaRepo, redisClient, log.Logger)
	entryService := service.NewEntryService(entryRepo, sankalpaRepo, statsService, log.Logger)
	userService := service.NewUserService(userRepo, mailer, cfg.MailAdminTo, log.Logger)
	sankalpaService := service.NewSankalpaService(sankalpaRepo, redisClient, log.Logger)
	bookService := service.NewBookService(bookRepo, log.Logger)
	feedbackService := service.NewFeedbackService(feedbackRepo, mailer, cfg.MailAdminTo, log.Logger)
	quoteService := service.NewQuoteService(cfg, redisClient, log)

	// Initialize the reading session stack
	storageClient := service.NewStorageClient(cfg, log)
	progressStore := reader.NewRedisProgressStore(redisClient)
	sessionManager := reader.NewManager(storageClient, reader.NewTextParser(), progressStore, log)

	// Setup router
	router := setupRouter(container, routerDeps{
		db:              db,
		redisClient:     redisClient,
		userService:     userService,
		entryService:    entryService,
		statsService:    statsService,
		sankalpaService: sankalpaService,
		bookService:     bookService,
		feedbackService: feedbackService,
		quoteService:    quoteService,
		sessionManager:  sessionManager,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB max header size
	}

	// Create resources manager for cleanup
	resources := &Resources{
		db:          db,
		redisClient: redisClient,
		server:      server,
		log:         log,
	}

	// Setup graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := resources.Cleanup(cleanupCtx); err != nil {
			log.WithError(err).Error("Cleanup completed with errors")
		}
	}()

	// Start server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		log.Info("Server starting on port " + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Server error occurred")
			serverErrChan <- err
		}
	}()

	// Wait for interrupt signal or server error
	select {
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err := <-serverErrChan:
		log.WithError(err).Error("Server failed, initiating shutdown")
	}

	log.Info("Initiating graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := resources.Cleanup(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown completed with errors")
		os.Exit(1)
	}

	log.Info("Application shutdown complete")
}

// routerDeps bundles the wired services the router needs
type routerDeps struct {
	db              *database.PostgresDB
	redisClient     *redis.Client
	userService     *service.UserService
	entryService    *service.EntryService
	statsService    *service.StatsService
	sankalpaService *service.SankalpaService
	bookService     *service.BookService
	feedbackService *service.FeedbackService
	quoteService    *service.QuoteService
	sessionManager  *reader.Manager
}

// setupRouter configures and returns the HTTP router
func setupRouter(container *container.Container, deps routerDeps) *chi.Mux {
	cfg := container.GetConfig()
	log := container.GetLogger()
	authService := container.GetAuthService()

	r := chi.NewRouter()

	// Setup CORS middleware
	corsConfig := &middleware.CORSConfig{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		ExposedHeaders:   []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           86400,
	}

	// Setup middlewares
	r.Use(middleware.CORS(corsConfig, log))
	r.Use(middleware.RequestID(log))
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Compress(5))
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Create handlers
	healthHandler := handler.NewHealthHandler(container, deps.db, deps.redisClient)
	entryHandler := handler.NewEntryHandler(deps.entryService)
	statsHandler := handler.NewStatsHandler(deps.statsService)
	sankalpaHandler := handler.NewSankalpaHandler(deps.sankalpaService)
	libraryHandler := handler.NewLibraryHandler(deps.bookService, deps.sessionManager)
	feedbackHandler := handler.NewFeedbackHandler(deps.feedbackService)
	quoteHandler := handler.NewQuoteHandler(deps.quoteService)
	adminHandler := handler.NewAdminHandler(deps.userService)

	auth := middleware.Auth(authService, deps.userService, log)

	// Health check (no auth required)
	r.Get("/health", healthHandler.Check)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Get("/quote/today", quoteHandler.Today)
		r.Get("/sankalpas", sankalpaHandler.ListActive)
		r.Get("/sankalpas/{sankalpaID}", sankalpaHandler.Get)
		r.Get("/sankalpas/{sankalpaID}/stats", statsHandler.SankalpaStats)
		r.Get("/reports/community", statsHandler.CommunityReport)

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(auth)

			r.Get("/me", adminHandler.Me)
			r.Get("/me/stats", statsHandler.MyStats)
			r.Get("/me/entries", entryHandler.ListMine)
			r.Post("/entries", entryHandler.Submit)
			r.Get("/reports/range", statsHandler.RangeReport)
			r.Post("/feedback", feedbackHandler.Submit)

			// Library and reading sessions
			r.Get("/library/books", libraryHandler.ListBooks)
			r.Get("/library/books/{bookID}", libraryHandler.GetBook)
			r.Post("/library/books/{bookID}/sessions", libraryHandler.OpenSession)
			r.Route("/sessions/{sessionID}", func(r chi.Router) {
				r.Get("/", libraryHandler.GetSession)
				r.Delete("/", libraryHandler.CloseSession)
				r.Get("/outline", libraryHandler.Outline)
				r.Post("/page", libraryHandler.JumpToPage)
				r.Post("/bookmark", libraryHandler.ToggleBookmark)
				r.Post("/search", libraryHandler.Search)
				r.Post("/next-match", libraryHandler.NextMatch)
				r.Post("/zoom", libraryHandler.SetZoom)
			})

			// Moderator endpoints
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(domain.RoleModerator, log))

				r.Get("/moderator/feedback", feedbackHandler.List)
			})

			// Admin endpoints
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireRole(domain.RoleAdmin, log))

				r.Get("/users", adminHandler.ListUsers)
				r.Put("/users/{userID}/role", adminHandler.SetRole)
				r.Get("/sankalpas", sankalpaHandler.ListAll)
				r.Post("/sankalpas", sankalpaHandler.Create)
				r.Put("/sankalpas/{sankalpaID}", sankalpaHandler.Update)
				r.Post("/books", libraryHandler.AddBook)
			})
		})
	})

	return r
}
