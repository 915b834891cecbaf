package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"instruks/internal/auth"
	"instruks/internal/config"
	"instruks/internal/handler"
	"instruks/internal/middleware"
	"instruks/internal/render"
	"instruks/internal/repository/postgres"
	"instruks/internal/service"
	"instruks/internal/service/sanitizer"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if dir := os.Getenv("LOG_DIR"); dir != "" {
		logFile, err := config.SetupLogFile(dir, 10)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger) // Set as default logger

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Create JWT verifier backed by the identity provider's JWKS endpoint
	jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	// Create table names
	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	instruksRepo := postgres.NewInstruksRepository(repoConfig)
	categoryRepo := postgres.NewCategoryRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Content pipeline: whitelist sanitizer plus the PDF render theme
	htmlSanitizer := sanitizer.New()
	theme, err := render.DefaultTheme()
	if err != nil {
		log.Fatalf("Failed to load PDF theme: %v", err)
	}
	pdfRenderer := render.NewPDFRenderer(theme, cfg.LogoPath)

	// Create services
	instruksService := service.NewInstruksService(instruksRepo, txManager, htmlSanitizer, logger)
	categoryService := service.NewCategoryService(categoryRepo, logger)
	pdfService := service.NewPDFService(instruksRepo, htmlSanitizer, pdfRenderer, logger)
	markdownService := service.NewMarkdownService(instruksRepo, htmlSanitizer, logger)

	// Create handlers
	instruksHandler := handler.NewInstruksHandler(instruksService, logger)
	categoryHandler := handler.NewCategoryHandler(categoryService, logger)
	exportHandler := handler.NewExportHandler(pdfService, markdownService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Instruks routes
	mux.HandleFunc("GET /api/instruks", instruksHandler.List)
	mux.HandleFunc("POST /api/instruks", instruksHandler.Create)
	mux.HandleFunc("GET /api/instruks/by-category/{id}", instruksHandler.ListByCategory)
	mux.HandleFunc("GET /api/instruks/{id}", instruksHandler.Get)
	mux.HandleFunc("PUT /api/instruks/{id}", instruksHandler.Update)
	mux.HandleFunc("DELETE /api/instruks/{id}", instruksHandler.Delete)
	mux.HandleFunc("POST /api/instruks/{id}/versions", instruksHandler.CreateVersion)

	// Export routes
	mux.HandleFunc("GET /api/instruks/{id}/pdf", exportHandler.PDF)
	mux.HandleFunc("GET /api/instruks/{id}/markdown", exportHandler.Markdown)

	// Document series routes
	mux.HandleFunc("GET /api/documents/{documentId}/latest", instruksHandler.GetLatestByDocument)
	mux.HandleFunc("GET /api/documents/{documentId}/history", instruksHandler.GetHistory)

	// Category routes
	mux.HandleFunc("GET /api/categories", categoryHandler.List)
	mux.HandleFunc("POST /api/categories", categoryHandler.Create)
	mux.HandleFunc("GET /api/categories/{id}", categoryHandler.Get)
	mux.HandleFunc("PUT /api/categories/{id}", categoryHandler.Update)
	mux.HandleFunc("DELETE /api/categories/{id}", categoryHandler.Delete)

	// Build middleware chain
	var httpHandler http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	httpHandler = middleware.AuthMiddleware(jwtVerifier)(httpHandler)
	httpHandler = middleware.Recovery(logger)(httpHandler)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	httpHandler = corsHandler.Handler(httpHandler)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
