package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"queenzz/internal/config"
	"queenzz/internal/domain/repositories"
	"queenzz/internal/handler"
	"queenzz/internal/middleware"
	"queenzz/internal/repository/memory"
	"queenzz/internal/repository/postgres"
	"queenzz/internal/service/library"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, closeLog, err := config.NewLogger(cfg, "server")
	if err != nil {
		log.Fatalf("Failed to setup logging: %v", err)
	}
	defer closeLog()
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	settings, err := config.LoadStudySettings(cfg.SettingsFile)
	if err != nil {
		log.Fatalf("Failed to load study settings: %v", err)
	}

	ctx := context.Background()

	// Repositories: postgres when configured, otherwise an in-process store
	var (
		appDataRepo repositories.AppDataRepository
		assetRepo   repositories.AssetRepository
		txManager   repositories.TransactionManager
	)
	if cfg.DatabaseURL != "" {
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to create connection pool: %v", err)
		}
		defer pool.Close()

		tables := postgres.NewTableNames(cfg.TablePrefix)
		if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to ensure schema: %v", err)
		}
		logger.Info("database connected", "app_data_table", tables.AppData, "assets_table", tables.Assets)

		repoConfig := &postgres.RepositoryConfig{
			Pool:   pool,
			Tables: tables,
			Logger: logger,
		}
		appDataRepo = postgres.NewAppDataRepository(repoConfig)
		assetRepo = postgres.NewAssetRepository(repoConfig)
		txManager = postgres.NewTransactionManager(repoConfig)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory store (data is lost on restart)")
		appDataRepo = memory.NewAppDataRepository()
		assetRepo = memory.NewAssetRepository()
		txManager = memory.NewTransactionManager()
	}

	// Services
	store := library.NewStore(appDataRepo, assetRepo, txManager, logger)
	sanitizer := library.NewTextSanitizer()

	handlers := &handler.Handlers{
		Library:  handler.NewLibraryHandler(library.NewLibraryService(store, logger), logger),
		Items:    handler.NewItemHandler(library.NewItemService(store, sanitizer, logger), logger),
		Study:    handler.NewStudyHandler(library.NewStudyService(store, settings, logger), logger),
		Document: handler.NewDocumentHandler(library.NewDocumentService(store, logger), logger),
		Transfer: handler.NewTransferHandler(library.NewTransferService(store, sanitizer, logger), logger),
	}
	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	handlers.Register(mux)

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → RequestLog → Recovery → Routes
	var h http.Handler = mux
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestLog(logger)(h)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposedHeaders: []string{"Content-Disposition", middleware.RequestIDHeader},
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt, then drain in-flight requests
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
