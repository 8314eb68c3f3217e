package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/courtmix/americano-system/config"
	"github.com/courtmix/americano-system/db"
	"github.com/courtmix/americano-system/formats"
	"github.com/courtmix/americano-system/handlers"
	"github.com/courtmix/americano-system/repositories"
	api "github.com/courtmix/americano-system/routes"
	"github.com/courtmix/americano-system/services"
	"github.com/courtmix/americano-system/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

// @title Americano Tournament API
// @version 1.0
// @description Fixture scheduling and standings for americano-style doubles tournaments.

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	catalog, err := loadCatalog(cfg, logger)
	if err != nil {
		logger.Error("failed to load fixture catalog", slog.Any("error", err))
		os.Exit(1)
	}

	// WebSocket hub for live score and standings updates
	wsHub := formats.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	registry := formats.NewRegistry(formats.NewAmericanoFormat(catalog))

	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	scoreRepo := repositories.NewPostgresScoreRepository(dbConn)
	logger.Info("Repositories initialized")

	tournamentService := services.NewTournamentService(dbConn, tournamentRepo, scoreRepo, registry, logger)
	matchService := services.NewMatchService(tournamentRepo, scoreRepo, registry, wsHub, logger)
	logger.Info("Services initialized")

	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	matchHandler := handlers.NewMatchHandler(matchService)
	formatHandler := handlers.NewFormatHandler(tournamentService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		tournamentHandler,
		matchHandler,
		formatHandler,
		webSocketHandler,
	)
	logger.Info("Routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}

// loadCatalog resolves the fixture catalog: a configured file or R2 object
// wins, otherwise the embedded subset ships with the binary.
func loadCatalog(cfg *config.Config, logger *slog.Logger) (*formats.Catalog, error) {
	var source storage.CatalogSource
	var err error

	switch {
	case cfg.HasR2():
		source, err = storage.NewCloudflareR2Source(storage.CloudflareR2SourceConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			ObjectKey:       cfg.R2CatalogKey,
		})
	case cfg.CatalogPath != "":
		source, err = storage.NewFileCatalogSource(cfg.CatalogPath)
	default:
		catalog, err := formats.DefaultAmericanoCatalog()
		if err != nil {
			return nil, err
		}
		logger.Warn("no catalog configured, using the embedded subset",
			slog.Int("min_players", catalog.MinPlayers),
			slog.Int("max_players", catalog.MaxPlayers),
		)
		return catalog, nil
	}
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reader, err := source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog from %s: %w", source.Describe(), err)
	}
	catalog, err := formats.ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog from %s: %w", source.Describe(), err)
	}
	logger.Info("fixture catalog loaded",
		slog.String("source", source.Describe()),
		slog.Int("min_players", catalog.MinPlayers),
		slog.Int("max_players", catalog.MaxPlayers),
	)
	return catalog, nil
}
