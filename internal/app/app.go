package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"ragline/backend/internal/api"
	"ragline/backend/internal/catalog"
	"ragline/backend/internal/config"
	"ragline/backend/internal/database"
	"ragline/backend/internal/llm"
	"ragline/backend/internal/metrics"
	"ragline/backend/internal/repository"
	"ragline/backend/internal/service"
)

func Run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	setupLogger(cfg.LogLevel)
	logConfigSource()

	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		return 1
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()
	slog.Info("Successfully connected to SQLite database.")

	repo := repository.NewSQLiteRepository(db)
	provider := llm.NewHTTPProvider(cfg.ProviderURL, cfg.ProviderAPIKey)

	retry := llm.RetryConfig{
		MaxRetries:    cfg.MaxRetries,
		BaseDelay:     time.Duration(cfg.RetryBaseDelayMs) * time.Millisecond,
		MaxDelay:      30 * time.Second,
		ThrottleFloor: time.Duration(cfg.ThrottleFloorMs) * time.Millisecond,
	}
	client := llm.NewClient(provider, time.Duration(cfg.RequestIntervalMs)*time.Millisecond, retry, slog.Default())

	modelCatalog := catalog.Default()
	selector := catalog.NewSelector(modelCatalog, client, slog.Default())
	collector := metrics.NewCollector()

	chatService := service.NewChatService(repo, client, selector, modelCatalog, collector, slog.Default(), service.Options{
		KnowledgeBaseID:     cfg.KnowledgeBaseID,
		HistoryLimit:        cfg.HistoryLimit,
		ConversationPreview: cfg.ConversationPreview,
		MaxQuestionLength:   cfg.MaxQuestionLength,
	})

	chatHandler := api.NewChatHandler(chatService, collector)
	router := api.NewRouter(chatHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      150 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "port", cfg.AppPort)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			return 1
		}
	case <-ctx.Done():
		slog.Info("Shutdown signal received, draining connections...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
			return 1
		}
		slog.Info("Server stopped cleanly.")
	}

	return 0
}

func logConfigSource() {
	configFileUsed := viper.ConfigFileUsed()
	if configFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", configFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}

func setupLogger(logLevel string) {
	var level slog.Level
	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
