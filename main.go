package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/redis/go-redis/v9"

	appLogger "github.com/emirduygulu/wanderland-api/app/logger"
	"github.com/emirduygulu/wanderland-api/app/observability/metrics"
	"github.com/emirduygulu/wanderland-api/app/tracer"
	"github.com/emirduygulu/wanderland-api/config"
	"github.com/emirduygulu/wanderland-api/internal/api/city"
	"github.com/emirduygulu/wanderland-api/internal/api/history"
	"github.com/emirduygulu/wanderland-api/internal/api/search"
	"github.com/emirduygulu/wanderland-api/internal/provider/foursquare"
	"github.com/emirduygulu/wanderland-api/internal/provider/opentripmap"
	"github.com/emirduygulu/wanderland-api/internal/provider/unsplash"
	"github.com/emirduygulu/wanderland-api/internal/provider/wikipedia"
	api "github.com/emirduygulu/wanderland-api/internal/router"
)

func main() {
	// Use standard log until slog is configured, in case godotenv fails
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := setupLogger()
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Observability ---
	if err := tracer.InitTracingAndMetrics(); err != nil {
		logger.Error("Failed to initialize tracing and metrics", slog.Any("error", err))
		os.Exit(1)
	}
	metrics.InitAppMetrics()

	// --- Search history store ---
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis not reachable at startup, history operations will degrade",
			slog.String("addr", cfg.Redis.Addr), slog.Any("error", err))
	}
	defer redisClient.Close()

	// --- Provider clients ---
	providerTimeout := cfg.Providers.Timeout
	if providerTimeout == 0 {
		providerTimeout = 10 * time.Second
	}

	imageClient := unsplash.NewClient(
		cfg.Providers.Unsplash.BaseURL,
		cfg.Providers.Unsplash.AccessKey,
		providerTimeout,
		logger,
	)
	poiClient := foursquare.NewClient(
		cfg.Providers.Foursquare.BaseURL,
		cfg.Providers.Foursquare.APIKey,
		providerTimeout,
		logger,
	)
	tripMapClient := opentripmap.NewClient(
		cfg.Providers.OpenTripMap.BaseURL,
		cfg.Providers.OpenTripMap.APIKey,
		providerTimeout,
		imageClient,
		opentripmap.Options{
			RetryMaxAttempts: cfg.Pipeline.RetryMaxAttempts,
			RetryBaseDelay:   cfg.Pipeline.RetryBaseDelay,
			ProximityKm:      cfg.Pipeline.ProximityKm,
		},
		logger,
	)
	wikiClient := wikipedia.NewClient(
		cfg.Providers.Wikipedia.BaseURLTurkish,
		cfg.Providers.Wikipedia.BaseURLEnglish,
		cfg.Pipeline.ExtractMaxChars,
		providerTimeout,
		logger,
	)

	// --- Services and handlers ---
	historyRepo := history.NewRedisRepository(redisClient)
	historyService := history.NewServiceImpl(historyRepo, cfg.Pipeline.HistoryLimit, logger)
	historyHandler := history.NewHistoryHandler(historyService, logger)

	searchService := search.NewServiceImpl(wikiClient, imageClient, historyService, search.Options{
		MinRelevanceScore: cfg.Pipeline.MinRelevanceScore,
		DefaultImageURL:   cfg.Pipeline.DefaultImageURL,
	}, logger)
	searchHandler := search.NewSearchHandler(searchService, logger)

	cityService := city.NewServiceImpl(poiClient, tripMapClient, imageClient, cfg.Pipeline.LandmarkLimit, logger)
	cityHandler := city.NewCityHandler(cityService, logger)

	// --- Router Setup ---
	mainRouter := api.SetupRouter(&api.Config{
		SearchHandler:  searchHandler,
		CityHandler:    cityHandler,
		HistoryHandler: historyHandler,
	})

	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(appLogger.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)
	router.Use(middleware.Timeout(cfg.Server.Timeout))
	router.Use(middleware.Compress(5, "application/json"))
	router.Mount("/", mainRouter)

	// --- HTTP Server Setup ---
	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()

	// --- Graceful Shutdown ---
	logger.Info("Shutdown signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}

	logger.Info("Application shut down complete.")
}

// setupLogger configures and returns the application logger.
func setupLogger() *slog.Logger {
	var logger *slog.Logger
	env := os.Getenv("APP_ENV")

	if env == "development" || env == "" { // Default to development if not set
		// Colored logs for development
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}
		logger = slog.New(tint.NewHandler(os.Stdout, tintOpts))
		log.Println("Initialized development logger (tint)")
	} else {
		// JSON logs for production or other environments
		jsonOpts := &slog.HandlerOptions{
			Level:     slog.LevelInfo,
			AddSource: false,
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
		log.Println("Initialized production logger (JSON)")
	}
	return logger
}
