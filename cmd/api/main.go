package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/bimakw/polywallet/internal/application/services"
	"github.com/bimakw/polywallet/internal/config"
	"github.com/bimakw/polywallet/internal/infrastructure/polymarket"
	"github.com/bimakw/polywallet/internal/infrastructure/presets"
	"github.com/bimakw/polywallet/internal/pkg/logger"
	"github.com/bimakw/polywallet/internal/presentation/handlers"
	"github.com/bimakw/polywallet/internal/presentation/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	loc, err := cfg.Display.Location()
	if err != nil {
		log.Fatal("Invalid display timezone", zap.Error(err))
	}

	log.Info("Starting polywallet API",
		zap.Int("port", cfg.API.Port),
		zap.String("data_api", cfg.Polymarket.DataAPIURL),
		zap.String("timezone", loc.String()),
	)

	presetList, err := presets.Load(cfg.Display.PresetsFile, log)
	if err != nil {
		log.Fatal("Failed to load presets", zap.Error(err), zap.String("path", cfg.Display.PresetsFile))
	}

	// Upstream client and services
	client := polymarket.NewClientFromConfig(cfg.Polymarket, log)
	dashboardService := services.NewDashboardService(client, loc, cfg.Polymarket.ProfileLookup, log)

	// Create handlers
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, log)
	sessionHandler := handlers.NewSessionHandler(dashboardService, log)
	presetsHandler := handlers.NewPresetsHandler(presetList)
	healthHandler := handlers.NewHealthHandler(client)

	// Setup router
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Metrics())
	r.Use(chimiddleware.Recoverer)

	// Health endpoints (no rate limiting)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Get("/live", healthHandler.Live)
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimiter(cfg.API.RateLimitRPS))
		dashboardHandler.RegisterRoutes(r)
		sessionHandler.RegisterRoutes(r)
		presetsHandler.RegisterRoutes(r)
	})

	// Start server
	addr := cfg.API.Addr()
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.API.ReadTimeout,
		WriteTimeout: cfg.API.WriteTimeout,
	}

	go func() {
		log.Info("API server starting", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("Received shutdown signal, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.API.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped")
}
