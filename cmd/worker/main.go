// Package main provides the entrypoint for the WasteTrack background worker.
//
// The worker keeps residue alert flags consistent with their stored
// quantities: it runs the reconcile job on an interval, and can also accept
// jobs over a Pub/Sub subscription when one is configured. It exposes a
// small health endpoint for the container platform.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/wastetrack/wastetrack/internal/api/middleware"
	"github.com/wastetrack/wastetrack/internal/database"
	"github.com/wastetrack/wastetrack/internal/notification"
	"github.com/wastetrack/wastetrack/internal/residue"
	"github.com/wastetrack/wastetrack/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "wastetrack-worker"

	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting WasteTrack worker")

	// Worker also exposes a health endpoint for Cloud Run
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	reconcileInterval := 15 * time.Minute
	if v := os.Getenv("RECONCILE_INTERVAL"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			log.Fatal().Err(err).Str("value", v).Msg("invalid RECONCILE_INTERVAL")
		}
		reconcileInterval = parsed
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to database
	dbConfig := database.ConfigFromEnv()
	pool, err := database.ConnectWithRetry(ctx, dbConfig, 30*time.Second)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Str("database", dbConfig.Database).
		Msg("database connected")

	// Job metrics are recorded against the global meter provider; without
	// telemetry enabled they are no-ops.
	metrics, err := middleware.NewJobMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize job metrics")
	}

	// Wire the residue service the reconcile job drives.
	notificationService := notification.NewService(notification.ServiceConfig{
		Repository: notification.NewPostgresRepository(pool),
		Logger:     log,
	})
	residueService := residue.NewService(residue.ServiceConfig{
		Repository: residue.NewPostgresRepository(pool),
		Notifier:   notificationService,
		Logger:     log,
	})

	reconcileJob := worker.NewReconcileJob(worker.ReconcileJobConfig{
		Config: worker.ReconcileConfig{
			Interval: reconcileInterval,
			Timeout:  time.Minute,
		},
		Logger:   log,
		Residues: residueService,
		Metrics:  metrics,
	})

	// Create HTTP server for health checks
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","version":"%s"}`, Version)
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health check server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	// Start the interval loop
	go reconcileJob.Start(ctx)

	// Optionally consume jobs from Pub/Sub as well
	var pubsubHandler *worker.PubSubHandler
	projectID := os.Getenv("PUBSUB_PROJECT_ID")
	subscription := os.Getenv("PUBSUB_SUBSCRIPTION")
	if projectID != "" && subscription != "" {
		pubsubHandler, err = worker.NewPubSubHandler(ctx, worker.PubSubConfig{
			ProjectID:        projectID,
			SubscriptionName: subscription,
			ReconcileJob:     reconcileJob,
			DB:               pool,
			Logger:           log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create pubsub handler")
		}

		go func() {
			if err := pubsubHandler.Start(ctx); err != nil {
				log.Error().Err(err).Msg("pubsub handler stopped")
			}
		}()
	} else {
		log.Info().Msg("pubsub not configured, running on interval only")
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()

	if pubsubHandler != nil {
		if err := pubsubHandler.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close pubsub handler")
		}
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}
