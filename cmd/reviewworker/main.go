package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/verdantsocial/verdant/internal/config"
	"github.com/verdantsocial/verdant/internal/database/boltstore"
	"github.com/verdantsocial/verdant/internal/metrics"
	"github.com/verdantsocial/verdant/internal/review"
	"github.com/verdantsocial/verdant/internal/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Configure zerolog
	switch cfg.LogLevel {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info", "":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Use pretty console logging in development, JSON in production
	if cfg.LogFormat == "json" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	log.Info().Msg("Starting Verdant review worker")

	if cfg.TracingEnabled {
		tp, err := tracing.Init(context.Background())
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize tracing")
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				log.Warn().Err(err).Msg("Tracer provider shutdown failed")
			}
		}()
	}

	store, err := boltstore.Open(boltstore.Options{
		Path: cfg.ReviewDBPath,
	})
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.ReviewDBPath).Msg("Failed to open review database")
	}
	defer store.Close()

	log.Info().Str("path", cfg.ReviewDBPath).Msg("Review database opened")

	reviewStore := store.ReviewStore()

	conn, err := nats.Connect(cfg.NATSURL,
		nats.Name("verdant-reviewworker"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		log.Fatal().Err(err).Str("url", cfg.NATSURL).Msg("Failed to connect to NATS")
	}
	defer conn.Close()

	sub, err := conn.Subscribe(review.SubjectReview, func(msg *nats.Msg) {
		var record review.Record
		if err := json.Unmarshal(msg.Data, &record); err != nil {
			log.Error().Err(err).Msg("Failed to unmarshal review record")
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := reviewStore.CreateReview(ctx, record); err != nil {
			log.Error().Err(err).
				Str("review_id", record.ID).
				Str("user_id", record.UserID).
				Msg("Failed to persist review record")
			return
		}

		metrics.ReviewRecordsPersistedTotal.Inc()
		log.Info().
			Str("review_id", record.ID).
			Str("user_id", record.UserID).
			Str("field", record.Field).
			Str("category", record.Category).
			Float64("score", record.Score).
			Msg("Review record persisted")
	})
	if err != nil {
		log.Fatal().Err(err).Str("subject", review.SubjectReview).Msg("Failed to subscribe")
	}

	// Expose Prometheus metrics
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
			log.Error().Err(err).Str("addr", cfg.MetricsAddr).Msg("Metrics server stopped")
		}
	}()

	log.Info().
		Str("nats_url", cfg.NATSURL).
		Str("subject", review.SubjectReview).
		Str("metrics_addr", cfg.MetricsAddr).
		Msg("Review worker running")

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Info().Str("signal", sig.String()).Msg("Shutting down")

	if err := sub.Drain(); err != nil {
		log.Warn().Err(err).Msg("Subscription drain failed")
	}
}
