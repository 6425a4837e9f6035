package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/observ-ing/core-sub000/internal/config"
	"github.com/observ-ing/core-sub000/internal/cursor"
	"github.com/observ-ing/core-sub000/internal/httpapi"
	"github.com/observ-ing/core-sub000/internal/jetstream"
	"github.com/observ-ing/core-sub000/internal/normalize"
	"github.com/observ-ing/core-sub000/internal/store"
	"github.com/observ-ing/core-sub000/internal/store/db"
	"github.com/observ-ing/core-sub000/internal/supervisor"
	"github.com/observ-ing/core-sub000/internal/telemetry"
)

func main() {
	// --- Structured Logger ---
	logger, _ := zap.NewProduction()
	if os.Getenv("LOG_FORMAT") != "json" {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}

	// --- OpenTelemetry Tracer (optional) ---
	otelEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otelEndpoint != "" {
		tp, err := telemetry.InitTracer(context.Background(), "observ-ing-ingester", otelEndpoint)
		if err != nil {
			logger.Error("failed to init OTel tracer", zap.Error(err))
		} else {
			defer tp.Shutdown(context.Background())
			logger.Info("OTel tracer initialized", zap.String("endpoint", otelEndpoint))
		}

		mp, err := telemetry.InitMeterProvider(context.Background(), "observ-ing-ingester", otelEndpoint)
		if err != nil {
			logger.Error("failed to init OTel meter provider", zap.Error(err))
		} else {
			defer mp.Shutdown(context.Background())
		}
	}

	// --- Database Connection Pool (instrumented with OTel) ---
	pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()
	logger.Info("connected to database (OTel-instrumented)")

	// --- Cursor resolution (§4.6: explicit override beats persisted beats live) ---
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	resumeCursor := cfg.Cursor
	if resumeCursor == nil {
		persisted, err := cursor.Load(ctx, pool)
		if err != nil {
			logger.Fatal("failed to load persisted cursor", zap.Error(err))
		}
		resumeCursor = persisted
	}
	logger.Info("resolved starting cursor", zap.Any("cursor", resumeCursor))

	// --- Subscription client (C1) ---
	wireFormat := jetstream.WireJSON
	if os.Getenv("JETSTREAM_WIRE_FORMAT") == "cbor" {
		wireFormat = jetstream.WireCBOR
	}
	sub := jetstream.New(cfg.RelayURL, normalize.WantedCollections, wireFormat, logger)

	// --- Writer (C4) and supervisor (C7) ---
	writer := store.New(pool)
	sup := supervisor.New(sub, writer, logger)

	subCtx, subCancel := context.WithCancel(ctx)
	defer subCancel()

	go func() {
		if err := sub.Run(subCtx, resumeCursor); err != nil && subCtx.Err() == nil {
			logger.Error("jetstream subscription terminated", zap.Error(err))
		}
	}()

	go sup.Consume(ctx)

	// --- Cursor checkpoint saver (C6) ---
	saver := cursor.NewSaver(pool, sup.State(), logger)
	go saver.Run(ctx)

	// --- HTTP operator surface (C7) ---
	httpSrv := httpapi.New(sup.State(), logger)
	go func() {
		logger.Info("ingester HTTP server listening", zap.String("port", cfg.Port))
		if err := httpSrv.Start(":" + cfg.Port); err != nil {
			logger.Error("HTTP server failure", zap.Error(err))
		}
	}()

	logger.Info("ingester started", zap.String("relay", cfg.RelayURL))

	<-ctx.Done()
	logger.Info("shutdown signal received, draining")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown error", zap.Error(err))
	}

	subCancel()
	time.Sleep(200 * time.Millisecond) // let the subscription's close frame flush

	logger.Info("ingester shut down cleanly")
}
