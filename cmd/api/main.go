package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"keypad-calculator/internal/calculator"
	"keypad-calculator/internal/config"
	"keypad-calculator/internal/observability"
	"keypad-calculator/internal/server"
)

func main() {

	ctx := context.Background()

	if err := config.LoadDotEnv(); err != nil {
		panic(err)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Logger
	err = observability.InitLogger()
	if err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	// Tracing
	traceShutdown, err := observability.InitTracing(ctx)
	if err != nil {
		panic(err)
	}
	defer traceShutdown(ctx)

	// Metrics
	metricShutdown, err := initMetrics(ctx)
	if err != nil {
		panic(err)
	}
	defer metricShutdown(ctx)

	// OTLP log export
	if cfg.Telemetry.OTLPLogs {
		logShutdown, err := observability.InitLogging(ctx)
		if err != nil {
			panic(err)
		}
		defer logShutdown(ctx)
	}

	// Calculator sessions
	store, err := newStore(cfg.Calculator)
	if err != nil {
		observability.Logger.Warn("falling back to default locale", zap.Error(err))
	}

	registry, err := observability.NewRegistry(store.Collector())
	if err != nil {
		panic(err)
	}

	// Router
	router := server.NewRouter(server.Deps{
		Calculator: calculator.NewHandler(store, store.Formatter()),
		Registry:   registry,
	})

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		observability.Logger.Info("server started", zap.String("addr", cfg.Server.Addr))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			observability.Logger.Fatal("server failed", zap.Error(err))
		}
	}()

	waitForShutdown(srv, cfg.Server.ShutdownTimeout)
}

func waitForShutdown(srv *http.Server, timeout time.Duration) {

	stop := make(chan os.Signal, 1)

	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		observability.Logger.Error("server shutdown", zap.Error(err))
		return
	}
	observability.Logger.Info("server stopped")
}
