package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pedaler/pedalerbackend/config"
	"github.com/pedaler/pedalerbackend/database"
	"github.com/pedaler/pedalerbackend/payments"
	"github.com/pedaler/pedalerbackend/routes"
	"github.com/pedaler/pedalerbackend/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := utils.MustNewLogger(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal("store_connect_failed", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	logger.Info("store_connected", zap.String("driver", cfg.StoreDriver), zap.String("database", cfg.DatabaseName))
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Error("store_close_error", zap.Error(err))
		}
	}()

	if cfg.StripeSecret == "" {
		logger.Warn("stripe_secret_missing")
	}
	if cfg.JWTSecret == "" {
		logger.Info("admin_guard_disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := routes.New(routes.Dependencies{
		Store:          store,
		Payments:       payments.NewStripeGateway(cfg.StripeSecret),
		Logger:         logger,
		Registry:       registry,
		AllowedOrigins: cfg.AllowedOrigins,
		JWTSecret:      cfg.JWTSecret,
		RequestTimeout: cfg.RequestTimeout,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http_server_start", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_server_shutdown_error", zap.Error(err))
	} else {
		logger.Info("http_server_stopped")
	}
}

func openStore(ctx context.Context, cfg *config.Config) (*database.Store, error) {
	if cfg.StoreDriver == config.DriverMemory {
		return database.OpenMemory(), nil
	}
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return database.OpenMongo(connectCtx, cfg.MongoURI, cfg.DatabaseName)
}
