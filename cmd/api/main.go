package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"recipe-pack-payments/internal/client"
	"recipe-pack-payments/internal/config"
	"recipe-pack-payments/internal/logger"
	"recipe-pack-payments/internal/repository"
	"recipe-pack-payments/internal/server"
	"recipe-pack-payments/internal/service"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(os.Stdout, cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)

	purchaseStore, closeStore, err := newPurchaseStore(cfg)
	if err != nil {
		log.Error("init purchase store", slog.String("driver", cfg.Store.Driver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	mpClient := client.NewMercadoPagoClient(&cfg.MercadoPago)

	successURL, failureURL, pendingURL := cfg.BackURLs()
	paymentService := service.NewPaymentService(log, mpClient, purchaseStore, service.CheckoutConfig{
		SuccessURL: successURL,
		FailureURL: failureURL,
		PendingURL: pendingURL,
		AutoReturn: cfg.MercadoPago.AutoReturn,
		Sandbox:    cfg.MercadoPago.Sandbox,
	})
	purchaseService := service.NewPurchaseService(log, purchaseStore)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(log, paymentService, purchaseService)

	log.Info("Starting HTTP server",
		slog.String("addr", serverAddr),
		slog.String("env", cfg.Environment.Name),
		slog.String("store", cfg.Store.Driver))
	go func() {
		if err := srv.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("Signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}
}

func newPurchaseStore(cfg *config.Config) (repository.PurchaseStore, func(), error) {
	noop := func() {}

	switch cfg.Store.Driver {
	case "file":
		return repository.NewFilePurchaseStore(cfg.Store.Path), noop, nil
	case "memory":
		return repository.NewMemoryPurchaseStore(nil), noop, nil
	case "sqlite", "mysql":
		db, err := client.InitGormClient(cfg.Store.Driver, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		return repository.NewGormPurchaseStore(db), closeDB, nil
	case "redis":
		rdb, err := client.InitRedisClient(context.Background(), &cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewRedisPurchaseStore(rdb, cfg.Redis.Key), func() { rdb.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
