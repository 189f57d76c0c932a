package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payment-gateway/internal/config"
	"payment-gateway/internal/database"
	"payment-gateway/internal/infrastructure/bank"
	"payment-gateway/internal/logger"
	"payment-gateway/internal/repo"
	"payment-gateway/internal/server"
	"payment-gateway/internal/service"
	"payment-gateway/internal/validator"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("gateway stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		paymentRepo repo.PaymentRepo
		health      server.HealthChecker
	)
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database, log)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			return err
		}
		paymentRepo = repo.NewPaymentRepo(db.DB())
		health = db
	default:
		paymentRepo = repo.NewMemoryPaymentRepo()
	}

	paymentService := service.NewPaymentService(
		paymentRepo,
		validator.New(cfg.SupportedCurrencies, validator.WithLocation(cfg.ExpiryLocation)),
		bank.NewHTTPAcquiringBank(cfg.Bank.URL, cfg.Bank.ConnectTimeout, cfg.Bank.ReadTimeout, log),
		log,
	)

	router := server.NewRouter(server.RouterConfig{
		Payments:       paymentService,
		Health:         health,
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         log,
	})

	srv := server.New(cfg.HTTPAddr, router, log)
	if err := srv.Start(); err != nil {
		return err
	}
	log.Info("payment gateway ready",
		zap.String("addr", srv.Addr),
		zap.String("store", cfg.StoreBackend),
		zap.String("bank_url", cfg.Bank.URL),
		zap.Strings("currencies", cfg.SupportedCurrencies),
	)

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
