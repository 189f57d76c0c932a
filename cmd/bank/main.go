package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payment-gateway/internal/config"
	"payment-gateway/internal/infrastructure/bank"
	"payment-gateway/internal/logger"
	"payment-gateway/internal/server"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Serves the acquiring bank simulator standalone so the gateway's default
// BANK_URL has something to talk to.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)
	defer log.Sync()

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim := bank.NewSimulator()
	srv := server.New(cfg.Bank.SimulatorAddr, sim.Handler(), log)
	if err := srv.Start(); err != nil {
		log.Fatal("starting bank simulator", zap.Error(err))
	}
	log.Info("bank simulator ready", zap.String("addr", srv.Addr))

	<-ctx.Done()
	log.Info("shutting down", zap.Any("served", sim.Served()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("stopping bank simulator", zap.Error(err))
	}
}
