package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"ore/internal/amqp"
	"ore/internal/config"
	applog "ore/internal/log"
	"ore/internal/services"
	"ore/internal/storage"
	"ore/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)
	log := logger.WithComponent(applog.ComponentWorker)

	log.Info("Starting ore-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		log.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		log.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	reports := services.NewReportService(repo)
	reportWorker := worker.NewReportWorker(reports, repo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumeReportRecalc(ctx, reportWorker.HandleRecalcMessage)
	})

	// Periodic sweep keeps current-month reports warm even when
	// recalc messages are lost.
	g.Go(func() error {
		ticker := time.NewTicker(cfg.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := reportWorker.SweepCurrentMonth(ctx, time.Now()); err != nil {
					log.Error("Periodic sweep failed", "error", err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("Worker stopped gracefully")
}
