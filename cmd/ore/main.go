package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"ore/internal/amqp"
	"ore/internal/config"
	apphttp "ore/internal/http"
	applog "ore/internal/log"
	"ore/internal/services"
	"ore/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)
	log := logger.WithComponent(applog.ComponentApp)

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

	// The broker is optional: without it, reports are still computed
	// on read, only the background warm-up is lost.
	var publisher services.RecalcPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			log.Warn("AMQP unavailable, recalc events disabled", "error", err)
		} else {
			defer amqpClient.Close()
			publisher = amqpClient
		}
	}

	entries := services.NewEntryService(repo, publisher)
	reports := services.NewReportService(repo)

	srv := apphttp.NewServer(apphttp.Options{
		Addr:         ":" + cfg.Port,
		JWTSecret:    []byte(cfg.JWTSecret),
		TokenTTL:     cfg.TokenTTL,
		RateLimitRPM: cfg.RateLimitRPM,
	}, entries, reports, repo, repo)

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		log.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	log.Info("Starting ore server", "port", cfg.Port, "db", cfg.SQLiteDBPath)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	log.Info("Server stopped gracefully")
}
