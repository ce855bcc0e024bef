package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"folio/lib"
	"folio/lib/mail"
	"folio/shared/logger"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	configPath := os.Getenv("FOLIO_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := folio.LoadConfig(configPath)
	if err != nil {
		logger.New(logger.Options{Development: true}).Fatal("Failed to load configuration", logger.Err(err))
	}

	log := logger.New(logger.Options{
		Development: cfg.Development(),
		File:        cfg.Log.File,
	}).With(logger.String("service", cfg.Service.Name))
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := folio.SetupTelemetry(ctx, log, cfg)
	if err != nil {
		log.Fatal("Failed to set up telemetry", logger.Err(err))
	}

	transport, err := mail.New(cfg.Mail, log)
	if err != nil {
		log.Fatal("Failed to configure mail transport", logger.Err(err))
	}

	engine, err := folio.NewEngine(log, cfg, transport)
	if err != nil {
		log.Fatal("Failed to build engine", logger.Err(err))
	}

	log.Info("Starting portfolio backend",
		logger.String("environment", cfg.Environment),
		logger.String("mail_driver", transport.Name()),
		logger.Strings("allowed_origins", cfg.CORS.AllowedOrigins),
		logger.Bool("serve_static", cfg.Static.Serve))

	if err := engine.Start(ctx); err != nil {
		log.Error("Server stopped with error", logger.Err(err))
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := shutdownTelemetry(flushCtx); err != nil {
		log.Warn("Failed to flush telemetry", logger.Err(err))
	}
}
