// Package main is the entry point for the fraud scoring API.
// It loads configuration, opens the configured store, wires the
// services and serves HTTP until interrupted.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"fraudscope/internal/config"
	"fraudscope/internal/handlers"
	"fraudscope/internal/logging"
	"fraudscope/internal/metrics"
	"fraudscope/internal/middleware"
	"fraudscope/internal/repositories"
	"fraudscope/internal/routes"
	"fraudscope/internal/services/transaction"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load environment variables
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logging.New(cfg.Log)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := repositories.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("failed to close store", "error", err)
		}
	}()

	var (
		collector metrics.Collector = &metrics.NoopMetricsCollector{}
		gatherer  prometheus.Gatherer
	)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		collector = metrics.NewPrometheusCollector(reg)
		gatherer = reg
	}

	transactionService := transaction.NewService(store,
		transaction.WithMetrics(collector),
		transaction.WithLogger(log),
	)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "fraudscope",
		ErrorHandler: middleware.ErrorHandler(log),
	})

	app.Use(recover.New())

	// CORS middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH,OPTIONS",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Routes
	routes.SetupRoutes(app, routes.Dependencies{
		Config:             cfg,
		Store:              store,
		TransactionService: transactionService,
		Diagnostics: handlers.Diagnostics{
			DatabaseURLSet:  config.GetEnv("DATABASE_URL", "") != "",
			DatabaseNameSet: config.GetEnv("DATABASE_NAME", "") != "",
		},
		Gatherer: gatherer,
	})

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		log.Info("listening", "addr", addr, "store", store.Name(), "env", cfg.Env)
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	return app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout)
}
