package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/launch-watch/internal/capture"
	"github.com/spec-kit/launch-watch/internal/config"
	"github.com/spec-kit/launch-watch/internal/observability"
	"github.com/spec-kit/launch-watch/internal/page"
	"github.com/spec-kit/launch-watch/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("landing page stopped", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry, err := page.NewLaunchWatchRegistry()
	if err != nil {
		return fmt.Errorf("build page registry: %w", err)
	}
	defer func() {
		if derr := registry.Dispose(); derr != nil {
			logger.Warn("disposing page components", zap.Error(derr))
		}
	}()

	client := capture.NewClient(capture.ClientConfig{
		EndpointURL:    cfg.Capture.EndpointURL,
		FallbackDelay:  cfg.Capture.FallbackDelay(),
		RequestTimeout: cfg.Capture.RequestTimeout(),
		Logger:         logger,
	})
	if !client.Configured() {
		logger.Warn("CAPTURE_ENDPOINT_URL not configured; submissions are simulated")
	}

	policy := capture.PolicyAlwaysSucceed
	if cfg.Capture.ReportFailures {
		policy = capture.PolicyReportFailures
	}
	controller := capture.NewController(client,
		capture.WithPolicy(policy),
		capture.WithContactDelay(cfg.Capture.FallbackDelay()),
		capture.WithLogger(logger),
	)

	handler, err := web.NewHandler(controller, registry, logger)
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	metrics := observability.NewMetrics("launch_watch_web")
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name + "-web",
		DisableStartupMessage: true,
	})
	web.RegisterRoutes(app, handler, logger, metrics)
	app.Get("/metrics", metrics.Handler())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.Web.Addr()))
		return app.Listen(cfg.Web.Addr())
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		return app.Shutdown()
	})
	return g.Wait()
}
