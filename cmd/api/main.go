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

	httptransport "github.com/spec-kit/launch-watch/internal/api/http"
	"github.com/spec-kit/launch-watch/internal/api/http/handlers"
	"github.com/spec-kit/launch-watch/internal/config"
	"github.com/spec-kit/launch-watch/internal/events"
	"github.com/spec-kit/launch-watch/internal/observability"
	"github.com/spec-kit/launch-watch/internal/repository"
	"github.com/spec-kit/launch-watch/internal/service"
	"github.com/spec-kit/launch-watch/internal/worker"
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
		logger.Error("append endpoint stopped", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handles, closeHandles, err := repository.Connect(ctx, cfg, logger)
	defer closeHandles()
	if err != nil {
		return fmt.Errorf("open sheet storage: %w", err)
	}

	sheet, err := repository.OpenSheet(cfg.Sheet, handles)
	if err != nil {
		return fmt.Errorf("open sheet: %w", err)
	}
	logger.Info("appending leads", zap.String("backend", cfg.Sheet.Backend), zap.String("sheet", sheet.Name()))

	metrics := observability.NewMetrics("launch_watch")
	dispatcher := events.NewInMemoryDispatcher()

	var queue *worker.EventQueue
	if publisher := events.NewKafkaPublisher(cfg.Kafka); publisher != nil {
		queue = worker.StartEventQueue(publisher, cfg.Kafka.QueueSize, logger)
		logger.Info("publishing lead events", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}
	var forwarder service.EventForwarder
	if queue != nil {
		forwarder = queue
	}
	service.NewNotificationService(dispatcher, logger, forwarder).RegisterHandlers()

	leadService := service.NewLeadService(service.LeadDependencies{
		Sheet:      sheet,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:       logger,
		Metrics:      metrics,
		Timeout:      cfg.App.RequestTimeout(),
		AllowOrigins: cfg.CORS.AllowOrigins,
	})
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{"sheet": leadService}),
		Leads:   handlers.NewLeadHandler(leadService),
		Metrics: metrics.Handler(),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		return app.Listen(cfg.App.Addr())
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		return app.Shutdown()
	})
	err = g.Wait()

	if queue != nil {
		if cerr := queue.Close(); cerr != nil {
			logger.Warn("closing event queue", zap.Error(cerr))
		}
	}
	return err
}
