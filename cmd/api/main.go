package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/groomly/pet-services/notifygateway/internal/api"
	v1 "github.com/groomly/pet-services/notifygateway/internal/api/v1"
	"github.com/groomly/pet-services/notifygateway/internal/config"
	"github.com/groomly/pet-services/notifygateway/internal/database"
	middleware "github.com/groomly/pet-services/notifygateway/internal/error"
	"github.com/groomly/pet-services/notifygateway/internal/metrics"
	"github.com/groomly/pet-services/notifygateway/internal/repository"
	"github.com/groomly/pet-services/notifygateway/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			zap.NewProduction,
			NewMetrics,
			database.NewConnection,
			NewFiberApp,

			repository.NewJobRepository,

			service.NewJobService,
			service.NewReconciliationService,

			v1.NewHandler,
		),
		fx.Invoke(startServer),
	).Run()
}

func startServer(app *fiber.App, handler *v1.Handler, cfg *config.Config, logger *zap.Logger, lc fx.Lifecycle) {
	api.SetupRoutes(app, handler)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("starting api server", zap.String("port", cfg.API.Port))
			go func() {
				if err := app.Listen(cfg.API.Port); err != nil {
					logger.Error("api server exited", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}

func NewFiberApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
}

func NewMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.DefaultRegisterer)
}
