package main

import (
	"context"

	"github.com/groomly/pet-services/notifygateway/internal/config"
	"github.com/groomly/pet-services/notifygateway/internal/consumers"
	"github.com/groomly/pet-services/notifygateway/internal/database"
	"github.com/groomly/pet-services/notifygateway/internal/metrics"
	"github.com/groomly/pet-services/notifygateway/internal/repository"
	"github.com/groomly/pet-services/notifygateway/internal/service"
	"github.com/groomly/pet-services/notifygateway/internal/worker"
	"github.com/groomly/pet-services/notifygateway/pkg/httpclient"
	"github.com/groomly/pet-services/notifygateway/pkg/mq"
	"github.com/groomly/pet-services/notifygateway/pkg/msgprovider"
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
			NewMQConnection,
			NewMQConsumer,
			NewWorkerPool,

			repository.NewJobRepository,
			repository.NewWalletRepository,
			repository.NewCreditTransactionRepository,
			repository.NewTenantConfigRepository,
			repository.NewTransactionManager,

			NewMessageProvider,
			service.NewDispatcherService,
			service.NewEligibilityService,
			service.NewLedgerService,
			service.NewProcessorService,

			NewDispatchConsumer,
		),
		fx.Invoke(runDispatchConsumer),
	).Run()
}

func runDispatchConsumer(cfg *config.Config, dispatchConsumer consumers.DispatchConsumer, logger *zap.Logger,
	rabbit *mq.RabbitMQ, pool *worker.Pool, lc fx.Lifecycle,
) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology(consumers.DispatchQueue); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}
			logger.Info("queue declared", zap.String("queue", consumers.DispatchQueue))

			go func() {
				if err := dispatchConsumer.Consume(appCtx); err != nil {
					logger.Error("consumer exited", zap.Error(err))
				}
			}()

			logger.Info("dispatch consumer started",
				zap.Int("workers", cfg.Dispatch.Workers),
				zap.Int("prefetch", cfg.Dispatch.Prefetch))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping dispatch consumer")
			cancel()
			pool.Stop()
			return rabbit.Close()
		},
	})
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQConsumer(rabbitMQ *mq.RabbitMQ) (mq.Consumer, error) {
	return rabbitMQ.CreateConsumer()
}

func NewMessageProvider(cfg *config.Config) msgprovider.Provider {
	client := httpclient.NewHTTPClient(cfg.Provider.Timeout)
	return msgprovider.NewMessageProvider(cfg.Provider, client)
}

func NewWorkerPool(cfg *config.Config, logger *zap.Logger) *worker.Pool {
	return worker.NewPool(cfg.Dispatch.Workers, cfg.Dispatch.Prefetch, logger)
}

func NewDispatchConsumer(processor service.ProcessorService, consumer mq.Consumer, pool *worker.Pool,
	cfg *config.Config, logger *zap.Logger) consumers.DispatchConsumer {
	return consumers.NewDispatchConsumer(processor, consumer, pool, cfg.Dispatch.Prefetch, logger)
}

func NewMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.DefaultRegisterer)
}
