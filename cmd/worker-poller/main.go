package main

import (
	"context"
	"time"

	"github.com/groomly/pet-services/notifygateway/internal/config"
	"github.com/groomly/pet-services/notifygateway/internal/consumers"
	"github.com/groomly/pet-services/notifygateway/internal/database"
	"github.com/groomly/pet-services/notifygateway/internal/metrics"
	"github.com/groomly/pet-services/notifygateway/internal/publishers"
	"github.com/groomly/pet-services/notifygateway/internal/repository"
	"github.com/groomly/pet-services/notifygateway/internal/service"
	"github.com/groomly/pet-services/notifygateway/pkg/mq"
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
			NewMQPublisher,

			repository.NewJobRepository,

			NewJobQueueService,

			NewDispatchPublisher,
		),
		fx.Invoke(runPoller),
	).Run()
}

// runPoller drives poll cycles off a ticker. A cycle runs to completion inside
// the select loop, so a slow cycle delays the next one instead of overlapping
// it. After a cycle that returns an error the next tick is skipped to give the
// store or the broker room to recover.
func runPoller(cfg *config.Config, publisher publishers.DispatchPublisher, logger *zap.Logger,
	rabbit *mq.RabbitMQ, lc fx.Lifecycle) {
	appCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rabbit.DeclareTopology(consumers.DispatchQueue); err != nil {
				logger.Error("declare topology failed", zap.Error(err))
				return err
			}

			logger.Info("queue declared", zap.String("queue", consumers.DispatchQueue))

			go func() {
				ticker := time.NewTicker(cfg.Poller.Interval)
				defer ticker.Stop()

				skipNext := false
				for {
					select {
					case <-ticker.C:
						if skipNext {
							skipNext = false
							logger.Debug("skipping poll cycle after errors")
							continue
						}

						if err := publisher.Publish(appCtx); err != nil {
							logger.Error("poll cycle failed", zap.Error(err))
							skipNext = true
						}
					case <-appCtx.Done():
						logger.Info("poller context cancelled")
						return
					}
				}
			}()

			logger.Info("dispatch poller started",
				zap.Duration("interval", cfg.Poller.Interval),
				zap.Int("batchSize", cfg.Poller.BatchSize))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping dispatch poller")
			cancel()
			return rabbit.Close()
		},
	})
}

func NewMQConnection(cfg *config.Config, logger *zap.Logger) (*mq.RabbitMQ, error) {
	return mq.NewConnection(cfg.RabbitMQ, logger)
}

func NewMQPublisher(rabbitMQ *mq.RabbitMQ) (mq.Publisher, error) {
	return rabbitMQ.CreatePublisher()
}

func NewMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.DefaultRegisterer)
}

func NewJobQueueService(jobRepo repository.JobRepository, cfg *config.Config, m *metrics.Metrics,
	logger *zap.Logger) service.JobQueueService {
	return service.NewJobQueueService(jobRepo, cfg.Poller.LeaseTTL, m, logger)
}

func NewDispatchPublisher(queue service.JobQueueService, publisher mq.Publisher, cfg *config.Config,
	logger *zap.Logger) publishers.DispatchPublisher {
	return publishers.NewDispatchPublisher(queue, publisher, cfg.Poller.BatchSize, logger)
}
