package publishers

import (
	"context"
	"encoding/json"

	"github.com/groomly/pet-services/notifygateway/internal/consumers"
	"github.com/groomly/pet-services/notifygateway/internal/service"
	"github.com/groomly/pet-services/notifygateway/pkg/mq"
	"go.uber.org/zap"
)

type DispatchPublisher interface {
	Publish(ctx context.Context) error
}

type dispatchPublisher struct {
	service   service.JobQueueService
	publisher mq.Publisher
	batchSize int
	logger    *zap.Logger
}

func NewDispatchPublisher(service service.JobQueueService, publisher mq.Publisher, batchSize int,
	logger *zap.Logger) DispatchPublisher {
	return &dispatchPublisher{service: service, publisher: publisher, batchSize: batchSize, logger: logger}
}

// Publish claims a batch of due jobs and pushes dispatch commands onto the
// queue. Claims are published oldest-first, which is what gives tenants their
// FIFO ordering downstream.
func (p *dispatchPublisher) Publish(ctx context.Context) error {
	commands, err := p.service.FindJobsToQueue(ctx, p.batchSize)
	if err != nil {
		return err
	}

	if len(commands) == 0 {
		return nil
	}

	p.logger.Info("Publishing dispatch commands", zap.Int("count", len(commands)))

	successCount := 0
	for _, cmd := range commands {
		body, _ := json.Marshal(cmd)
		if err := p.publisher.Publish(ctx, "", consumers.DispatchQueue, body); err != nil {
			p.logger.Error("Failed to publish dispatch command",
				zap.Error(err),
				zap.Int64("jobID", cmd.JobID))
			continue
		}

		successCount++
	}

	if successCount > 0 {
		p.logger.Info("Successfully published dispatch commands",
			zap.Int("published", successCount),
			zap.Int("total", len(commands)))
	}

	return nil
}
