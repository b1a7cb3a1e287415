package consumers

import (
	"context"
	"encoding/json"

	"github.com/groomly/pet-services/notifygateway/internal/service"
	"github.com/groomly/pet-services/notifygateway/internal/worker"
	"github.com/groomly/pet-services/notifygateway/pkg/mq"
	"go.uber.org/zap"
)

const DispatchQueue = "notify.dispatch"

type DispatchConsumer interface {
	Consume(ctx context.Context) error
}

type dispatchConsumer struct {
	processor service.ProcessorService
	consumer  mq.Consumer
	pool      *worker.Pool
	prefetch  int
	logger    *zap.Logger
}

func NewDispatchConsumer(processor service.ProcessorService, consumer mq.Consumer, pool *worker.Pool,
	prefetch int, logger *zap.Logger) DispatchConsumer {
	return &dispatchConsumer{
		processor: processor,
		consumer:  consumer,
		pool:      pool,
		prefetch:  prefetch,
		logger:    logger,
	}
}

func (c *dispatchConsumer) Consume(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.prefetch, DispatchQueue, c.handleMessage)
}

// handleMessage routes the job onto the lane for its tenant-channel pair.
// Enqueueing happens on the consume loop in delivery order, so jobs for one
// pair run oldest-first and never concurrently; the returned channel lets the
// loop ack once the lane finishes the job.
func (c *dispatchConsumer) handleMessage(ctx context.Context, body []byte) (<-chan error, error) {
	c.logger.Debug("received dispatch command", zap.ByteString("body", body))

	var cmd service.DispatchJobCommand
	if err := json.Unmarshal(body, &cmd); err != nil {
		c.logger.Warn("invalid dispatch command", zap.Error(err))
		return nil, err
	}

	laneKey := cmd.TenantID + ":" + string(cmd.Channel)

	return c.pool.Enqueue(ctx, laneKey, func() error {
		return c.processor.ProcessJob(ctx, cmd)
	})
}
