package service

import (
	"context"
	"time"

	"github.com/groomly/pet-services/notifygateway/internal/config"
	"github.com/groomly/pet-services/notifygateway/internal/model"
	"github.com/groomly/pet-services/notifygateway/pkg/msgprovider"
	"go.uber.org/zap"
)

type DispatcherService interface {
	Send(ctx context.Context, job *model.NotificationJob) (msgprovider.Response, error)
}

type Dispatcher struct {
	provider msgprovider.Provider
	logger   *zap.Logger
	config   msgprovider.Config
}

func NewDispatcherService(provider msgprovider.Provider, logger *zap.Logger, config *config.Config) DispatcherService {
	return &Dispatcher{provider: provider, logger: logger, config: config.Provider}
}

// Send pushes the job to the messaging gateway. Every attempt runs under the
// configured timeout; a timed-out attempt is not retried, so a hung provider
// costs one timeout bound and nothing more. Transient gateway errors get a few
// retries within this single call; the job itself is never re-attempted.
func (d *Dispatcher) Send(ctx context.Context, job *model.NotificationJob) (msgprovider.Response, error) {
	var lastErr error

	for attempt := 1; attempt <= d.config.MaxRetry; attempt++ {
		d.logger.Debug("Attempting to dispatch notification",
			zap.Int("attempt", attempt),
			zap.Int64("jobID", job.ID),
			zap.String("channel", string(job.Channel)),
			zap.String("to", job.Recipient))

		providerCtx, cancel := context.WithTimeout(ctx, d.config.Timeout)

		response, err := d.provider.Send(providerCtx, string(job.Channel), job.Recipient, job.Body)
		cancel()

		if err == nil {
			d.logger.Info("Notification dispatched",
				zap.Int64("jobID", job.ID),
				zap.String("providerMessageID", response.MessageID),
				zap.String("status", response.Status),
				zap.Int("attempt", attempt))
			return response, nil
		}

		lastErr = err
		d.logger.Warn("Dispatch attempt failed",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.Int64("jobID", job.ID))

		code := msgprovider.CodeOf(err)
		if code == msgprovider.ErrorCodeInvalidRecipient || code == msgprovider.ErrorCodeTimeout {
			d.logger.Error("Non-retryable error encountered",
				zap.Error(err),
				zap.Int64("jobID", job.ID),
				zap.String("to", job.Recipient))
			return msgprovider.Response{}, err
		}

		if attempt < d.config.MaxRetry {
			delay := time.Duration(attempt) * 100 * time.Millisecond
			d.logger.Debug("Waiting before retry", zap.Duration("delay", delay))

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return msgprovider.Response{}, ctx.Err()
			}
		}
	}

	d.logger.Error("All dispatch attempts exhausted",
		zap.Error(lastErr),
		zap.Int("maxRetries", d.config.MaxRetry),
		zap.Int64("jobID", job.ID))

	return msgprovider.Response{}, lastErr
}
