package service

import (
	"context"
	"errors"
	"time"

	"github.com/groomly/pet-services/notifygateway/internal/metrics"
	"github.com/groomly/pet-services/notifygateway/internal/repository"
	"go.uber.org/zap"
)

type JobQueueService interface {
	FindJobsToQueue(ctx context.Context, limit int) ([]DispatchJobCommand, error)
}

type jobQueue struct {
	jobRepo  repository.JobRepository
	leaseTTL time.Duration
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewJobQueueService(jobRepo repository.JobRepository, leaseTTL time.Duration, m *metrics.Metrics,
	logger *zap.Logger) JobQueueService {
	return &jobQueue{jobRepo: jobRepo, leaseTTL: leaseTTL, metrics: m, logger: logger}
}

// FindJobsToQueue requeues expired claims, then claims up to limit scheduled
// jobs oldest-first. Each claim is a guarded status flip, so two pollers
// racing over the same backlog split it instead of double-claiming.
func (q *jobQueue) FindJobsToQueue(ctx context.Context, limit int) ([]DispatchJobCommand, error) {
	now := time.Now()

	released, err := q.jobRepo.ReleaseExpiredClaims(ctx, now)
	if err != nil {
		q.logger.Error("Failed to release expired claims", zap.Error(err))
		return nil, err
	}

	if released > 0 {
		q.logger.Warn("Requeued jobs with expired claims", zap.Int64("count", released))
		q.metrics.ClaimsReleased.Add(float64(released))
	}

	jobs, err := q.jobRepo.FindScheduled(limit)
	if err != nil {
		q.logger.Error("Failed to find scheduled jobs", zap.Error(err))
		return nil, err
	}

	if len(jobs) == 0 {
		q.logger.Debug("No scheduled jobs found")
		return nil, nil
	}

	expiresAt := now.Add(q.leaseTTL)
	commands := make([]DispatchJobCommand, 0, len(jobs))

	for _, job := range jobs {
		if err := q.jobRepo.Claim(ctx, job.ID, expiresAt); err != nil {
			if errors.Is(err, repository.ErrNoRowsAffected) {
				q.logger.Debug("Job claimed elsewhere, skipping", zap.Int64("jobID", job.ID))
				continue
			}

			q.logger.Error("Failed to claim job",
				zap.Error(err),
				zap.Int64("jobID", job.ID))
			continue
		}

		commands = append(commands, DispatchJobCommand{
			JobID:    job.ID,
			TenantID: job.TenantID,
			Channel:  job.Channel,
		})
	}

	if len(commands) > 0 {
		q.metrics.JobsClaimed.Add(float64(len(commands)))
	}

	return commands, nil
}
