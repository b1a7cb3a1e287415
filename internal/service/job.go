package service

import (
	"context"
	"errors"
	"time"

	"github.com/groomly/pet-services/notifygateway/internal/constants"
	"github.com/groomly/pet-services/notifygateway/internal/metrics"
	"github.com/groomly/pet-services/notifygateway/internal/model"
	"github.com/groomly/pet-services/notifygateway/internal/repository"
	"go.uber.org/zap"
)

type JobService interface {
	CreateJob(ctx context.Context, cmd CreateJobCommand) (CreateJobResponse, error)
	GetJob(jobID int64) (JobView, error)
	GetJobs(query GetJobsQuery) (GetJobsResponse, error)
}

type job struct {
	jobRepo repository.JobRepository
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewJobService(jobRepo repository.JobRepository, m *metrics.Metrics, logger *zap.Logger) JobService {
	return &job{jobRepo: jobRepo, metrics: m, logger: logger}
}

// CreateJob enqueues a SCHEDULED job. The (tenant, clientRef) unique key makes
// enqueue idempotent against scheduler retries.
func (s *job) CreateJob(ctx context.Context, cmd CreateJobCommand) (CreateJobResponse, error) {
	j := model.NotificationJob{
		TenantID:  cmd.TenantID,
		ClientRef: cmd.ClientRef,
		Channel:   cmd.Channel,
		Type:      cmd.Type,
		Status:    model.JobStatusScheduled,
		Recipient: cmd.Recipient,
		Body:      cmd.Body,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	err := s.jobRepo.Create(ctx, &j)
	if err != nil {
		if errors.Is(err, repository.ErrJobDuplicate) {
			s.logger.Warn("Duplicate job detected",
				zap.String("tenantID", cmd.TenantID),
				zap.String("clientRef", cmd.ClientRef))
			return CreateJobResponse{}, NewServiceError(constants.ErrCodeDuplicateJob, err)
		}

		s.logger.Warn("Failed to create job", zap.Error(err))
		return CreateJobResponse{}, NewServiceError(ErrCodeDatabase, err)
	}

	s.metrics.JobsEnqueued.Inc()

	s.logger.Info("Job enqueued",
		zap.Int64("jobID", j.ID),
		zap.String("tenantID", cmd.TenantID),
		zap.String("channel", string(cmd.Channel)),
		zap.String("type", string(cmd.Type)))

	return CreateJobResponse{JobID: j.ID}, nil
}

func (s *job) GetJob(jobID int64) (JobView, error) {
	j, err := s.jobRepo.GetByID(jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return JobView{}, NewServiceError(constants.ErrCodeJobNotFound, err)
		}

		return JobView{}, NewServiceError(ErrCodeDatabase, err)
	}

	return toJobView(j), nil
}

func (s *job) GetJobs(query GetJobsQuery) (GetJobsResponse, error) {
	jobs, err := s.jobRepo.GetByTenantID(query.TenantID, query.Limit, query.Offset)
	if err != nil {
		return GetJobsResponse{}, NewServiceError(ErrCodeDatabase, err)
	}

	total, err := s.jobRepo.CountByTenantID(query.TenantID)
	if err != nil {
		return GetJobsResponse{}, NewServiceError(ErrCodeDatabase, err)
	}

	views := make([]JobView, 0, len(jobs))
	for i := range jobs {
		views = append(views, toJobView(&jobs[i]))
	}

	return GetJobsResponse{Jobs: views, Total: total}, nil
}

func toJobView(j *model.NotificationJob) JobView {
	view := JobView{
		JobID:     j.ID,
		ClientRef: j.ClientRef,
		TenantID:  j.TenantID,
		Channel:   string(j.Channel),
		Type:      string(j.Type),
		Status:    string(j.Status),
		Recipient: j.Recipient,
		CreatedAt: j.CreatedAt.Format(time.RFC3339),
	}

	if j.ProviderMsgID != nil {
		view.ProviderMsgID = *j.ProviderMsgID
	}

	if j.Error != nil {
		view.Error = *j.Error
	}

	return view
}
