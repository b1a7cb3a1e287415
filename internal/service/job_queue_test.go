package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/groomly/pet-services/notifygateway/internal/mocks"
	"github.com/groomly/pet-services/notifygateway/internal/model"
	"github.com/groomly/pet-services/notifygateway/internal/repository"
	"github.com/groomly/pet-services/notifygateway/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestJobQueue_FindJobsToQueue(t *testing.T) {
	logger := zap.NewNop()
	leaseTTL := 5 * time.Minute

	scheduled := []model.NotificationJob{
		{ID: 1, TenantID: "tenant-1", Channel: model.ChannelSMS, Status: model.JobStatusScheduled},
		{ID: 2, TenantID: "tenant-2", Channel: model.ChannelWhatsApp, Status: model.JobStatusScheduled},
		{ID: 3, TenantID: "tenant-1", Channel: model.ChannelSMS, Status: model.JobStatusScheduled},
	}

	t.Run("claims scheduled jobs oldest-first", func(t *testing.T) {
		mockJobRepo := &mocks.JobRepository{}
		svc := service.NewJobQueueService(mockJobRepo, leaseTTL, newTestMetrics(), logger)

		mockJobRepo.On("ReleaseExpiredClaims", mock.Anything, mock.Anything).Return(int64(0), nil)
		mockJobRepo.On("FindScheduled", 100).Return(scheduled, nil)
		mockJobRepo.On("Claim", mock.Anything, int64(1), mock.Anything).Return(nil)
		mockJobRepo.On("Claim", mock.Anything, int64(2), mock.Anything).Return(nil)
		mockJobRepo.On("Claim", mock.Anything, int64(3), mock.Anything).Return(nil)

		commands, err := svc.FindJobsToQueue(context.Background(), 100)

		assert.NoError(t, err)
		assert.Len(t, commands, 3)
		assert.Equal(t, int64(1), commands[0].JobID)
		assert.Equal(t, int64(2), commands[1].JobID)
		assert.Equal(t, int64(3), commands[2].JobID)
		assert.Equal(t, "tenant-2", commands[1].TenantID)
		assert.Equal(t, model.ChannelWhatsApp, commands[1].Channel)

		mockJobRepo.AssertExpectations(t)
	})

	t.Run("skips jobs claimed by another poller", func(t *testing.T) {
		mockJobRepo := &mocks.JobRepository{}
		svc := service.NewJobQueueService(mockJobRepo, leaseTTL, newTestMetrics(), logger)

		mockJobRepo.On("ReleaseExpiredClaims", mock.Anything, mock.Anything).Return(int64(0), nil)
		mockJobRepo.On("FindScheduled", 100).Return(scheduled, nil)
		mockJobRepo.On("Claim", mock.Anything, int64(1), mock.Anything).Return(nil)
		mockJobRepo.On("Claim", mock.Anything, int64(2), mock.Anything).Return(repository.ErrNoRowsAffected)
		mockJobRepo.On("Claim", mock.Anything, int64(3), mock.Anything).Return(nil)

		commands, err := svc.FindJobsToQueue(context.Background(), 100)

		assert.NoError(t, err)
		assert.Len(t, commands, 2)
		assert.Equal(t, int64(1), commands[0].JobID)
		assert.Equal(t, int64(3), commands[1].JobID)
	})

	t.Run("claim lease uses the configured TTL", func(t *testing.T) {
		mockJobRepo := &mocks.JobRepository{}
		svc := service.NewJobQueueService(mockJobRepo, leaseTTL, newTestMetrics(), logger)

		before := time.Now()

		mockJobRepo.On("ReleaseExpiredClaims", mock.Anything, mock.Anything).Return(int64(0), nil)
		mockJobRepo.On("FindScheduled", 10).Return(scheduled[:1], nil)
		mockJobRepo.On("Claim", mock.Anything, int64(1),
			mock.MatchedBy(func(expiresAt time.Time) bool {
				return expiresAt.After(before.Add(leaseTTL-time.Second)) &&
					expiresAt.Before(before.Add(leaseTTL+time.Minute))
			})).Return(nil)

		_, err := svc.FindJobsToQueue(context.Background(), 10)

		assert.NoError(t, err)
		mockJobRepo.AssertExpectations(t)
	})

	t.Run("expired claims are released before claiming", func(t *testing.T) {
		mockJobRepo := &mocks.JobRepository{}
		svc := service.NewJobQueueService(mockJobRepo, leaseTTL, newTestMetrics(), logger)

		mockJobRepo.On("ReleaseExpiredClaims", mock.Anything, mock.Anything).Return(int64(2), nil)
		mockJobRepo.On("FindScheduled", 100).Return([]model.NotificationJob{}, nil)

		commands, err := svc.FindJobsToQueue(context.Background(), 100)

		assert.NoError(t, err)
		assert.Empty(t, commands)

		mockJobRepo.AssertExpectations(t)
	})

	t.Run("release failure aborts the cycle", func(t *testing.T) {
		mockJobRepo := &mocks.JobRepository{}
		svc := service.NewJobQueueService(mockJobRepo, leaseTTL, newTestMetrics(), logger)

		mockJobRepo.On("ReleaseExpiredClaims", mock.Anything, mock.Anything).
			Return(int64(0), errors.New("connection reset"))

		_, err := svc.FindJobsToQueue(context.Background(), 100)

		assert.Error(t, err)
		mockJobRepo.AssertNotCalled(t, "FindScheduled")
	})

	t.Run("find failure propagates", func(t *testing.T) {
		mockJobRepo := &mocks.JobRepository{}
		svc := service.NewJobQueueService(mockJobRepo, leaseTTL, newTestMetrics(), logger)

		mockJobRepo.On("ReleaseExpiredClaims", mock.Anything, mock.Anything).Return(int64(0), nil)
		mockJobRepo.On("FindScheduled", 100).Return(nil, errors.New("connection reset"))

		_, err := svc.FindJobsToQueue(context.Background(), 100)

		assert.Error(t, err)
		mockJobRepo.AssertNotCalled(t, "Claim")
	})
}
