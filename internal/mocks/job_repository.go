package mocks

import (
	"context"
	"time"

	"github.com/groomly/pet-services/notifygateway/internal/model"
	"github.com/stretchr/testify/mock"
)

type JobRepository struct {
	mock.Mock
}

func (m *JobRepository) Create(ctx context.Context, job *model.NotificationJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *JobRepository) GetByID(id int64) (*model.NotificationJob, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NotificationJob), args.Error(1)
}

func (m *JobRepository) GetByTenantID(tenantID string, limit, offset int) ([]model.NotificationJob, error) {
	args := m.Called(tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.NotificationJob), args.Error(1)
}

func (m *JobRepository) CountByTenantID(tenantID string) (int, error) {
	args := m.Called(tenantID)
	return args.Int(0), args.Error(1)
}

func (m *JobRepository) FindScheduled(limit int) ([]model.NotificationJob, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.NotificationJob), args.Error(1)
}

func (m *JobRepository) Claim(ctx context.Context, jobID int64, expiresAt time.Time) error {
	args := m.Called(ctx, jobID, expiresAt)
	return args.Error(0)
}

func (m *JobRepository) ReleaseExpiredClaims(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *JobRepository) UpdateTerminal(ctx context.Context, job *model.NotificationJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *JobRepository) FindSentWithoutConsume(limit int) ([]model.NotificationJob, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.NotificationJob), args.Error(1)
}
