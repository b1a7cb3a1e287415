package mocks

import (
	"context"

	"github.com/groomly/pet-services/notifygateway/internal/service"
	"github.com/stretchr/testify/mock"
)

type JobQueueService struct {
	mock.Mock
}

func (m *JobQueueService) FindJobsToQueue(ctx context.Context, limit int) ([]service.DispatchJobCommand, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.DispatchJobCommand), args.Error(1)
}
