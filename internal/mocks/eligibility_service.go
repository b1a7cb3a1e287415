package mocks

import (
	"context"

	"github.com/groomly/pet-services/notifygateway/internal/model"
	"github.com/groomly/pet-services/notifygateway/internal/service"
	"github.com/stretchr/testify/mock"
)

type EligibilityService struct {
	mock.Mock
}

func (m *EligibilityService) Check(ctx context.Context, job *model.NotificationJob) (service.EligibilityResult, error) {
	args := m.Called(ctx, job)
	return args.Get(0).(service.EligibilityResult), args.Error(1)
}
