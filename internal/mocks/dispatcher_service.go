package mocks

import (
	"context"

	"github.com/groomly/pet-services/notifygateway/internal/model"
	"github.com/groomly/pet-services/notifygateway/pkg/msgprovider"
	"github.com/stretchr/testify/mock"
)

type DispatcherService struct {
	mock.Mock
}

func (m *DispatcherService) Send(ctx context.Context, job *model.NotificationJob) (msgprovider.Response, error) {
	args := m.Called(ctx, job)
	return args.Get(0).(msgprovider.Response), args.Error(1)
}
