package mocks

import (
	"context"

	"github.com/groomly/pet-services/notifygateway/internal/service"
	"github.com/stretchr/testify/mock"
)

type ProcessorService struct {
	mock.Mock
}

func (m *ProcessorService) ProcessJob(ctx context.Context, cmd service.DispatchJobCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}
