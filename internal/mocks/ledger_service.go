package mocks

import (
	"context"

	"github.com/groomly/pet-services/notifygateway/internal/model"
	"github.com/groomly/pet-services/notifygateway/internal/service"
	"github.com/stretchr/testify/mock"
)

type LedgerService struct {
	mock.Mock
}

func (m *LedgerService) Debit(ctx context.Context, cmd service.DebitCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func (m *LedgerService) RecordDeniedAttempt(ctx context.Context, tenantID string, channel model.Channel,
	walletID *int64, jobID int64, reason string) error {
	args := m.Called(ctx, tenantID, channel, walletID, jobID, reason)
	return args.Error(0)
}
