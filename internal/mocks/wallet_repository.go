package mocks

import (
	"context"

	"github.com/groomly/pet-services/notifygateway/internal/model"
	"github.com/stretchr/testify/mock"
)

type WalletRepository struct {
	mock.Mock
}

func (m *WalletRepository) FindByTenantChannel(ctx context.Context, tenantID string, channel model.Channel) (*model.CreditWallet, error) {
	args := m.Called(ctx, tenantID, channel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CreditWallet), args.Error(1)
}

func (m *WalletRepository) ConditionalDebit(ctx context.Context, tenantID string, channel model.Channel, amount int64) error {
	args := m.Called(ctx, tenantID, channel, amount)
	return args.Error(0)
}
