package mocks

import (
	"github.com/groomly/pet-services/notifygateway/internal/model"
	"github.com/stretchr/testify/mock"
)

type TenantConfigRepository struct {
	mock.Mock
}

func (m *TenantConfigRepository) GetByTenantID(tenantID string) (*model.TenantNotificationConfig, error) {
	args := m.Called(tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TenantNotificationConfig), args.Error(1)
}
