package mocks

import (
	"context"

	"github.com/groomly/pet-services/notifygateway/internal/model"
	"github.com/stretchr/testify/mock"
)

type CreditTransactionRepository struct {
	mock.Mock
}

func (m *CreditTransactionRepository) Create(ctx context.Context, tx *model.CreditTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
