package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/groomly/pet-services/notifygateway/internal/mocks"
	"github.com/groomly/pet-services/notifygateway/internal/model"
	"github.com/groomly/pet-services/notifygateway/internal/repository"
	"github.com/groomly/pet-services/notifygateway/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestLedger_Debit(t *testing.T) {
	logger := zap.NewNop()

	cmd := service.DebitCommand{
		TenantID: "tenant-1",
		Channel:  model.ChannelSMS,
		JobID:    123,
		Amount:   1,
		Reason:   "notification sent",
	}

	t.Run("debit decrements wallet and appends consume row", func(t *testing.T) {
		mockWalletRepo := &mocks.WalletRepository{}
		mockTxRepo := &mocks.CreditTransactionRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewLedgerService(mockWalletRepo, mockTxRepo, mockTxManager, logger)

		mockTxManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockWalletRepo.On("ConditionalDebit", mock.Anything, "tenant-1", model.ChannelSMS, int64(1)).
			Return(nil)
		mockWalletRepo.On("FindByTenantChannel", mock.Anything, "tenant-1", model.ChannelSMS).
			Return(&model.CreditWallet{ID: 7, TenantID: "tenant-1", Channel: model.ChannelSMS, Balance: 9}, nil)
		mockTxRepo.On("Create", mock.Anything,
			mock.MatchedBy(func(tx *model.CreditTransaction) bool {
				return tx.Type == model.TransactionTypeConsume &&
					tx.Amount == 1 &&
					tx.WalletID != nil && *tx.WalletID == 7 &&
					tx.JobID != nil && *tx.JobID == 123 &&
					tx.Reason == "notification sent"
			})).Return(nil)

		err := svc.Debit(context.Background(), cmd)

		assert.NoError(t, err)

		mockWalletRepo.AssertExpectations(t)
		mockTxRepo.AssertExpectations(t)
	})

	t.Run("lost balance race returns insufficient balance", func(t *testing.T) {
		mockWalletRepo := &mocks.WalletRepository{}
		mockTxRepo := &mocks.CreditTransactionRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewLedgerService(mockWalletRepo, mockTxRepo, mockTxManager, logger)

		mockTxManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockWalletRepo.On("ConditionalDebit", mock.Anything, "tenant-1", model.ChannelSMS, int64(1)).
			Return(repository.ErrNoRowsAffected)
		mockWalletRepo.On("FindByTenantChannel", mock.Anything, "tenant-1", model.ChannelSMS).
			Return(&model.CreditWallet{ID: 7, Balance: 0}, nil)

		err := svc.Debit(context.Background(), cmd)

		assert.ErrorIs(t, err, service.ErrInsufficientBalance)
		mockTxRepo.AssertNotCalled(t, "Create")
	})

	t.Run("missing wallet maps to wallet not found", func(t *testing.T) {
		mockWalletRepo := &mocks.WalletRepository{}
		mockTxRepo := &mocks.CreditTransactionRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewLedgerService(mockWalletRepo, mockTxRepo, mockTxManager, logger)

		mockTxManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockWalletRepo.On("ConditionalDebit", mock.Anything, "tenant-1", model.ChannelSMS, int64(1)).
			Return(repository.ErrNoRowsAffected)
		mockWalletRepo.On("FindByTenantChannel", mock.Anything, "tenant-1", model.ChannelSMS).
			Return(nil, repository.ErrWalletNotFound)

		err := svc.Debit(context.Background(), cmd)

		assert.ErrorIs(t, err, service.ErrWalletNotFound)
	})

	t.Run("debit write failure is a database error", func(t *testing.T) {
		mockWalletRepo := &mocks.WalletRepository{}
		mockTxRepo := &mocks.CreditTransactionRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewLedgerService(mockWalletRepo, mockTxRepo, mockTxManager, logger)

		mockTxManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		mockWalletRepo.On("ConditionalDebit", mock.Anything, "tenant-1", model.ChannelSMS, int64(1)).
			Return(errors.New("connection reset"))

		err := svc.Debit(context.Background(), cmd)

		assert.ErrorIs(t, err, service.ErrDatabase)
	})
}

func TestLedger_RecordDeniedAttempt(t *testing.T) {
	logger := zap.NewNop()

	t.Run("denied attempt records a zero-amount consume row", func(t *testing.T) {
		mockWalletRepo := &mocks.WalletRepository{}
		mockTxRepo := &mocks.CreditTransactionRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewLedgerService(mockWalletRepo, mockTxRepo, mockTxManager, logger)

		walletID := int64(7)
		mockTxRepo.On("Create", mock.Anything,
			mock.MatchedBy(func(tx *model.CreditTransaction) bool {
				return tx.Type == model.TransactionTypeConsume &&
					tx.Amount == 0 &&
					tx.WalletID != nil && *tx.WalletID == 7 &&
					tx.JobID != nil && *tx.JobID == 123 &&
					tx.Reason == service.DenialReasonBalance
			})).Return(nil)

		err := svc.RecordDeniedAttempt(context.Background(), "tenant-1", model.ChannelSMS,
			&walletID, 123, service.DenialReasonBalance)

		assert.NoError(t, err)
		mockTxRepo.AssertExpectations(t)
	})

	t.Run("nil wallet id is recorded as-is", func(t *testing.T) {
		mockWalletRepo := &mocks.WalletRepository{}
		mockTxRepo := &mocks.CreditTransactionRepository{}
		mockTxManager := &mocks.TxManager{}

		svc := service.NewLedgerService(mockWalletRepo, mockTxRepo, mockTxManager, logger)

		mockTxRepo.On("Create", mock.Anything,
			mock.MatchedBy(func(tx *model.CreditTransaction) bool {
				return tx.WalletID == nil && tx.Amount == 0
			})).Return(nil)

		err := svc.RecordDeniedAttempt(context.Background(), "tenant-1", model.ChannelWhatsApp,
			nil, 124, service.DenialReasonBalance)

		assert.NoError(t, err)
	})
}
