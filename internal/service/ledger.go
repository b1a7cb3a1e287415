package service

import (
	"context"
	"errors"

	"github.com/groomly/pet-services/notifygateway/internal/model"
	"github.com/groomly/pet-services/notifygateway/internal/repository"
	"go.uber.org/zap"
)

type LedgerService interface {
	Debit(ctx context.Context, cmd DebitCommand) error
	RecordDeniedAttempt(ctx context.Context, tenantID string, channel model.Channel, walletID *int64,
		jobID int64, reason string) error
}

type ledger struct {
	walletRepo repository.WalletRepository
	txRepo     repository.CreditTransactionRepository
	txManager  repository.TxManager
	logger     *zap.Logger
}

func NewLedgerService(walletRepo repository.WalletRepository, txRepo repository.CreditTransactionRepository,
	txManager repository.TxManager, logger *zap.Logger) LedgerService {
	return &ledger{walletRepo: walletRepo, txRepo: txRepo, txManager: txManager, logger: logger}
}

// Debit decrements the wallet and appends the CONSUME row in one transaction.
// The decrement is conditional on balance >= amount at write time, so an earlier
// eligibility read that went stale loses here instead of overdrawing the wallet.
func (l *ledger) Debit(ctx context.Context, cmd DebitCommand) error {
	return l.txManager.WithTx(ctx, func(ctx context.Context) error {
		err := l.walletRepo.ConditionalDebit(ctx, cmd.TenantID, cmd.Channel, cmd.Amount)
		if err != nil {
			if !errors.Is(err, repository.ErrNoRowsAffected) {
				l.logger.Error("Failed to debit wallet",
					zap.Error(err),
					zap.String("tenantID", cmd.TenantID),
					zap.String("channel", string(cmd.Channel)))
				return ErrDatabase
			}

			wallet, findErr := l.walletRepo.FindByTenantChannel(ctx, cmd.TenantID, cmd.Channel)
			if findErr != nil {
				if errors.Is(findErr, repository.ErrWalletNotFound) {
					l.logger.Warn("Wallet missing at debit time",
						zap.String("tenantID", cmd.TenantID),
						zap.String("channel", string(cmd.Channel)),
						zap.Int64("jobID", cmd.JobID))
					return ErrWalletNotFound
				}
				return ErrDatabase
			}

			l.logger.Warn("Debit lost the balance race",
				zap.String("tenantID", cmd.TenantID),
				zap.String("channel", string(cmd.Channel)),
				zap.Int64("walletID", wallet.ID),
				zap.Int64("jobID", cmd.JobID))
			return ErrInsufficientBalance
		}

		wallet, err := l.walletRepo.FindByTenantChannel(ctx, cmd.TenantID, cmd.Channel)
		if err != nil {
			return ErrDatabase
		}

		tx := model.CreditTransaction{
			TenantID: cmd.TenantID,
			Channel:  cmd.Channel,
			WalletID: &wallet.ID,
			JobID:    &cmd.JobID,
			Type:     model.TransactionTypeConsume,
			Amount:   cmd.Amount,
			Reason:   cmd.Reason,
		}

		if err := l.txRepo.Create(ctx, &tx); err != nil {
			l.logger.Error("Failed to record consume transaction",
				zap.Error(err),
				zap.Int64("jobID", cmd.JobID))
			return ErrDatabase
		}

		l.logger.Info("Wallet debited",
			zap.String("tenantID", cmd.TenantID),
			zap.String("channel", string(cmd.Channel)),
			zap.Int64("amount", cmd.Amount),
			zap.Int64("newBalance", wallet.Balance),
			zap.Int64("jobID", cmd.JobID))

		return nil
	})
}

// RecordDeniedAttempt appends a zero-amount CONSUME row so denied sends stay
// visible in the audit trail even when no wallet exists.
func (l *ledger) RecordDeniedAttempt(ctx context.Context, tenantID string, channel model.Channel,
	walletID *int64, jobID int64, reason string) error {

	tx := model.CreditTransaction{
		TenantID: tenantID,
		Channel:  channel,
		WalletID: walletID,
		JobID:    &jobID,
		Type:     model.TransactionTypeConsume,
		Amount:   0,
		Reason:   reason,
	}

	if err := l.txRepo.Create(ctx, &tx); err != nil {
		l.logger.Error("Failed to record denied attempt",
			zap.Error(err),
			zap.String("tenantID", tenantID),
			zap.Int64("jobID", jobID))
		return ErrDatabase
	}

	return nil
}
