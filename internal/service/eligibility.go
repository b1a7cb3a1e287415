package service

import (
	"context"
	"errors"

	"github.com/groomly/pet-services/notifygateway/internal/model"
	"github.com/groomly/pet-services/notifygateway/internal/repository"
	"go.uber.org/zap"
)

const (
	DenialReasonOptOut  = "opt-in disabled"
	DenialReasonBalance = "insufficient balance"
)

type EligibilityResult struct {
	Eligible bool
	Reason   string
	WalletID *int64
}

type EligibilityService interface {
	Check(ctx context.Context, job *model.NotificationJob) (EligibilityResult, error)
}

type eligibility struct {
	configRepo repository.TenantConfigRepository
	walletRepo repository.WalletRepository
	logger     *zap.Logger
}

func NewEligibilityService(configRepo repository.TenantConfigRepository, walletRepo repository.WalletRepository,
	logger *zap.Logger) EligibilityService {
	return &eligibility{configRepo: configRepo, walletRepo: walletRepo, logger: logger}
}

// Check gates a pending job on tenant opt-in and wallet balance. The balance
// read here is a fast path to skip a wasted provider call; the ledger re-checks
// it with a conditional decrement at commit time.
func (e *eligibility) Check(ctx context.Context, job *model.NotificationJob) (EligibilityResult, error) {
	if job.Type == model.JobTypeReminder {
		cfg, err := e.configRepo.GetByTenantID(job.TenantID)
		if err != nil && !errors.Is(err, repository.ErrConfigNotFound) {
			e.logger.Error("Failed to load tenant notification config",
				zap.Error(err),
				zap.String("tenantID", job.TenantID))
			return EligibilityResult{}, ErrDatabase
		}

		// A tenant without a config row has never touched reminder settings;
		// reminders stay enabled for them.
		if cfg != nil && !cfg.ReminderEnabled {
			e.logger.Info("Reminder opt-in disabled for tenant",
				zap.String("tenantID", job.TenantID),
				zap.Int64("jobID", job.ID))
			return EligibilityResult{Eligible: false, Reason: DenialReasonOptOut}, nil
		}
	}

	wallet, err := e.walletRepo.FindByTenantChannel(ctx, job.TenantID, job.Channel)
	if err != nil {
		if errors.Is(err, repository.ErrWalletNotFound) {
			e.logger.Warn("No wallet for tenant channel",
				zap.String("tenantID", job.TenantID),
				zap.String("channel", string(job.Channel)))
			return EligibilityResult{Eligible: false, Reason: DenialReasonBalance}, nil
		}

		e.logger.Error("Failed to load wallet",
			zap.Error(err),
			zap.String("tenantID", job.TenantID),
			zap.String("channel", string(job.Channel)))
		return EligibilityResult{}, ErrDatabase
	}

	if wallet.Balance <= 0 {
		e.logger.Info("Wallet empty",
			zap.String("tenantID", job.TenantID),
			zap.String("channel", string(job.Channel)),
			zap.Int64("walletID", wallet.ID))
		return EligibilityResult{Eligible: false, Reason: DenialReasonBalance, WalletID: &wallet.ID}, nil
	}

	return EligibilityResult{Eligible: true, WalletID: &wallet.ID}, nil
}
