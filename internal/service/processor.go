package service

import (
	"context"
	"errors"
	"time"

	"github.com/groomly/pet-services/notifygateway/internal/metrics"
	"github.com/groomly/pet-services/notifygateway/internal/model"
	"github.com/groomly/pet-services/notifygateway/internal/repository"
	"github.com/groomly/pet-services/notifygateway/pkg/mq"
	"go.uber.org/zap"
)

const debitReasonSent = "notification sent"

type ProcessorService interface {
	ProcessJob(ctx context.Context, cmd DispatchJobCommand) error
}

type processor struct {
	jobRepo     repository.JobRepository
	eligibility EligibilityService
	dispatcher  DispatcherService
	ledger      LedgerService
	txManager   repository.TxManager
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

func NewProcessorService(jobRepo repository.JobRepository, eligibility EligibilityService,
	dispatcher DispatcherService, ledger LedgerService, txManager repository.TxManager,
	m *metrics.Metrics, logger *zap.Logger) ProcessorService {
	return &processor{jobRepo: jobRepo, eligibility: eligibility, dispatcher: dispatcher,
		ledger: ledger, txManager: txManager, metrics: m, logger: logger}
}

// ProcessJob drives one job from SCHEDULED/CLAIMED to a terminal state.
// A job is debited if and only if the provider accepted it and the wallet
// still had credit at commit time; both writes share one transaction.
func (p *processor) ProcessJob(ctx context.Context, cmd DispatchJobCommand) error {
	job, err := p.getJobForProcessing(cmd.JobID)
	if err != nil {
		p.logger.Debug("Job not processable",
			zap.Int64("jobID", cmd.JobID),
			zap.Error(err))

		if errors.Is(err, ErrDatabase) {
			return mq.Temporary(err)
		}

		return nil
	}

	elig, err := p.eligibility.Check(ctx, job)
	if err != nil {
		return mq.Temporary(err)
	}

	if !elig.Eligible {
		return p.handleDenied(ctx, job, elig)
	}

	start := time.Now()
	response, sendErr := p.dispatcher.Send(ctx, job)
	p.metrics.DispatchDuration.Observe(time.Since(start).Seconds())

	if sendErr != nil {
		return p.handleSendFailed(ctx, job, sendErr)
	}

	return p.handleSent(ctx, job, elig, response.MessageID)
}

func (p *processor) getJobForProcessing(jobID int64) (*model.NotificationJob, error) {
	job, err := p.jobRepo.GetByID(jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, ErrJobNotFound
		}

		return nil, ErrDatabase
	}

	switch job.Status {
	case model.JobStatusScheduled, model.JobStatusClaimed:
		return job, nil

	case model.JobStatusSent, model.JobStatusFailed:
		p.logger.Info("Job already in terminal state",
			zap.Int64("jobID", jobID), zap.String("status", string(job.Status)))
		return nil, ErrJobAlreadyProcessed

	default:
		p.logger.Error("Unknown job status",
			zap.String("status", string(job.Status)),
			zap.Int64("jobID", jobID))
		return nil, ErrUnknownJobStatus
	}
}

func (p *processor) handleDenied(ctx context.Context, job *model.NotificationJob, elig EligibilityResult) error {
	p.metrics.DenialsTotal.WithLabelValues(elig.Reason).Inc()

	if elig.Reason == DenialReasonOptOut {
		p.logger.Info("Job denied, reminders disabled",
			zap.Int64("jobID", job.ID),
			zap.String("tenantID", job.TenantID))

		if err := p.updateToFailed(ctx, job.ID, elig.Reason); err != nil {
			if errors.Is(err, ErrJobAlreadyProcessed) {
				return nil
			}

			return mq.Temporary(err)
		}

		p.metrics.JobsProcessed.WithLabelValues("denied_opt_out").Inc()
		return nil
	}

	p.logger.Info("Job denied, insufficient balance",
		zap.Int64("jobID", job.ID),
		zap.String("tenantID", job.TenantID),
		zap.String("channel", string(job.Channel)))

	err := p.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := p.updateToFailed(ctx, job.ID, elig.Reason); err != nil {
			return err
		}

		return p.ledger.RecordDeniedAttempt(ctx, job.TenantID, job.Channel, elig.WalletID, job.ID, elig.Reason)
	})

	if err != nil {
		if errors.Is(err, ErrJobAlreadyProcessed) {
			return nil
		}

		return mq.Temporary(err)
	}

	p.metrics.JobsProcessed.WithLabelValues("denied_balance").Inc()
	return nil
}

func (p *processor) handleSendFailed(ctx context.Context, job *model.NotificationJob, sendErr error) error {
	p.logger.Warn("Dispatch failed, marking job failed",
		zap.Error(sendErr),
		zap.Int64("jobID", job.ID))

	if err := p.updateToFailed(ctx, job.ID, sendErr.Error()); err != nil {
		if errors.Is(err, ErrJobAlreadyProcessed) {
			return nil
		}

		return mq.Temporary(err)
	}

	p.metrics.JobsProcessed.WithLabelValues("dispatch_failed").Inc()
	return nil
}

// handleSent commits the SENT transition and the debit as one unit. Losing
// the wallet race at this point fails the job even though the provider took
// the message; the wallet is never allowed to go negative to cover a send.
func (p *processor) handleSent(ctx context.Context, job *model.NotificationJob, elig EligibilityResult,
	providerMsgID string) error {

	walletGone := false
	outcome := "sent"

	err := p.txManager.WithTx(ctx, func(ctx context.Context) error {
		debitCmd := DebitCommand{
			TenantID: job.TenantID,
			Channel:  job.Channel,
			JobID:    job.ID,
			Amount:   1,
			Reason:   debitReasonSent,
		}

		debitErr := p.ledger.Debit(ctx, debitCmd)
		switch {
		case debitErr == nil:
			return p.updateToSent(ctx, job.ID, providerMsgID)

		case errors.Is(debitErr, ErrInsufficientBalance):
			outcome = "race_lost"
			if err := p.updateToFailed(ctx, job.ID, DenialReasonBalance); err != nil {
				return err
			}

			return p.ledger.RecordDeniedAttempt(ctx, job.TenantID, job.Channel, elig.WalletID,
				job.ID, DenialReasonBalance)

		case errors.Is(debitErr, ErrWalletNotFound):
			walletGone = true
			return p.updateToSent(ctx, job.ID, providerMsgID)

		default:
			return debitErr
		}
	})

	if err != nil {
		if errors.Is(err, ErrJobAlreadyProcessed) {
			// Another worker finished this job; our debit rolled back with the tx.
			p.logger.Info("Job finished by another worker, rolled back",
				zap.Int64("jobID", job.ID))
			return nil
		}

		// The message left the building but we could not record it. Do not
		// requeue: that would dispatch a second message right away. The job
		// stays CLAIMED until its lease expires and is then redispatched, so
		// delivery here is at least once; the critical log and the alert
		// counter are the operator's window to intervene before that happens.
		p.logger.Error("CRITICAL: notification sent but outcome not persisted - manual reconciliation required",
			zap.Error(err),
			zap.Int64("jobID", job.ID),
			zap.String("providerMessageID", providerMsgID))
		p.metrics.ReconcileAlerts.Inc()
		return nil
	}

	if walletGone {
		p.logger.Error("CRITICAL: notification sent but wallet missing at debit time - manual reconciliation required",
			zap.Int64("jobID", job.ID),
			zap.String("tenantID", job.TenantID),
			zap.String("channel", string(job.Channel)))
		p.metrics.ReconcileAlerts.Inc()
		p.metrics.JobsProcessed.WithLabelValues("sent_undebited").Inc()
		return nil
	}

	if outcome == "sent" {
		p.metrics.CreditsConsumed.Inc()
	}

	p.metrics.JobsProcessed.WithLabelValues(outcome).Inc()

	p.logger.Info("Job processed",
		zap.Int64("jobID", job.ID),
		zap.String("outcome", outcome),
		zap.String("providerMessageID", providerMsgID))

	return nil
}

func (p *processor) updateToSent(ctx context.Context, jobID int64, providerMsgID string) error {
	job := model.NotificationJob{
		ID:            jobID,
		Status:        model.JobStatusSent,
		ProviderMsgID: &providerMsgID,
		UpdatedAt:     time.Now(),
	}

	err := p.jobRepo.UpdateTerminal(ctx, &job)
	if err == nil {
		return nil
	}

	if errors.Is(err, repository.ErrNoRowsAffected) {
		return ErrJobAlreadyProcessed
	}

	p.logger.Error("Failed to update job to SENT",
		zap.Error(err),
		zap.Int64("jobID", jobID))

	return ErrDatabase
}

func (p *processor) updateToFailed(ctx context.Context, jobID int64, reason string) error {
	job := model.NotificationJob{
		ID:        jobID,
		Status:    model.JobStatusFailed,
		Error:     &reason,
		UpdatedAt: time.Now(),
	}

	err := p.jobRepo.UpdateTerminal(ctx, &job)
	if err == nil {
		return nil
	}

	if errors.Is(err, repository.ErrNoRowsAffected) {
		p.logger.Info("Job already terminal, skipping failure update",
			zap.Int64("jobID", jobID))
		return ErrJobAlreadyProcessed
	}

	p.logger.Error("Failed to update job to FAILED",
		zap.Error(err),
		zap.Int64("jobID", jobID))

	return ErrDatabase
}
