package service

import (
	"github.com/groomly/pet-services/notifygateway/internal/repository"
	"go.uber.org/zap"
)

type ReconciliationService interface {
	FindUndebitedSent(limit int) ([]JobView, error)
}

type reconciliation struct {
	jobRepo repository.JobRepository
	logger  *zap.Logger
}

func NewReconciliationService(jobRepo repository.JobRepository, logger *zap.Logger) ReconciliationService {
	return &reconciliation{jobRepo: jobRepo, logger: logger}
}

// FindUndebitedSent surfaces jobs the provider accepted but the ledger never
// charged for. A non-empty result means an operator owes someone a debit.
func (r *reconciliation) FindUndebitedSent(limit int) ([]JobView, error) {
	jobs, err := r.jobRepo.FindSentWithoutConsume(limit)
	if err != nil {
		r.logger.Error("Failed to query undebited sent jobs", zap.Error(err))
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	views := make([]JobView, 0, len(jobs))
	for i := range jobs {
		views = append(views, toJobView(&jobs[i]))
	}

	return views, nil
}
