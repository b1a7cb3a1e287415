package repository

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/groomly/pet-services/notifygateway/internal/model"
	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("JOB_NOT_FOUND")
var ErrJobDuplicate = errors.New("JOB_DUPLICATE")
var ErrNoRowsAffected = errors.New("NO_ROWS_AFFECTED")

type JobRepository interface {
	Create(ctx context.Context, job *model.NotificationJob) error
	GetByID(id int64) (*model.NotificationJob, error)
	GetByTenantID(tenantID string, limit, offset int) ([]model.NotificationJob, error)
	CountByTenantID(tenantID string) (int, error)
	FindScheduled(limit int) ([]model.NotificationJob, error)
	Claim(ctx context.Context, jobID int64, expiresAt time.Time) error
	ReleaseExpiredClaims(ctx context.Context, now time.Time) (int64, error)
	UpdateTerminal(ctx context.Context, job *model.NotificationJob) error
	FindSentWithoutConsume(limit int) ([]model.NotificationJob, error)
}

type Job struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &Job{db: db}
}

func (j *Job) Create(ctx context.Context, job *model.NotificationJob) error {
	db := GetTx(ctx, j.db)
	err := db.Create(job).Error
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrJobDuplicate
	}

	return err
}

func (j *Job) GetByID(id int64) (*model.NotificationJob, error) {
	var job model.NotificationJob

	err := j.db.Where("id = ?", id).First(&job).Error
	if err == nil {
		return &job, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrJobNotFound
	}

	return nil, err
}

func (j *Job) GetByTenantID(tenantID string, limit, offset int) ([]model.NotificationJob, error) {
	var jobs []model.NotificationJob

	err := j.db.Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}

	return jobs, nil
}

func (j *Job) CountByTenantID(tenantID string) (int, error) {
	var count int64

	err := j.db.Model(&model.NotificationJob{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error

	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// FindScheduled returns pending jobs oldest-first, ties broken by id so the
// order is stable across pollers.
func (j *Job) FindScheduled(limit int) ([]model.NotificationJob, error) {
	var jobs []model.NotificationJob

	err := j.db.Where("status = ?", model.JobStatusScheduled).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}

	return jobs, nil
}

// Claim flips SCHEDULED to CLAIMED with a lease. The status guard makes the
// claim atomic: only one poller wins when several race on the same job.
func (j *Job) Claim(ctx context.Context, jobID int64, expiresAt time.Time) error {
	db := GetTx(ctx, j.db)
	result := db.Model(&model.NotificationJob{}).
		Where("id = ? AND status = ?", jobID, model.JobStatusScheduled).
		Updates(map[string]interface{}{
			"status":           model.JobStatusClaimed,
			"claim_expires_at": expiresAt,
			"updated_at":       time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}

func (j *Job) ReleaseExpiredClaims(ctx context.Context, now time.Time) (int64, error) {
	db := GetTx(ctx, j.db)
	result := db.Model(&model.NotificationJob{}).
		Where("status = ? AND claim_expires_at < ?", model.JobStatusClaimed, now).
		Updates(map[string]interface{}{
			"status":           model.JobStatusScheduled,
			"claim_expires_at": nil,
			"updated_at":       time.Now(),
		})

	return result.RowsAffected, result.Error
}

// UpdateTerminal moves a job to SENT or FAILED. Terminal states are never
// revisited, so the guard only accepts jobs still in SCHEDULED or CLAIMED.
func (j *Job) UpdateTerminal(ctx context.Context, job *model.NotificationJob) error {
	db := GetTx(ctx, j.db)
	result := db.Model(job).
		Where("id = ? AND status IN (?, ?)", job.ID, model.JobStatusScheduled, model.JobStatusClaimed).
		Updates(job)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}

// FindSentWithoutConsume lists jobs the provider accepted but the ledger never
// debited. Anything here needs manual reconciliation.
func (j *Job) FindSentWithoutConsume(limit int) ([]model.NotificationJob, error) {
	var jobs []model.NotificationJob

	err := j.db.
		Joins("LEFT JOIN credit_transactions ct ON ct.job_id = notification_jobs.id AND ct.type = ? AND ct.amount > 0",
			model.TransactionTypeConsume).
		Where("notification_jobs.status = ? AND ct.id IS NULL", model.JobStatusSent).
		Order("notification_jobs.created_at ASC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}

	return jobs, nil
}
