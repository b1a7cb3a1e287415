package repository

import (
	"context"

	"github.com/groomly/pet-services/notifygateway/internal/model"
	"gorm.io/gorm"
)

type CreditTransactionRepository interface {
	Create(ctx context.Context, tx *model.CreditTransaction) error
}

type CreditTransaction struct {
	db *gorm.DB
}

func NewCreditTransactionRepository(db *gorm.DB) CreditTransactionRepository {
	return &CreditTransaction{db: db}
}

func (r *CreditTransaction) Create(ctx context.Context, tx *model.CreditTransaction) error {
	db := GetTx(ctx, r.db)
	return db.Create(tx).Error
}
