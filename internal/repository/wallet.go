package repository

import (
	"context"
	"errors"

	"github.com/groomly/pet-services/notifygateway/internal/model"
	"gorm.io/gorm"
)

var ErrWalletNotFound = errors.New("WALLET_NOT_FOUND")

type WalletRepository interface {
	FindByTenantChannel(ctx context.Context, tenantID string, channel model.Channel) (*model.CreditWallet, error)
	ConditionalDebit(ctx context.Context, tenantID string, channel model.Channel, amount int64) error
}

type Wallet struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &Wallet{db: db}
}

func (w *Wallet) FindByTenantChannel(ctx context.Context, tenantID string, channel model.Channel) (*model.CreditWallet, error) {
	var wallet model.CreditWallet

	db := GetTx(ctx, w.db)
	err := db.Where("tenant_id = ? AND channel = ?", tenantID, channel).First(&wallet).Error
	if err == nil {
		return &wallet, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrWalletNotFound
	}

	return nil, err
}

// ConditionalDebit decrements the balance only while enough credit remains.
// The balance guard lives in the WHERE clause so concurrent debits can never
// drive the balance negative; losing the race surfaces as ErrNoRowsAffected.
func (w *Wallet) ConditionalDebit(ctx context.Context, tenantID string, channel model.Channel, amount int64) error {
	db := GetTx(ctx, w.db)
	result := db.Model(&model.CreditWallet{}).
		Where("tenant_id = ? AND channel = ? AND balance >= ?", tenantID, channel, amount).
		Update("balance", gorm.Expr("balance - ?", amount))

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}
