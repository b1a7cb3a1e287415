package model

import "time"

const (
	TransactionTypeConsume = "CONSUME"
	TransactionTypeTopup   = "TOPUP"
	TransactionTypeAdjust  = "ADJUST"
)

// CreditTransaction rows are append-only; every field is write-once.
type CreditTransaction struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;<-:create"`
	TenantID  string    `gorm:"column:tenant_id;not null;<-:create"`
	Channel   Channel   `gorm:"column:channel;not null;<-:create"`
	WalletID  *int64    `gorm:"column:wallet_id;<-:create"`
	JobID     *int64    `gorm:"column:job_id;index;<-:create"`
	Type      string    `gorm:"type:enum('CONSUME','TOPUP','ADJUST');not null;<-:create"`
	Amount    int64     `gorm:"column:amount;not null;<-:create"`
	Reason    string    `gorm:"type:text;<-:create"`
	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP"`
}

func (CreditTransaction) TableName() string {
	return "credit_transactions"
}
