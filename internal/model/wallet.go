package model

import "time"

type CreditWallet struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	TenantID  string    `gorm:"column:tenant_id;index:idx_tenant_channel,unique"`
	Channel   Channel   `gorm:"column:channel;index:idx_tenant_channel,unique"`
	Balance   int64     `gorm:"column:balance;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP"`
}

func (CreditWallet) TableName() string {
	return "credit_wallets"
}
