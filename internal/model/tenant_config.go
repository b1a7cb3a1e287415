package model

import "time"

// TenantNotificationConfig is owned by tenant settings; this service only reads it.
type TenantNotificationConfig struct {
	TenantID        string    `gorm:"primaryKey;column:tenant_id;type:char(36)"`
	ReminderEnabled bool      `gorm:"column:reminder_enabled;not null;default:true"`
	UpdatedAt       time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP"`
}

func (TenantNotificationConfig) TableName() string {
	return "tenant_notification_configs"
}
