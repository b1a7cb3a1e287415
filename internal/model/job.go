package model

import "time"

type JobStatus string

const (
	JobStatusScheduled JobStatus = "SCHEDULED"
	JobStatusClaimed   JobStatus = "CLAIMED"
	JobStatusSent      JobStatus = "SENT"
	JobStatusFailed    JobStatus = "FAILED"
)

type Channel string

const (
	ChannelSMS      Channel = "SMS"
	ChannelWhatsApp Channel = "WHATSAPP"
)

type JobType string

const (
	JobTypeReminder JobType = "REMINDER"
	JobTypeOther    JobType = "OTHER"
)

type NotificationJob struct {
	ID             int64      `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	TenantID       string     `gorm:"column:tenant_id;index:idx_tenant_client_ref,unique"`
	ClientRef      string     `gorm:"column:client_ref;index:idx_tenant_client_ref,unique"`
	Channel        Channel    `gorm:"column:channel"`
	Type           JobType    `gorm:"column:type"`
	Status         JobStatus  `gorm:"column:status;index:idx_status_created"`
	Recipient      string     `gorm:"column:recipient"`
	Body           string     `gorm:"column:body"`
	ProviderMsgID  *string    `gorm:"column:provider_msg_id"`
	Error          *string    `gorm:"column:error"`
	ClaimExpiresAt *time.Time `gorm:"column:claim_expires_at"`
	CreatedAt      time.Time  `gorm:"column:created_at;index:idx_status_created"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (NotificationJob) TableName() string {
	return "notification_jobs"
}
