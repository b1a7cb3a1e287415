package service

import "github.com/groomly/pet-services/notifygateway/internal/model"

type CreateJobCommand struct {
	TenantID  string
	ClientRef string
	Channel   model.Channel
	Type      model.JobType
	Recipient string
	Body      string
}

type DispatchJobCommand struct {
	JobID    int64         `json:"job_id"`
	TenantID string        `json:"tenant_id"`
	Channel  model.Channel `json:"channel"`
}

type DebitCommand struct {
	TenantID string
	Channel  model.Channel
	JobID    int64
	Amount   int64
	Reason   string
}

type GetJobsQuery struct {
	TenantID string
	Limit    int
	Offset   int
}
