package service

type CreateJobResponse struct {
	JobID int64 `json:"job_id"`
}

type GetJobsResponse struct {
	Jobs  []JobView `json:"jobs"`
	Total int       `json:"total"`
}

type JobView struct {
	JobID         int64  `json:"job_id"`
	ClientRef     string `json:"client_ref"`
	TenantID      string `json:"tenant_id"`
	Channel       string `json:"channel"`
	Type          string `json:"type"`
	Status        string `json:"status"`
	Recipient     string `json:"recipient"`
	ProviderMsgID string `json:"provider_msg_id,omitempty"`
	Error         string `json:"error,omitempty"`
	CreatedAt     string `json:"created_at"`
}
