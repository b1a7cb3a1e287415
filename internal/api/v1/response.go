package v1

import "github.com/groomly/pet-services/notifygateway/internal/service"

type CreateJobResponse struct {
	Status string `json:"status"`
	JobID  int64  `json:"job_id"`
}

type ReconciliationResponse struct {
	Jobs  []service.JobView `json:"jobs"`
	Count int               `json:"count"`
}
