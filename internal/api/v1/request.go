package v1

type CreateJobRequest struct {
	TenantID  string `json:"tenant_id"`
	ClientRef string `json:"client_ref"`
	Channel   string `json:"channel"`
	Type      string `json:"type"`
	Recipient string `json:"recipient"`
	Body      string `json:"body"`
}
