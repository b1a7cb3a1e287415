package msgprovider

import "errors"

const (
	ErrorCodeServerError      = "SERVER_ERROR"      // For 5xx HTTP status
	ErrorCodeTimeout          = "TIMEOUT"           // For context timeout
	ErrorCodeInvalidRecipient = "INVALID_RECIPIENT" // For 400/validation errors
	ErrorCodeNetworkError     = "NETWORK_ERROR"     // For connection failures
)

// Error pairs a stable code with the original failure detail. The code drives
// retry decisions; the detail is what lands in the job record, verbatim.
type Error struct {
	Code   string
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Code
	}
	return e.Code + ": " + e.Detail
}

func NewError(code string, detail string) error {
	return &Error{Code: code, Detail: detail}
}

// CodeOf returns the provider error code, or "" for foreign errors.
func CodeOf(err error) string {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}
