package constants

const (
	ErrCodeJobNotFound         = "JOB_NOT_FOUND"
	ErrCodeWalletNotFound      = "WALLET_NOT_FOUND"
	ErrCodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	ErrCodeDuplicateJob        = "DUPLICATE_JOB"
	ErrCodeInternalError       = "INTERNAL_ERROR"
	ErrCodeInvalidRequestBody  = "INVALID_REQUEST_BODY"
)

const (
	ErrMsgJobNotFound         = "job not found"
	ErrMsgWalletNotFound      = "wallet not found"
	ErrMsgInsufficientBalance = "insufficient balance"
	ErrMsgDuplicateJob        = "duplicate job"
	ErrMsgInternalError       = "Internal server error"
	ErrMsgInvalidRequestBody  = "failed to parse request body"
)

var errorMessages = map[string]string{
	ErrCodeJobNotFound:         ErrMsgJobNotFound,
	ErrCodeWalletNotFound:      ErrMsgWalletNotFound,
	ErrCodeInsufficientBalance: ErrMsgInsufficientBalance,
	ErrCodeDuplicateJob:        ErrMsgDuplicateJob,
	ErrCodeInternalError:       ErrMsgInternalError,
	ErrCodeInvalidRequestBody:  ErrMsgInvalidRequestBody,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeInvalidRequestBody:
		return 400
	case ErrCodeJobNotFound, ErrCodeWalletNotFound:
		return 404
	case ErrCodeInsufficientBalance, ErrCodeDuplicateJob:
		return 409
	case ErrCodeInternalError:
		return 500
	default:
		return 500
	}
}
