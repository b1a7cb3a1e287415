package service

import "errors"

const (
	ErrCodeDatabase = "DATABASE_ERROR"
)

var (
	ErrJobNotFound         = errors.New("JOB_NOT_FOUND")
	ErrJobAlreadyProcessed = errors.New("JOB_ALREADY_PROCESSED")
	ErrWalletNotFound      = errors.New("WALLET_NOT_FOUND")
	ErrInsufficientBalance = errors.New("INSUFFICIENT_BALANCE")
	ErrUnknownJobStatus    = errors.New("UNKNOWN_JOB_STATUS")
	ErrDatabase            = errors.New("DATABASE_ERROR")
)

type Error struct {
	Code  string
	Cause error
}

func NewServiceError(code string, cause error) error {
	return Error{Code: code, Cause: cause}
}

func (e Error) Error() string {
	return e.Cause.Error()
}

func (e Error) Unwrap() error {
	return e.Cause
}
