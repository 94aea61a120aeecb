package errors

import "errors"

var (
	ErrNotFound               = errors.New("not found")
	ErrInvalidChargeAmount    = errors.New("charge amount must be positive")
	ErrInvalidUseAmount       = errors.New("use amount must be positive")
	ErrBalanceCeilingExceeded = errors.New("balance ceiling exceeded")
	ErrInsufficientBalance    = errors.New("insufficient balance")
)
