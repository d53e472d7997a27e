package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrNotWithdrawable    = errors.New("order is not withdrawable")
	ErrSignatureDeclined  = errors.New("wallet declined to sign")
	ErrMissingField       = errors.New("required field is missing")
	ErrMembershipRequired = errors.New("membership token required")
	ErrInvalidTxHash      = errors.New("invalid transaction hash")
	ErrNoCollateral       = errors.New("wallet has no collateral")
	ErrInsufficientFunds  = errors.New("insufficient funds")
)
