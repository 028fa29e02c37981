package repository

import "errors"

// Expected outcomes surfaced to callers. Anything else coming out of a
// repository is a store failure wrapped with context.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrWithdrawalNotFound = errors.New("withdrawal request not found")
	ErrBankAccountNotFound = errors.New("bank account not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrDuplicateReference is the unique-constraint violation on
	// transactions.reference_id. Settlement treats it as the idempotency
	// signal: a concurrent caller already credited this commission.
	ErrDuplicateReference = errors.New("reference id already recorded")

	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrDuplicateUsername   = errors.New("username already taken")
)
