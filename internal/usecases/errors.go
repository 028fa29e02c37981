package usecases

import "errors"

// Validation errors: malformed input rejected before any write.
var (
	ErrUsernameRequired     = errors.New("username is required")
	ErrInvitationRequired   = errors.New("invitation code is required")
	ErrInvalidInvitation    = errors.New("invalid invitation code")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrAmountBelowMinimum   = errors.New("amount is below the minimum withdrawal")
	ErrAmountExceedsBalance = errors.New("amount exceeds current balance")
	ErrMissingBankDetails   = errors.New("bank account details are incomplete")
)

// Conflict errors: an idempotency or sequence precondition was violated.
var (
	ErrOrderNotEligible    = errors.New("order is not next in sequence")
	ErrOrderNotPending     = errors.New("order is not pending")
	ErrAlreadySettled      = errors.New("commission already credited for this order")
	ErrWithdrawalLocked    = errors.New("withdrawals are locked until all orders are completed")
	ErrWithdrawalResolved  = errors.New("withdrawal request already resolved")
	ErrTransactionResolved = errors.New("transaction already resolved")
)
