package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/commission-app/backend/internal/entities"
	"github.com/finledger/commission-app/backend/internal/usecases"
)

// OrderService defines the order sequencing and activation operations.
type OrderService interface {
	GetUserOrders(ctx context.Context, userID uuid.UUID) ([]entities.Order, error)
	SequencerView(ctx context.Context, userID uuid.UUID) (*usecases.SequencerView, error)
	AssignOrder(ctx context.Context, order *entities.Order) error
	Activate(ctx context.Context, userID, orderID uuid.UUID) error
}

// SettlementService finalizes pending orders and credits commissions.
type SettlementService interface {
	Settle(ctx context.Context, userID, orderID uuid.UUID) (*usecases.SettlementResult, error)
}

// WithdrawalService covers eligibility, submission and admin resolution.
type WithdrawalService interface {
	Eligibility(ctx context.Context, userID uuid.UUID) (*usecases.WithdrawalEligibility, error)
	RequestWithdrawal(ctx context.Context, req usecases.WithdrawalSubmission) (*entities.WithdrawalRequest, error)
	GetUserWithdrawalRequests(ctx context.Context, userID uuid.UUID) ([]entities.WithdrawalRequest, error)
	Approve(ctx context.Context, requestID uuid.UUID, adminNotes string) error
	Reject(ctx context.Context, requestID uuid.UUID, adminNotes string) error
}

// DepositService handles manual bank-transfer deposits.
type DepositService interface {
	SubmitDeposit(ctx context.Context, req usecases.DepositSubmission) (*entities.Transaction, error)
	ConfirmDeposit(ctx context.Context, transactionID uuid.UUID) error
}

// TransactionService exposes the transaction history and derived stats.
type TransactionService interface {
	GetUserTransactions(ctx context.Context, userID uuid.UUID, filter entities.TransactionFilter) ([]entities.Transaction, error)
	AccountStats(ctx context.Context, userID uuid.UUID) (*usecases.AccountStats, error)
	TodaysIncome(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
}

// RegistrationService creates accounts from invitation codes.
type RegistrationService interface {
	Register(ctx context.Context, req usecases.RegistrationRequest) (*entities.User, error)
}

// UserService reads account state.
type UserService interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*entities.User, error)
}

// BankAccountService manages saved withdrawal destinations.
type BankAccountService interface {
	GetUserBankAccounts(ctx context.Context, userID uuid.UUID) ([]entities.BankAccount, error)
	AddBankAccount(ctx context.Context, account *entities.BankAccount) error
}
