package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TransactionTypeDeposit    = "deposit"
	TransactionTypeWithdrawal = "withdrawal"

	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"

	// PaymentMethodCommission marks a deposit row as an order-settlement
	// credit rather than an actual bank transfer.
	PaymentMethodCommission = "commission"
)

// Transaction is an append-only ledger entry. ReferenceID is the unique
// correlation token; for commission credits it is "COMM-<order id>".
type Transaction struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	UserID        uuid.UUID       `json:"user_id" db:"user_id"`
	Type          string          `json:"type" db:"type"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	Status        string          `json:"status" db:"status"`
	PaymentMethod *string         `json:"payment_method" db:"payment_method"`
	ReferenceID   string          `json:"reference_id" db:"reference_id"`
	Notes         *string         `json:"notes" db:"notes"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// IsCommission reports whether the transaction is an order-settlement credit.
func (t Transaction) IsCommission() bool {
	return t.Type == TransactionTypeDeposit &&
		t.PaymentMethod != nil && *t.PaymentMethod == PaymentMethodCommission
}
