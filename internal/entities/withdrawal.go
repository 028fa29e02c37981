package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	WithdrawalStatusPending   = "pending"
	WithdrawalStatusApproved  = "approved"
	WithdrawalStatusRejected  = "rejected"
	WithdrawalStatusCompleted = "completed"
)

// WithdrawalRequest pairs 1:1 with a withdrawal Transaction. The balance is
// debited at request time; a rejection restores it.
type WithdrawalRequest struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	UserID        uuid.UUID       `json:"user_id" db:"user_id"`
	TransactionID uuid.UUID       `json:"transaction_id" db:"transaction_id"`
	Country       string          `json:"country" db:"country"`
	BankName      string          `json:"bank_name" db:"bank_name"`
	AccountName   string          `json:"account_name" db:"account_name"`
	AccountNumber string          `json:"account_number" db:"account_number"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	Status        string          `json:"status" db:"status"`
	AdminNotes    *string         `json:"admin_notes" db:"admin_notes"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}
