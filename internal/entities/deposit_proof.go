package entities

import (
	"time"

	"github.com/google/uuid"
)

// DepositProof holds the bank-transfer evidence submitted with a deposit.
type DepositProof struct {
	ID            uuid.UUID `json:"id" db:"id"`
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	TransactionID uuid.UUID `json:"transaction_id" db:"transaction_id"`
	BankName      string    `json:"bank_name" db:"bank_name"`
	ProofImageURL *string   `json:"proof_image_url" db:"proof_image_url"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
