package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User is an account holder. Balance only moves through completed deposits,
// commission credits and withdrawals.
type User struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	Username       string          `json:"username" db:"username"`
	Phone          string          `json:"phone" db:"phone"`
	Balance        decimal.Decimal `json:"balance" db:"balance"`
	Country        string          `json:"country" db:"country"`
	Currency       string          `json:"currency" db:"currency"`
	CurrencySymbol string          `json:"currencySymbol" db:"currency_symbol"`
	IsVip          bool            `json:"isVip" db:"is_vip"`
	ReferralCode   string          `json:"referralCode" db:"referral_code"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}
