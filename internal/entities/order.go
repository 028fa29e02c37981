package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// commissionRate is the fixed share of the order amount credited on
// settlement when no explicit commission is stored.
var commissionRate = decimal.New(55, -2)

// Order is a unit of work in a user's personal sequence. Orders form a strict
// total order by OrderNumber; an order may only be worked on once every
// earlier order is completed.
type Order struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	UserID      uuid.UUID        `json:"user_id" db:"user_id"`
	OrderNumber int              `json:"order_number" db:"order_number"`
	OrderType   string           `json:"order_type" db:"order_type"`
	Amount      decimal.Decimal  `json:"amount" db:"amount"`
	Commission  *decimal.Decimal `json:"commission" db:"commission"`
	Status      string           `json:"status" db:"status"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at" db:"updated_at"`
}

// CommissionDue returns the stored commission when present, otherwise the
// fixed 55% of the order amount.
func (o Order) CommissionDue() decimal.Decimal {
	if o.Commission != nil {
		return *o.Commission
	}
	return o.Amount.Mul(commissionRate)
}
