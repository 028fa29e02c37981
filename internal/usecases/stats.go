package usecases

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finledger/commission-app/backend/internal/entities"
)

// AccountStats are the derived accounting totals for a user. Only completed
// transactions are counted; actual deposits and commission credits are split
// so the UI can show where the money came from.
type AccountStats struct {
	TotalDeposits       decimal.Decimal `json:"total_deposits"`
	TotalActualDeposits decimal.Decimal `json:"total_actual_deposits"`
	TotalCommissions    decimal.Decimal `json:"total_commissions"`
	TotalWithdrawals    decimal.Decimal `json:"total_withdrawals"`
	MonthActualDeposits decimal.Decimal `json:"month_actual_deposits"`
	MonthCommissions    decimal.Decimal `json:"month_commissions"`
	MonthWithdrawals    decimal.Decimal `json:"month_withdrawals"`
	NetBalance          decimal.Decimal `json:"net_balance"`
	TotalTransactions   int             `json:"total_transactions"`
}

func sameMonth(t, now time.Time) bool {
	t = t.In(now.Location())
	return t.Year() == now.Year() && t.Month() == now.Month()
}

// ComputeAccountStats folds the transaction list into display totals. It is
// stateless and recomputed from full state on every ledger change; change
// events are never applied as increments.
func ComputeAccountStats(transactions []entities.Transaction, now time.Time) AccountStats {
	stats := AccountStats{TotalTransactions: len(transactions)}

	for _, t := range transactions {
		if t.Status != entities.TransactionStatusCompleted {
			continue
		}

		switch {
		case t.IsCommission():
			stats.TotalCommissions = stats.TotalCommissions.Add(t.Amount)
			if sameMonth(t.CreatedAt, now) {
				stats.MonthCommissions = stats.MonthCommissions.Add(t.Amount)
			}
		case t.Type == entities.TransactionTypeDeposit:
			stats.TotalActualDeposits = stats.TotalActualDeposits.Add(t.Amount)
			if sameMonth(t.CreatedAt, now) {
				stats.MonthActualDeposits = stats.MonthActualDeposits.Add(t.Amount)
			}
		case t.Type == entities.TransactionTypeWithdrawal:
			stats.TotalWithdrawals = stats.TotalWithdrawals.Add(t.Amount)
			if sameMonth(t.CreatedAt, now) {
				stats.MonthWithdrawals = stats.MonthWithdrawals.Add(t.Amount)
			}
		}
	}

	stats.TotalDeposits = stats.TotalActualDeposits.Add(stats.TotalCommissions)
	stats.NetBalance = stats.TotalDeposits.Sub(stats.TotalWithdrawals)

	return stats
}

// CommissionEarnedOn sums the commissions of orders completed on now's
// calendar day.
func CommissionEarnedOn(orders []entities.Order, now time.Time) decimal.Decimal {
	total := decimal.Zero

	for _, order := range orders {
		if order.Status != entities.OrderStatusCompleted {
			continue
		}
		updated := order.UpdatedAt.In(now.Location())
		if updated.Year() == now.Year() && updated.YearDay() == now.YearDay() {
			total = total.Add(order.CommissionDue())
		}
	}

	return total
}
