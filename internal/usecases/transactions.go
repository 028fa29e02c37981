package usecases

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/commission-app/backend/internal/entities"
)

// TransactionService exposes the transaction history and the stats derived
// from it.
type TransactionService struct {
	logger       *slog.Logger
	transactions TransactionsRepository
	orders       OrdersRepository
}

func NewTransactionService(logger *slog.Logger, transactions TransactionsRepository, orders OrdersRepository) *TransactionService {
	return &TransactionService{logger: logger, transactions: transactions, orders: orders}
}

func (s *TransactionService) GetUserTransactions(ctx context.Context, userID uuid.UUID, filter entities.TransactionFilter) ([]entities.Transaction, error) {
	return s.transactions.FindUserTransactions(ctx, userID, filter)
}

// AccountStats recomputes the accounting totals from the full transaction
// list. Callers re-invoke this on every ledger change.
func (s *TransactionService) AccountStats(ctx context.Context, userID uuid.UUID) (*AccountStats, error) {
	transactions, err := s.transactions.FindUserTransactions(ctx, userID, entities.TransactionFilter{})
	if err != nil {
		return nil, err
	}

	stats := ComputeAccountStats(transactions, time.Now())
	return &stats, nil
}

// TodaysIncome is the commission earned from orders completed today.
func (s *TransactionService) TodaysIncome(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	orders, err := s.orders.FindUserOrders(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	return CommissionEarnedOn(orders, time.Now()), nil
}
