package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finledger/commission-app/backend/internal/entities"
	"github.com/finledger/commission-app/backend/internal/usecases/repository"
)

type TransactionsRepository interface {
	FindUserTransactions(ctx context.Context, userID uuid.UUID, filter entities.TransactionFilter) ([]entities.Transaction, error)
	FindTransactionByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error)
	InsertTransaction(ctx context.Context, t *entities.Transaction) error
	UpdateTransactionStatus(ctx context.Context, id uuid.UUID, status string) (bool, error)
}

type UsersRepository interface {
	FindUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	FindUserByReferralCode(ctx context.Context, code string) (*entities.User, error)
	InsertUser(ctx context.Context, user *entities.User) error
	CreditBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error)
	DebitBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
}

// SettlementResult reports what a settlement call actually did.
type SettlementResult struct {
	OrderID            uuid.UUID       `json:"order_id"`
	CommissionCredited decimal.Decimal `json:"commission_credited"`
	PreviousBalance    decimal.Decimal `json:"previous_balance"`
	NewBalance         decimal.Decimal `json:"new_balance"`
}

// SettlementService finalizes a pending order and credits its commission
// exactly once. All writes happen inside one store transaction; the unique
// constraint on reference_id is the idempotency check.
type SettlementService struct {
	logger       *slog.Logger
	orders       OrdersRepository
	transactions TransactionsRepository
	users        UsersRepository
	transactor   Transactor
}

func NewSettlementService(
	logger *slog.Logger,
	orders OrdersRepository,
	transactions TransactionsRepository,
	users UsersRepository,
	transactor Transactor,
) *SettlementService {
	return &SettlementService{
		logger:       logger,
		orders:       orders,
		transactions: transactions,
		users:        users,
		transactor:   transactor,
	}
}

func (s *SettlementService) Settle(ctx context.Context, userID, orderID uuid.UUID) (*SettlementResult, error) {
	var result *SettlementResult

	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orders.FindOrderByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order.UserID != userID {
			return repository.ErrOrderNotFound
		}

		switch order.Status {
		case entities.OrderStatusCancelled:
			return ErrOrderNotPending
		case entities.OrderStatusCompleted:
			// Already settled earlier: report zero credit, balance untouched.
			user, err := s.users.FindUserByID(ctx, userID)
			if err != nil {
				return err
			}
			result = &SettlementResult{
				OrderID:            orderID,
				CommissionCredited: decimal.Zero,
				PreviousBalance:    user.Balance,
				NewBalance:         user.Balance,
			}
			return nil
		}

		commission := order.CommissionDue()

		// Insert before flipping the order so a concurrent settlement loses
		// on the reference_id constraint instead of double-crediting.
		method := entities.PaymentMethodCommission
		notes := fmt.Sprintf("Commission from order %s", order.OrderType)
		err = s.transactions.InsertTransaction(ctx, &entities.Transaction{
			UserID:        userID,
			Type:          entities.TransactionTypeDeposit,
			Amount:        commission,
			Status:        entities.TransactionStatusCompleted,
			PaymentMethod: &method,
			ReferenceID:   commissionReferenceID(orderID),
			Notes:         &notes,
		})
		if errors.Is(err, repository.ErrDuplicateReference) {
			return ErrAlreadySettled
		}
		if err != nil {
			return err
		}

		completed, err := s.orders.CompletePendingOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if !completed {
			return ErrOrderNotPending
		}

		newBalance, err := s.users.CreditBalance(ctx, userID, commission)
		if err != nil {
			return err
		}

		result = &SettlementResult{
			OrderID:            orderID,
			CommissionCredited: commission,
			PreviousBalance:    newBalance.Sub(commission),
			NewBalance:         newBalance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order settled",
		"user_id", userID,
		"order_id", orderID,
		"commission", result.CommissionCredited.String(),
		"new_balance", result.NewBalance.String())

	return result, nil
}
