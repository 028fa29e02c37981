package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/finledger/commission-app/backend/internal/entities"
)

func newWithdrawalService(store *memoryStore) *WithdrawalService {
	return NewWithdrawalService(testLogger(), store, store, store, store, store, passthroughTransactor{})
}

func TestCanWithdraw(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name   string
		orders []entities.Order
		want   bool
	}{
		{"no orders", nil, false},
		{"some pending", []entities.Order{
			makeOrder(1, entities.OrderStatusCompleted, now),
			makeOrder(2, entities.OrderStatusPending, now),
		}, false},
		{"cancelled blocks", []entities.Order{
			makeOrder(1, entities.OrderStatusCompleted, now),
			makeOrder(2, entities.OrderStatusCancelled, now),
		}, false},
		{"all completed", []entities.Order{
			makeOrder(1, entities.OrderStatusCompleted, now),
			makeOrder(2, entities.OrderStatusCompleted, now),
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CanWithdraw(tt.orders))
		})
	}
}

func TestGateMessage(t *testing.T) {
	now := time.Now()

	require.Equal(t, "Complete your first order to unlock withdrawals", GateMessage(nil))

	orders := []entities.Order{
		makeOrder(1, entities.OrderStatusCompleted, now),
		makeOrder(2, entities.OrderStatusCompleted, now),
		makeOrder(3, entities.OrderStatusPending, now),
	}
	require.Equal(t, "Complete all orders (2/3) to unlock withdrawals", GateMessage(orders))

	orders[2].Status = entities.OrderStatusCompleted
	require.Empty(t, GateMessage(orders))
}

func TestRequestWithdrawal(t *testing.T) {
	ctx := context.Background()

	setup := func(balance string) (*memoryStore, *entities.User) {
		store := newMemoryStore()
		user := store.seedUser(decimal.RequireFromString(balance))
		store.seedOrder(user.ID, 1, "100", entities.OrderStatusCompleted)
		return store, user
	}

	submission := func(user *entities.User, amount string) WithdrawalSubmission {
		return WithdrawalSubmission{
			UserID:        user.ID,
			Amount:        decimal.RequireFromString(amount),
			Country:       "Philippines",
			BankName:      "BDO",
			AccountName:   "Juan dela Cruz",
			AccountNumber: "001234567890",
		}
	}

	t.Run("debits balance and records pending request", func(t *testing.T) {
		store, user := setup("300")

		request, err := newWithdrawalService(store).RequestWithdrawal(ctx, submission(user, "100"))
		require.NoError(t, err)
		require.Equal(t, entities.WithdrawalStatusPending, request.Status)
		require.NotEqual(t, request.TransactionID, request.ID)

		updated, err := store.FindUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.True(t, updated.Balance.Equal(decimal.RequireFromString("200")), updated.Balance.String())

		transactions, err := store.FindUserTransactions(ctx, user.ID, entities.TransactionFilter{})
		require.NoError(t, err)
		require.Len(t, transactions, 1)
		require.Equal(t, entities.TransactionTypeWithdrawal, transactions[0].Type)
		require.Equal(t, entities.TransactionStatusPending, transactions[0].Status)
	})

	t.Run("rejects amount above balance before any write", func(t *testing.T) {
		store, user := setup("300")

		_, err := newWithdrawalService(store).RequestWithdrawal(ctx, submission(user, "500"))
		require.ErrorIs(t, err, ErrAmountExceedsBalance)

		updated, err := store.FindUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.True(t, updated.Balance.Equal(decimal.RequireFromString("300")))
		require.Empty(t, store.withdrawals)
		require.Empty(t, store.transactions)
	})

	t.Run("rejects amount below minimum", func(t *testing.T) {
		store, user := setup("300")

		_, err := newWithdrawalService(store).RequestWithdrawal(ctx, submission(user, "5"))
		require.ErrorIs(t, err, ErrAmountBelowMinimum)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		store, user := setup("300")

		_, err := newWithdrawalService(store).RequestWithdrawal(ctx, submission(user, "0"))
		require.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("rejects missing bank details", func(t *testing.T) {
		store, user := setup("300")

		req := submission(user, "100")
		req.AccountNumber = "  "
		_, err := newWithdrawalService(store).RequestWithdrawal(ctx, req)
		require.ErrorIs(t, err, ErrMissingBankDetails)
	})

	t.Run("locked while orders remain", func(t *testing.T) {
		store := newMemoryStore()
		user := store.seedUser(decimal.RequireFromString("300"))
		store.seedOrder(user.ID, 1, "100", entities.OrderStatusCompleted)
		store.seedOrder(user.ID, 2, "100", entities.OrderStatusPending)

		_, err := newWithdrawalService(store).RequestWithdrawal(ctx, submission(user, "100"))
		require.ErrorIs(t, err, ErrWithdrawalLocked)
	})

	t.Run("saved bank account as destination", func(t *testing.T) {
		store, user := setup("300")
		account := &entities.BankAccount{
			UserID:        user.ID,
			Country:       "Philippines",
			BankName:      "UnionBank",
			AccountName:   "Juan dela Cruz",
			AccountNumber: "009988776655",
		}
		require.NoError(t, store.InsertBankAccount(ctx, account))

		req := WithdrawalSubmission{
			UserID:         user.ID,
			Amount:         decimal.RequireFromString("50"),
			SavedAccountID: &account.ID,
		}

		request, err := newWithdrawalService(store).RequestWithdrawal(ctx, req)
		require.NoError(t, err)
		require.Equal(t, "UnionBank", request.BankName)
		require.Equal(t, "009988776655", request.AccountNumber)
	})
}

func TestWithdrawalResolution(t *testing.T) {
	ctx := context.Background()

	setup := func() (*memoryStore, *WithdrawalService, *entities.WithdrawalRequest) {
		store := newMemoryStore()
		user := store.seedUser(decimal.RequireFromString("300"))
		store.seedOrder(user.ID, 1, "100", entities.OrderStatusCompleted)

		service := newWithdrawalService(store)
		request, err := service.RequestWithdrawal(ctx, WithdrawalSubmission{
			UserID:        user.ID,
			Amount:        decimal.RequireFromString("100"),
			Country:       "Philippines",
			BankName:      "BDO",
			AccountName:   "Juan dela Cruz",
			AccountNumber: "001234567890",
		})
		require.NoError(t, err)
		return store, service, request
	}

	t.Run("approve completes the transaction without crediting back", func(t *testing.T) {
		store, service, request := setup()

		require.NoError(t, service.Approve(ctx, request.ID, "paid out"))

		resolved, err := store.FindWithdrawalRequestByID(ctx, request.ID)
		require.NoError(t, err)
		require.Equal(t, entities.WithdrawalStatusApproved, resolved.Status)

		transaction, err := store.FindTransactionByID(ctx, request.TransactionID)
		require.NoError(t, err)
		require.Equal(t, entities.TransactionStatusCompleted, transaction.Status)

		user, err := store.FindUserByID(ctx, request.UserID)
		require.NoError(t, err)
		require.True(t, user.Balance.Equal(decimal.RequireFromString("200")), user.Balance.String())
	})

	t.Run("reject restores the debited amount", func(t *testing.T) {
		store, service, request := setup()

		require.NoError(t, service.Reject(ctx, request.ID, "details mismatch"))

		resolved, err := store.FindWithdrawalRequestByID(ctx, request.ID)
		require.NoError(t, err)
		require.Equal(t, entities.WithdrawalStatusRejected, resolved.Status)
		require.NotNil(t, resolved.AdminNotes)

		transaction, err := store.FindTransactionByID(ctx, request.TransactionID)
		require.NoError(t, err)
		require.Equal(t, entities.TransactionStatusFailed, transaction.Status)

		user, err := store.FindUserByID(ctx, request.UserID)
		require.NoError(t, err)
		require.True(t, user.Balance.Equal(decimal.RequireFromString("300")), user.Balance.String())
	})

	t.Run("double resolution conflicts", func(t *testing.T) {
		_, service, request := setup()

		require.NoError(t, service.Approve(ctx, request.ID, ""))
		require.ErrorIs(t, service.Reject(ctx, request.ID, ""), ErrWithdrawalResolved)
	})
}
