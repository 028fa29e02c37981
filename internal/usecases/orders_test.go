package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/finledger/commission-app/backend/internal/entities"
)

func newOrderService(store *memoryStore) *OrderService {
	return NewOrderService(testLogger(), store)
}

func TestActivate(t *testing.T) {
	ctx := context.Background()

	t.Run("activates the next eligible order", func(t *testing.T) {
		store := newMemoryStore()
		user := store.seedUser(decimal.Zero)
		store.seedOrder(user.ID, 1, "100", entities.OrderStatusCompleted)
		order := store.seedOrder(user.ID, 2, "100", entities.OrderStatusPending)
		before := store.orders[order.ID].UpdatedAt

		time.Sleep(time.Millisecond)
		require.NoError(t, newOrderService(store).Activate(ctx, user.ID, order.ID))
		require.True(t, store.orders[order.ID].UpdatedAt.After(before))
	})

	t.Run("rejects an out-of-sequence order", func(t *testing.T) {
		store := newMemoryStore()
		user := store.seedUser(decimal.Zero)
		store.seedOrder(user.ID, 1, "100", entities.OrderStatusPending)
		later := store.seedOrder(user.ID, 2, "100", entities.OrderStatusPending)

		err := newOrderService(store).Activate(ctx, user.ID, later.ID)
		require.ErrorIs(t, err, ErrOrderNotEligible)
	})

	t.Run("rejects when sequence is frozen by a cancellation", func(t *testing.T) {
		store := newMemoryStore()
		user := store.seedUser(decimal.Zero)
		store.seedOrder(user.ID, 1, "100", entities.OrderStatusCancelled)
		blocked := store.seedOrder(user.ID, 2, "100", entities.OrderStatusPending)

		err := newOrderService(store).Activate(ctx, user.ID, blocked.ID)
		require.ErrorIs(t, err, ErrOrderNotEligible)
	})
}

func TestAssignOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("appends to the end of the sequence", func(t *testing.T) {
		store := newMemoryStore()
		user := store.seedUser(decimal.Zero)
		store.seedOrder(user.ID, 1, "100", entities.OrderStatusCompleted)

		order := &entities.Order{
			UserID:    user.ID,
			OrderType: "standard",
			Amount:    decimal.RequireFromString("250"),
		}
		require.NoError(t, newOrderService(store).AssignOrder(ctx, order))

		require.Equal(t, 2, order.OrderNumber)
		require.Equal(t, entities.OrderStatusPending, order.Status)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		store := newMemoryStore()
		user := store.seedUser(decimal.Zero)

		err := newOrderService(store).AssignOrder(ctx, &entities.Order{UserID: user.ID})
		require.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestSequencerViewService(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	user := store.seedUser(decimal.Zero)
	store.seedOrder(user.ID, 1, "100", entities.OrderStatusCompleted)
	next := store.seedOrder(user.ID, 2, "100", entities.OrderStatusPending)
	store.seedOrder(user.ID, 3, "100", entities.OrderStatusPending)

	view, err := newOrderService(store).SequencerView(ctx, user.ID)
	require.NoError(t, err)

	require.Len(t, view.Orders, 3)
	require.Equal(t, 1, view.CompletedOrders)
	require.Equal(t, 3, view.TotalOrders)
	require.NotNil(t, view.NextEligible)
	require.Equal(t, next.ID, view.NextEligible.ID)
	// Seeded just now, so it is within the freshness window.
	require.NotNil(t, view.ActiveOrder)
	require.Equal(t, next.ID, view.ActiveOrder.ID)
}
