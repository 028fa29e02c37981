package usecases

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newRegistrationService(store *memoryStore) *RegistrationService {
	return NewRegistrationService(testLogger(), store, store, passthroughTransactor{})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account from a valid invitation", func(t *testing.T) {
		store := newMemoryStore()
		inviter := store.seedUser(decimal.Zero)

		user, err := newRegistrationService(store).Register(ctx, RegistrationRequest{
			Username:       "newcomer",
			Phone:          "+521551234567",
			Country:        "Mexico",
			InvitationCode: inviter.ReferralCode,
		})
		require.NoError(t, err)

		require.True(t, user.Balance.IsZero())
		require.Equal(t, "MXN", user.Currency)
		require.Equal(t, "$", user.CurrencySymbol)
		require.True(t, strings.HasPrefix(user.ReferralCode, "REF"))
		require.NotEqual(t, inviter.ReferralCode, user.ReferralCode)

		require.Len(t, store.invitations, 1)
		require.Equal(t, inviter.ID, store.invitations[0].InviterID)
		require.Equal(t, user.ID, store.invitations[0].InvitedID)
		require.Equal(t, "accepted", store.invitations[0].Status)
	})

	t.Run("username required", func(t *testing.T) {
		store := newMemoryStore()
		inviter := store.seedUser(decimal.Zero)

		_, err := newRegistrationService(store).Register(ctx, RegistrationRequest{
			Username:       "   ",
			InvitationCode: inviter.ReferralCode,
		})
		require.ErrorIs(t, err, ErrUsernameRequired)
	})

	t.Run("invitation code required", func(t *testing.T) {
		store := newMemoryStore()

		_, err := newRegistrationService(store).Register(ctx, RegistrationRequest{
			Username: "newcomer",
		})
		require.ErrorIs(t, err, ErrInvitationRequired)
	})

	t.Run("unknown invitation code rejected", func(t *testing.T) {
		store := newMemoryStore()

		_, err := newRegistrationService(store).Register(ctx, RegistrationRequest{
			Username:       "newcomer",
			InvitationCode: "REFNOPE123",
		})
		require.ErrorIs(t, err, ErrInvalidInvitation)
	})

	t.Run("unknown country falls back to USD", func(t *testing.T) {
		store := newMemoryStore()
		inviter := store.seedUser(decimal.Zero)

		user, err := newRegistrationService(store).Register(ctx, RegistrationRequest{
			Username:       "wanderer",
			Country:        "Atlantis",
			InvitationCode: inviter.ReferralCode,
		})
		require.NoError(t, err)
		require.Equal(t, "USD", user.Currency)
		require.Equal(t, "$", user.CurrencySymbol)
	})
}
