//go:build unit

package commands_test

import (
	"context"
	"testing"

	"github.com/patas-felizes/grooming-api/internal/domain/ledger"
	"github.com/patas-felizes/grooming-api/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerAdd(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	t.Run("records manual entries of either sign", func(t *testing.T) {
		store := newFakeStore()
		uc := commands.NewLedgerCommands(newFakeUoW(store))
		locationID := uuid.New()

		id, err := uc.Add(ctx, commands.AddTransactionRequest{
			LocationID:  locationID,
			AmountCents: 5000,
			Description: "till float",
			ActorID:     actorID,
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)

		_, err = uc.Add(ctx, commands.AddTransactionRequest{
			LocationID:  locationID,
			AmountCents: -1500,
			Description: "supplies run",
			ActorID:     actorID,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3500), store.balance(locationID))
	})

	t.Run("zero amount is rejected", func(t *testing.T) {
		store := newFakeStore()
		uc := commands.NewLedgerCommands(newFakeUoW(store))

		_, err := uc.Add(ctx, commands.AddTransactionRequest{
			LocationID:  uuid.New(),
			AmountCents: 0,
			Description: "noop",
			ActorID:     actorID,
		})
		assert.ErrorIs(t, err, ledger.ErrZeroAmount)
		assert.Empty(t, store.transactions)
	})
}

func TestLedgerClose(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	seed := func(t *testing.T, store *fakeStore, locationID uuid.UUID, amounts ...int64) {
		t.Helper()
		uc := commands.NewLedgerCommands(newFakeUoW(store))
		for _, amount := range amounts {
			_, err := uc.Add(ctx, commands.AddTransactionRequest{
				LocationID:  locationID,
				AmountCents: amount,
				Description: "seed",
				ActorID:     actorID,
			})
			require.NoError(t, err)
		}
	}

	t.Run("close withdraws the balance and zeroes the ledger", func(t *testing.T) {
		store := newFakeStore()
		locationID := uuid.New()
		seed(t, store, locationID, 10000, -2500)

		uc := commands.NewLedgerCommands(newFakeUoW(store))
		res, err := uc.Close(ctx, locationID, actorID)
		require.NoError(t, err)
		assert.False(t, res.AlreadyZero)
		assert.Equal(t, int64(7500), res.WithdrawnCents)
		assert.Equal(t, int64(0), store.balance(locationID))

		last := store.transactions[len(store.transactions)-1]
		assert.Equal(t, ledger.CategoryClosing, last.Category())
		assert.Equal(t, int64(-7500), last.AmountCents())
	})

	t.Run("closing a zero balance writes nothing", func(t *testing.T) {
		store := newFakeStore()
		locationID := uuid.New()

		uc := commands.NewLedgerCommands(newFakeUoW(store))
		res, err := uc.Close(ctx, locationID, actorID)
		require.NoError(t, err)
		assert.True(t, res.AlreadyZero)
		assert.Zero(t, res.WithdrawnCents)
		assert.Empty(t, store.transactions)
	})

	t.Run("close is idempotent once settled", func(t *testing.T) {
		store := newFakeStore()
		locationID := uuid.New()
		seed(t, store, locationID, 4000)

		uc := commands.NewLedgerCommands(newFakeUoW(store))
		_, err := uc.Close(ctx, locationID, actorID)
		require.NoError(t, err)

		res, err := uc.Close(ctx, locationID, actorID)
		require.NoError(t, err)
		assert.True(t, res.AlreadyZero)
		assert.Len(t, store.transactions, 2)
	})

	t.Run("missing location", func(t *testing.T) {
		uc := commands.NewLedgerCommands(newFakeUoW(newFakeStore()))

		_, err := uc.Close(ctx, uuid.Nil, actorID)
		assert.ErrorIs(t, err, commands.ErrLocationRequired)
	})
}

func TestLedgerClearHistory(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()

	t.Run("wipes only the target location", func(t *testing.T) {
		store := newFakeStore()
		uc := commands.NewLedgerCommands(newFakeUoW(store))
		target := uuid.New()
		other := uuid.New()

		for _, req := range []commands.AddTransactionRequest{
			{LocationID: target, AmountCents: 1000, Description: "a", ActorID: actorID},
			{LocationID: target, AmountCents: 2000, Description: "b", ActorID: actorID},
			{LocationID: other, AmountCents: 3000, Description: "c", ActorID: actorID},
		} {
			_, err := uc.Add(ctx, req)
			require.NoError(t, err)
		}

		deleted, err := uc.ClearHistory(ctx, target)
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)
		assert.Equal(t, int64(0), store.balance(target))
		assert.Equal(t, int64(3000), store.balance(other))
	})

	t.Run("missing location", func(t *testing.T) {
		uc := commands.NewLedgerCommands(newFakeUoW(newFakeStore()))

		_, err := uc.ClearHistory(ctx, uuid.Nil)
		assert.ErrorIs(t, err, commands.ErrLocationRequired)
	})
}
