//go:build unit

package ledger_test

import (
	"testing"

	"github.com/patas-felizes/grooming-api/internal/domain/ledger"
	"github.com/patas-felizes/grooming-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransaction(t *testing.T) {
	type testCase struct {
		name   string
		mutate func(*builder.TransactionBuilder)
		errIs  error
	}

	cases := []testCase{
		{
			name: "valid entry",
		},
		{
			name:   "negative amounts allowed",
			mutate: func(b *builder.TransactionBuilder) { b.AmountCents = -3000 },
		},
		{
			name:   "missing location rejected",
			mutate: func(b *builder.TransactionBuilder) { b.LocationID = uuid.Nil },
			errIs:  ledger.ErrMissingLocation,
		},
		{
			name:   "zero amount rejected",
			mutate: func(b *builder.TransactionBuilder) { b.AmountCents = 0 },
			errIs:  ledger.ErrZeroAmount,
		},
		{
			name:   "unknown category rejected",
			mutate: func(b *builder.TransactionBuilder) { b.Category = ledger.Category("transfer") },
			errIs:  ledger.ErrInvalidCategory,
		},
		{
			name:   "blank description rejected",
			mutate: func(b *builder.TransactionBuilder) { b.Description = "  " },
			errIs:  ledger.ErrMissingDescription,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewTransactionBuilder()
			if tc.mutate != nil {
				tc.mutate(b)
			}
			txn, err := b.BuildDomain()
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, txn)
		})
	}
}

func TestSumAmounts(t *testing.T) {
	mk := func(amount int64) *ledger.Transaction {
		txn, err := builder.NewTransactionBuilder().WithAmountCents(amount).BuildDomain()
		require.NoError(t, err)
		return txn
	}

	t.Run("balance is the fold over signed amounts", func(t *testing.T) {
		txns := []*ledger.Transaction{mk(10000), mk(-2500), mk(500)}
		assert.Equal(t, int64(8000), ledger.SumAmounts(txns))
	})

	t.Run("empty ledger sums to zero", func(t *testing.T) {
		assert.Equal(t, int64(0), ledger.SumAmounts(nil))
	})
}
