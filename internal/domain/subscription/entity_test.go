//go:build unit

package subscription_test

import (
	"testing"

	"github.com/patas-felizes/grooming-api/internal/domain/appointment"
	"github.com/patas-felizes/grooming-api/internal/domain/subscription"
	"github.com/patas-felizes/grooming-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubscription(t *testing.T) {
	t.Run("valid subscription", func(t *testing.T) {
		s, err := builder.NewSubscriptionBuilder().BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, 4, s.TotalCredits())
		assert.Equal(t, 0, s.UsedCredits())
		assert.True(t, s.IsActive())
		assert.False(t, s.IsPaid())
	})

	t.Run("missing client rejected", func(t *testing.T) {
		b := builder.NewSubscriptionBuilder()
		b.ClientID = uuid.Nil
		_, err := b.BuildDomain()
		require.ErrorIs(t, err, subscription.ErrMissingClient)
	})

	t.Run("non-positive total rejected", func(t *testing.T) {
		_, err := builder.NewSubscriptionBuilder().WithTotalCredits(0).BuildDomain()
		require.ErrorIs(t, err, subscription.ErrInvalidTotal)
	})

	t.Run("negative value rejected", func(t *testing.T) {
		_, err := builder.NewSubscriptionBuilder().WithValueCents(-1).BuildDomain()
		require.ErrorIs(t, err, subscription.ErrInvalidValue)
	})

	t.Run("plan quantity defaults to total credits", func(t *testing.T) {
		s, err := builder.NewSubscriptionBuilder().WithPlanQuantity(0).WithTotalCredits(6).BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, 6, s.PlanQuantity())
	})
}

func TestConsumeAndRefund(t *testing.T) {
	t.Run("consume counts up to total then fails", func(t *testing.T) {
		s, err := builder.NewSubscriptionBuilder().WithTotalCredits(2).WithPlanQuantity(2).BuildDomain()
		require.NoError(t, err)

		require.NoError(t, s.Consume())
		require.NoError(t, s.Consume())
		assert.True(t, s.IsExhausted())
		assert.Equal(t, 0, s.Remaining())

		require.ErrorIs(t, s.Consume(), subscription.ErrCreditsExhausted)
		// a failed consume never moves the counter
		assert.Equal(t, 2, s.UsedCredits())
	})

	t.Run("refund floors at zero", func(t *testing.T) {
		s, err := builder.NewSubscriptionBuilder().BuildDomain()
		require.NoError(t, err)

		s.Refund()
		assert.Equal(t, 0, s.UsedCredits())

		require.NoError(t, s.Consume())
		s.Refund()
		assert.Equal(t, 0, s.UsedCredits())
	})
}

func TestRenew(t *testing.T) {
	s, err := builder.NewSubscriptionBuilder().WithTotalCredits(4).BuildDomain()
	require.NoError(t, err)

	require.NoError(t, s.Consume())
	require.NoError(t, s.Pay(appointment.PaymentPix))

	require.NoError(t, s.Renew(8, 30000))
	assert.Equal(t, 8, s.TotalCredits())
	assert.Equal(t, 0, s.UsedCredits())
	assert.Equal(t, int64(30000), s.ValueCents())
	assert.False(t, s.IsPaid())
	assert.Nil(t, s.Method())
}

func TestCancel(t *testing.T) {
	s, err := builder.NewSubscriptionBuilder().WithTotalCredits(6).WithPlanQuantity(4).BuildDomain()
	require.NoError(t, err)

	require.NoError(t, s.Consume())
	s.Cancel()

	assert.False(t, s.IsActive())
	// cancellation parks the counter at the plan's original quantity
	assert.Equal(t, 4, s.UsedCredits())
}
