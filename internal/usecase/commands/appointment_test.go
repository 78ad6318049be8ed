//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/patas-felizes/grooming-api/internal/domain/subscription"
	"github.com/patas-felizes/grooming-api/internal/pkg/clock"
	"github.com/patas-felizes/grooming-api/internal/usecase/commands"
	"github.com/patas-felizes/grooming-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAppointmentCommands(store *fakeStore) (commands.AppointmentCommands, *fakePublisher) {
	pub := &fakePublisher{}
	clk := clock.NewMockClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	return commands.NewAppointmentCommands(newFakeUoW(store), pub, clk), pub
}

func newSubscriptionWith(t *testing.T, store *fakeStore, total, used int) uuid.UUID {
	t.Helper()
	sub, err := subscription.NewSubscription(uuid.New(), uuid.New(), total, total, 20000)
	require.NoError(t, err)
	for i := 0; i < used; i++ {
		require.NoError(t, sub.Consume())
	}
	store.subscriptions[sub.ID()] = sub
	return sub.ID()
}

func baseRequest(store *fakeStore) commands.CreateAppointmentRequest {
	serviceID := store.addService("bath", 10000, 60)
	return commands.CreateAppointmentRequest{
		LocationID:   uuid.New(),
		PetNames:     []string{"Rex"},
		Date:         time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartMinutes: 9 * 60,
		ServiceIDs:   []uuid.UUID{serviceID},
	}
}

func TestAppointmentCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates appointment and publishes event", func(t *testing.T) {
		store := newFakeStore()
		uc, pub := newAppointmentCommands(store)

		res, err := uc.Create(ctx, baseRequest(store))
		require.NoError(t, err)
		assert.Equal(t, int64(10000), res.TotalCents)
		assert.Nil(t, res.Conflict)
		assert.Len(t, store.appointments, 1)
		require.Len(t, pub.events, 1)
		assert.Equal(t, shared.EventAppointmentCreated, pub.events[0].Type)
	})

	t.Run("overlap returns warning without blocking the write", func(t *testing.T) {
		store := newFakeStore()
		uc, _ := newAppointmentCommands(store)
		req := baseRequest(store)

		first, err := uc.Create(ctx, req)
		require.NoError(t, err)

		req.PetNames = []string{"Luna"}
		req.StartMinutes = 9*60 + 30
		second, err := uc.Create(ctx, req)
		require.NoError(t, err)
		require.NotNil(t, second.Conflict)
		assert.Equal(t, first.AppointmentID, second.Conflict.AppointmentID)
		assert.Equal(t, "Rex", second.Conflict.PetName)
		assert.Len(t, store.appointments, 2)
	})

	t.Run("subscription booking consumes one credit and zeroes service cost", func(t *testing.T) {
		store := newFakeStore()
		uc, _ := newAppointmentCommands(store)
		subID := newSubscriptionWith(t, store, 4, 0)

		req := baseRequest(store)
		req.SubscriptionID = &subID

		res, err := uc.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, int64(0), res.TotalCents)
		assert.Equal(t, 1, store.subscriptions[subID].UsedCredits())
	})

	t.Run("exhausted subscription rejects the booking", func(t *testing.T) {
		store := newFakeStore()
		uc, _ := newAppointmentCommands(store)
		subID := newSubscriptionWith(t, store, 2, 2)

		req := baseRequest(store)
		req.SubscriptionID = &subID

		_, err := uc.Create(ctx, req)
		assert.ErrorIs(t, err, commands.ErrCreditsExhausted)
	})

	t.Run("unknown service fails before any write", func(t *testing.T) {
		store := newFakeStore()
		uc, _ := newAppointmentCommands(store)

		req := baseRequest(store)
		req.ServiceIDs = []uuid.UUID{uuid.New()}

		_, err := uc.Create(ctx, req)
		assert.ErrorIs(t, err, commands.ErrServiceNotFound)
		assert.Empty(t, store.appointments)
	})

	t.Run("multiple pets merge into one name and drop the pet reference", func(t *testing.T) {
		store := newFakeStore()
		uc, _ := newAppointmentCommands(store)

		petID := uuid.New()
		req := baseRequest(store)
		req.PetID = &petID
		req.PetNames = []string{"Rex", "Luna"}

		res, err := uc.Create(ctx, req)
		require.NoError(t, err)
		created := store.appointments[res.AppointmentID]
		assert.Equal(t, "Rex, Luna", created.PetName())
		assert.Nil(t, created.PetID())
	})
}

func TestAppointmentCreateRecurring(t *testing.T) {
	ctx := context.Background()

	t.Run("weekly expansion creates one appointment per week", func(t *testing.T) {
		store := newFakeStore()
		uc, _ := newAppointmentCommands(store)

		res, err := uc.CreateRecurring(ctx, baseRequest(store), 4)
		require.NoError(t, err)
		assert.Equal(t, 4, res.RequestedWeeks)
		assert.Equal(t, 4, res.PlannedWeeks)
		require.Len(t, res.Created, 4)
		assert.Empty(t, res.Failures)

		for i, created := range res.Created {
			want := time.Date(2026, 3, 10+7*i, 0, 0, 0, 0, time.UTC)
			assert.True(t, created.Date.Equal(want), "week %d", i+1)
		}
	})

	t.Run("plan is clamped to remaining credits up front", func(t *testing.T) {
		store := newFakeStore()
		uc, _ := newAppointmentCommands(store)
		subID := newSubscriptionWith(t, store, 5, 2)

		req := baseRequest(store)
		req.SubscriptionID = &subID

		res, err := uc.CreateRecurring(ctx, req, 10)
		require.NoError(t, err)
		assert.Equal(t, 10, res.RequestedWeeks)
		assert.Equal(t, 3, res.PlannedWeeks)
		assert.Len(t, res.Created, 3)
		assert.Equal(t, 5, store.subscriptions[subID].UsedCredits())
	})

	t.Run("mid-loop exhaustion stops the expansion", func(t *testing.T) {
		store := newFakeStore()
		uc, _ := newAppointmentCommands(store)
		subID := newSubscriptionWith(t, store, 5, 0)
		// A concurrent consumer drains the grant after the clamp: the
		// third consume fails even though five weeks were planned.
		store.forceExhaustAfter = 2

		req := baseRequest(store)
		req.SubscriptionID = &subID

		res, err := uc.CreateRecurring(ctx, req, 5)
		require.NoError(t, err)
		assert.Equal(t, 5, res.PlannedWeeks)
		assert.Len(t, res.Created, 2)
		require.Len(t, res.Failures, 1)
		assert.Equal(t, 3, res.Failures[0].Week)
	})

	t.Run("conflicting weeks carry warnings but still book", func(t *testing.T) {
		store := newFakeStore()
		uc, _ := newAppointmentCommands(store)
		req := baseRequest(store)

		blocker := req
		blocker.PetNames = []string{"Thor"}
		blocker.Date = req.Date.AddDate(0, 0, 7)
		_, err := uc.Create(ctx, blocker)
		require.NoError(t, err)

		res, err := uc.CreateRecurring(ctx, req, 3)
		require.NoError(t, err)
		require.Len(t, res.Created, 3)
		assert.Nil(t, res.Created[0].Conflict)
		require.NotNil(t, res.Created[1].Conflict)
		assert.Equal(t, "Thor", res.Created[1].Conflict.PetName)
		assert.Nil(t, res.Created[2].Conflict)
	})

	t.Run("zero weeks is rejected", func(t *testing.T) {
		store := newFakeStore()
		uc, _ := newAppointmentCommands(store)

		_, err := uc.CreateRecurring(ctx, baseRequest(store), 0)
		assert.ErrorIs(t, err, commands.ErrInvalidRecurrence)
	})
}

func TestAppointmentUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("reschedule and discount recompute the total", func(t *testing.T) {
		store := newFakeStore()
		uc, _ := newAppointmentCommands(store)

		created, err := uc.Create(ctx, baseRequest(store))
		require.NoError(t, err)

		newStart := 14 * 60
		off := int64(2000)
		res, err := uc.Update(ctx, created.AppointmentID, commands.UpdateAppointmentRequest{
			StartMinutes:     &newStart,
			DiscountOffCents: &off,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(8000), res.TotalCents)
		assert.Equal(t, newStart, store.appointments[created.AppointmentID].StartMinutes())
	})

	t.Run("clearing the discount restores the full price", func(t *testing.T) {
		store := newFakeStore()
		uc, _ := newAppointmentCommands(store)

		req := baseRequest(store)
		off := int64(2000)
		req.DiscountOffCents = &off
		created, err := uc.Create(ctx, req)
		require.NoError(t, err)
		require.Equal(t, int64(8000), created.TotalCents)

		res, err := uc.Update(ctx, created.AppointmentID, commands.UpdateAppointmentRequest{ClearDiscount: true})
		require.NoError(t, err)
		assert.Equal(t, int64(10000), res.TotalCents)
	})

	t.Run("unknown appointment", func(t *testing.T) {
		store := newFakeStore()
		uc, _ := newAppointmentCommands(store)

		_, err := uc.Update(ctx, uuid.New(), commands.UpdateAppointmentRequest{})
		assert.ErrorIs(t, err, commands.ErrAppointmentNotFound)
	})
}

func TestAppointmentDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("deleting a subscription booking refunds the credit", func(t *testing.T) {
		store := newFakeStore()
		uc, _ := newAppointmentCommands(store)
		subID := newSubscriptionWith(t, store, 4, 0)

		req := baseRequest(store)
		req.SubscriptionID = &subID
		created, err := uc.Create(ctx, req)
		require.NoError(t, err)
		require.Equal(t, 1, store.subscriptions[subID].UsedCredits())

		refunded, err := uc.Delete(ctx, created.AppointmentID)
		require.NoError(t, err)
		assert.True(t, refunded)
		assert.Equal(t, 0, store.subscriptions[subID].UsedCredits())
		assert.Empty(t, store.appointments)
	})

	t.Run("plain booking deletes without touching credits", func(t *testing.T) {
		store := newFakeStore()
		uc, _ := newAppointmentCommands(store)

		created, err := uc.Create(ctx, baseRequest(store))
		require.NoError(t, err)

		refunded, err := uc.Delete(ctx, created.AppointmentID)
		require.NoError(t, err)
		assert.False(t, refunded)
	})

	t.Run("unknown appointment", func(t *testing.T) {
		store := newFakeStore()
		uc, _ := newAppointmentCommands(store)

		_, err := uc.Delete(ctx, uuid.New())
		assert.ErrorIs(t, err, commands.ErrAppointmentNotFound)
	})
}
