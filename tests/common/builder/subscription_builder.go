//go:build unit

package builder

import (
	"github.com/patas-felizes/grooming-api/internal/domain/subscription"

	"github.com/google/uuid"
)

type SubscriptionBuilder struct {
	ClientID     uuid.UUID
	PlanID       uuid.UUID
	PlanQuantity int
	TotalCredits int
	ValueCents   int64
}

func NewSubscriptionBuilder() *SubscriptionBuilder {
	return &SubscriptionBuilder{
		ClientID:     uuid.New(),
		PlanID:       uuid.New(),
		PlanQuantity: 4,
		TotalCredits: 4,
		ValueCents:   20000,
	}
}

func (b *SubscriptionBuilder) BuildDomain() (*subscription.Subscription, error) {
	return subscription.NewSubscription(b.ClientID, b.PlanID, b.PlanQuantity, b.TotalCredits, b.ValueCents)
}

func (b *SubscriptionBuilder) WithTotalCredits(n int) *SubscriptionBuilder {
	b.TotalCredits = n
	return b
}

func (b *SubscriptionBuilder) WithPlanQuantity(n int) *SubscriptionBuilder {
	b.PlanQuantity = n
	return b
}

func (b *SubscriptionBuilder) WithValueCents(v int64) *SubscriptionBuilder {
	b.ValueCents = v
	return b
}
