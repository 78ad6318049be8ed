package request

import "github.com/google/uuid"

type SellSubscriptionRequest struct {
	ClientID     uuid.UUID `json:"client_id" binding:"required"`
	PlanID       uuid.UUID `json:"plan_id" binding:"required"`
	PlanQuantity int       `json:"plan_quantity"`
	TotalCredits int       `json:"total_credits" binding:"required,gt=0"`
	ValueCents   int64     `json:"value_cents" binding:"gte=0"`
}

type PaySubscriptionRequest struct {
	LocationID uuid.UUID `json:"location_id"`
	Method     string    `json:"method" binding:"required,oneof=cash pix card"`
}

type RenewSubscriptionRequest struct {
	TotalCredits int   `json:"total_credits" binding:"required,gt=0"`
	ValueCents   int64 `json:"value_cents" binding:"gte=0"`
}
