package response

import "github.com/google/uuid"

type SellSubscriptionResponse struct {
	ID uuid.UUID `json:"id"`
}
