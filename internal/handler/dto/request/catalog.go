package request

type UpdatePriceRequest struct {
	PriceCents int64 `json:"price_cents" binding:"gte=0"`
}
