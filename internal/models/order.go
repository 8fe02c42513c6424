package models

// PlaceOrderRequest settles the whole cart; the server clears the
// cart as part of placing the order.
type PlaceOrderRequest struct {
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	PaymentIntentID string  `json:"paymentIntentId" validate:"required"`
}

// DirectOrderRequest settles a single book purchase that bypassed the cart.
type DirectOrderRequest struct {
	MangaID         string  `json:"mangaId" validate:"required"`
	Quantity        int     `json:"qty" validate:"required,min=1"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	PaymentIntentID string  `json:"paymentIntentId" validate:"required"`
}

type Order struct {
	ID              string  `json:"_id"`
	Amount          float64 `json:"amount"`
	PaymentIntentID string  `json:"paymentIntentId"`
	Status          string  `json:"status,omitempty"`
}
