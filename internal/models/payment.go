package models

// PaymentIntent is the server's create-payment-intent response. The
// client secret is single-use: every checkout submit requests a fresh
// intent, including retries after a failed confirmation.
type PaymentIntent struct {
	ClientSecret string  `json:"clientSecret"`
	Amount       float64 `json:"amount"`
}

type CreatePaymentIntentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// Card is the user-entered payment instrument handed to the payment
// provider for confirmation. It never touches the marketplace API.
type Card struct {
	Number   string `json:"-" validate:"required"`
	ExpMonth string `json:"-" validate:"required"`
	ExpYear  string `json:"-" validate:"required"`
	CVC      string `json:"-" validate:"required"`
}
