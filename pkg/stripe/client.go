package stripe

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"
	"github.com/stripe/stripe-go/v81/paymentmethod"
)

// Confirmation is the provider's answer to a confirmation attempt.
type Confirmation struct {
	PaymentIntentID string
	Status          string
}

const StatusSucceeded = string(stripe.PaymentIntentStatusSucceeded)

// Confirmer confirms a server-issued payment intent with a
// user-entered card. Implementations other than Stripe only need to
// satisfy this interface.
type Confirmer interface {
	Confirm(ctx context.Context, clientSecret string, cardNumber, cardExpMonth, cardExpYear, cardCVC string) (*Confirmation, error)
}

type stripeClient struct{}

func NewClient(key string) Confirmer {
	stripe.Key = key

	return &stripeClient{}
}

// Confirm builds a payment method from the card details and confirms
// the intent named by the client secret. The error message is
// returned as Stripe produced it so the checkout view can show it
// verbatim.
func (s *stripeClient) Confirm(ctx context.Context, clientSecret string, cardNumber, cardExpMonth, cardExpYear, cardCVC string) (*Confirmation, error) {

	intentID, err := intentIDFromSecret(clientSecret)
	if err != nil {
		return nil, err
	}

	method, err := s.createPaymentMethod(cardNumber, cardExpMonth, cardExpYear, cardCVC)
	if err != nil {
		return nil, err
	}

	params := &stripe.PaymentIntentConfirmParams{
		PaymentMethod: stripe.String(method.ID),
		ClientSecret:  stripe.String(clientSecret),
	}
	params.Context = ctx

	intent, err := paymentintent.Confirm(intentID, params)
	if err != nil {
		return nil, err
	}

	return &Confirmation{
		PaymentIntentID: intent.ID,
		Status:          string(intent.Status),
	}, nil
}

func (s *stripeClient) createPaymentMethod(cardNumber, cardExpMonth, cardExpYear, cardCVC string) (*stripe.PaymentMethod, error) {

	expMonth, err := strconv.ParseInt(cardExpMonth, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid card expiration month: %w", err)
	}

	expYear, err := strconv.ParseInt(cardExpYear, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid card expiration year: %w", err)
	}

	params := &stripe.PaymentMethodParams{
		Type: stripe.String("card"),
		Card: &stripe.PaymentMethodCardParams{
			Number:   stripe.String(cardNumber),
			ExpMonth: stripe.Int64(expMonth),
			ExpYear:  stripe.Int64(expYear),
			CVC:      stripe.String(cardCVC),
		},
	}

	return paymentmethod.New(params)
}

// Client secrets look like "pi_123_secret_456"; the intent ID is the
// part before "_secret_".
func intentIDFromSecret(clientSecret string) (string, error) {

	id, _, found := strings.Cut(clientSecret, "_secret_")
	if !found || id == "" {
		return "", fmt.Errorf("malformed client secret")
	}

	return id, nil
}
