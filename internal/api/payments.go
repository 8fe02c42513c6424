package api

import (
	"context"

	"github.com/mangazone/storefront/internal/models"
)

// CreatePaymentIntent asks the server for a fresh payment intent for
// the given amount. Intents are single-use; a retried checkout always
// requests a new one.
func (c *Client) CreatePaymentIntent(ctx context.Context, amount float64) (*models.PaymentIntent, error) {

	req := &models.CreatePaymentIntentRequest{Amount: amount}

	if err := c.validateRequest(req); err != nil {
		return nil, err
	}

	var intent models.PaymentIntent

	if err := c.post(ctx, "/payment/create-payment-intent", req, &intent); err != nil {
		return nil, err
	}

	return &intent, nil
}
