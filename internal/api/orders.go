package api

import (
	"context"

	"github.com/mangazone/storefront/internal/models"
)

// PlaceOrder settles the cart checkout. The server clears the cart as
// part of placing the order.
func (c *Client) PlaceOrder(ctx context.Context, amount float64, paymentIntentID string) (*models.Order, error) {

	req := &models.PlaceOrderRequest{Amount: amount, PaymentIntentID: paymentIntentID}

	if err := c.validateRequest(req); err != nil {
		return nil, err
	}

	var order models.Order

	if err := c.post(ctx, "/order/place-order", req, &order); err != nil {
		return nil, err
	}

	return &order, nil
}

// PlaceDirectOrder settles a direct buy that bypassed the cart.
func (c *Client) PlaceDirectOrder(ctx context.Context, mangaID string, qty int, amount float64, paymentIntentID string) (*models.Order, error) {

	req := &models.DirectOrderRequest{
		MangaID:         mangaID,
		Quantity:        qty,
		Amount:          amount,
		PaymentIntentID: paymentIntentID,
	}

	if err := c.validateRequest(req); err != nil {
		return nil, err
	}

	var order models.Order

	if err := c.post(ctx, "/order/direct-buy", req, &order); err != nil {
		return nil, err
	}

	return &order, nil
}
