package api

import (
	"context"

	"github.com/mangazone/storefront/internal/models"
)

// CartItems fetches the current cart lines. The error is returned
// rather than degraded: the reconciler's Error state depends on
// knowing that a refresh failed, and a failed fetch must not be
// mistaken for an emptied cart.
func (c *Client) CartItems(ctx context.Context) ([]models.CartLine, error) {

	var lines []models.CartLine

	if err := c.get(ctx, "/cart/all", nil, &lines); err != nil {
		return nil, err
	}

	return lines, nil
}

// AddCartItem adds quantity of a book to the cart, creating the line
// if absent.
func (c *Client) AddCartItem(ctx context.Context, mangaID string, quantity int) error {

	req := &models.AddCartItemRequest{MangaID: mangaID, Quantity: quantity}

	if err := c.validateRequest(req); err != nil {
		return err
	}

	return c.post(ctx, "/cart/add", req, nil)
}

// RemoveCartItem removes one unit of a book from the cart; the server
// drops the line when its quantity reaches zero.
func (c *Client) RemoveCartItem(ctx context.Context, mangaID string) error {

	req := &models.RemoveCartItemRequest{MangaID: mangaID, Quantity: 1}

	if err := c.validateRequest(req); err != nil {
		return err
	}

	return c.delete(ctx, "/cart/remove", req, nil)
}

// RemoveCartLine removes a book's entire line regardless of quantity.
func (c *Client) RemoveCartLine(ctx context.Context, mangaID string) error {

	req := &models.RemoveCartItemRequest{MangaID: mangaID}

	if err := c.validateRequest(req); err != nil {
		return err
	}

	return c.delete(ctx, "/cart/remove", req, nil)
}
