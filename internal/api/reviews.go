package api

import (
	"context"
	"log/slog"

	"github.com/mangazone/storefront/internal/models"
)

// ListReviews fetches every review, used for the testimonials strip.
// Degrades to empty on failure.
func (c *Client) ListReviews(ctx context.Context) []models.Review {

	var reviews []models.Review

	if err := c.get(ctx, "/review/all", nil, &reviews); err != nil {
		slog.Error("Error fetching reviews", slog.String("error", err.Error()))

		return []models.Review{}
	}

	if reviews == nil {
		reviews = []models.Review{}
	}

	return reviews
}

// BookReviews fetches the reviews for one book. Degrades to empty on
// failure.
func (c *Client) BookReviews(ctx context.Context, bookID string) []models.Review {

	var reviews []models.Review

	if err := c.get(ctx, "/review/"+bookID, nil, &reviews); err != nil {
		slog.Error("Error fetching book reviews",
			slog.String("bookId", bookID),
			slog.String("error", err.Error()))

		return []models.Review{}
	}

	if reviews == nil {
		reviews = []models.Review{}
	}

	return reviews
}

func (c *Client) SubmitReview(ctx context.Context, req *models.SubmitReviewRequest) error {

	if err := c.validateRequest(req); err != nil {
		return err
	}

	return c.post(ctx, "/review/add", req, nil)
}
