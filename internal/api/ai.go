package api

import (
	"context"

	appErrors "github.com/mangazone/storefront/internal/errors"
)

type generateSummaryRequest struct {
	Description string `json:"description" validate:"required"`
}

type generateSummaryResponse struct {
	Summary string `json:"summary"`
}

// GenerateSummary asks the server's AI endpoint for a short blurb of a
// book description. The result is server-supplied rich text; render it
// through the sanitizer before display.
func (c *Client) GenerateSummary(ctx context.Context, description string) (string, error) {

	req := &generateSummaryRequest{Description: description}

	if err := c.validateRequest(req); err != nil {
		return "", err
	}

	var resp generateSummaryResponse

	if err := c.post(ctx, "/ai/generate-summary", req, &resp); err != nil {
		return "", err
	}

	if resp.Summary == "" {
		return "", appErrors.APIError("Summary generation returned no content")
	}

	return resp.Summary, nil
}
