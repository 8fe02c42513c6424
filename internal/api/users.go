package api

import (
	"context"

	"github.com/mangazone/storefront/internal/models"
)

func (c *Client) SignIn(ctx context.Context, req *models.SignInRequest) (*models.SignInResponse, error) {

	if err := c.validateRequest(req); err != nil {
		return nil, err
	}

	var resp models.SignInResponse

	if err := c.post(ctx, "/user/signIn", req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (c *Client) SignUp(ctx context.Context, req *models.SignUpRequest) (*models.User, error) {

	if err := c.validateRequest(req); err != nil {
		return nil, err
	}

	var user models.User

	if err := c.post(ctx, "/user/signUp", req, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// UserInfo fetches the signed-in user's profile. An anonymous session
// short-circuits to a zero User without issuing a network call.
func (c *Client) UserInfo(ctx context.Context) (*models.User, error) {

	if c.session.Anonymous() {
		return &models.User{}, nil
	}

	var user models.User

	if err := c.get(ctx, "/user/info", nil, &user); err != nil {
		return nil, err
	}

	return &user, nil
}
