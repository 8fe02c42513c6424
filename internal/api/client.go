package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	appErrors "github.com/mangazone/storefront/internal/errors"
	"github.com/mangazone/storefront/internal/session"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client is the typed wrapper around the marketplace REST API. Each
// operation issues exactly one HTTP call. Listing reads degrade to an
// empty result on failure; mutations propagate their error so callers
// can surface a notification. The client holds no state beyond the
// session it was constructed with.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Session
	validate   *validator.Validate
}

func New(baseURL string, sess *session.Session) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		session:  sess,
		validate: validator.New(),
	}
}

// Session exposes the identity the client was constructed with.
func (c *Client) Session() *session.Session {
	return c.session
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {

	endpoint := c.baseURL + path

	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader

	if body != nil {

		payload, err := json.Marshal(body)
		if err != nil {
			return nil, appErrors.BadRequestError("Failed to encode request body").WithError(err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, appErrors.BadRequestError("Failed to build request").WithError(err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	req.Header.Set("X-Request-ID", uuid.NewString())

	if !c.session.Anonymous() {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
		req.Header.Set("id", c.session.UserID)
	}

	return req, nil
}

// apiError is the server's error envelope. Older revisions used
// "error" where newer ones use "message"; both are accepted.
type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *Client) do(req *http.Request, out any) error {

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return appErrors.TransportError("Request failed").WithError(err)
	}

	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {

		var payload apiError

		message := fmt.Sprintf("Request failed with status %d", resp.StatusCode)

		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			if payload.Message != "" {
				message = payload.Message
			} else if payload.Error != "" {
				message = payload.Error
			}
		}

		if resp.StatusCode == http.StatusUnauthorized {
			return appErrors.UnauthorizedError(message)
		}

		if resp.StatusCode == http.StatusNotFound {
			return appErrors.NotFoundError(message)
		}

		return appErrors.APIError(message)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return appErrors.APIError("Failed to decode response").WithError(err)
	}

	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {

	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}

	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}

	return c.do(req, out)
}

func (c *Client) delete(ctx context.Context, path string, body, out any) error {

	req, err := c.newRequest(ctx, http.MethodDelete, path, nil, body)
	if err != nil {
		return err
	}

	return c.do(req, out)
}

func (c *Client) validateRequest(req any) error {

	if err := c.validate.Struct(req); err != nil {
		return appErrors.ValidationError("Invalid input data").WithError(err)
	}

	return nil
}
