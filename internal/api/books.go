package api

import (
	"context"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/mangazone/storefront/internal/models"
)

const (
	defaultPage  = 1
	defaultLimit = 12
)

// ListBooks fetches one page of the catalog. On failure it returns an
// empty page and logs the error: a failed listing renders the same as
// an empty one.
func (c *Client) ListBooks(ctx context.Context, params models.ListBooksParams) models.PaginatedBooks {

	if params.Page <= 0 {
		params.Page = defaultPage
	}

	if params.Limit <= 0 {
		params.Limit = defaultLimit
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(params.Page))
	query.Set("limit", strconv.Itoa(params.Limit))

	if params.Search != "" {
		query.Set("search", params.Search)
	}

	if params.Genre != "" {
		query.Set("genre", params.Genre)
	}

	var page models.PaginatedBooks

	if err := c.get(ctx, "/book/all", query, &page); err != nil {
		slog.Error("Error fetching books", slog.String("error", err.Error()))

		return models.PaginatedBooks{Data: []models.Book{}}
	}

	if page.Data == nil {
		page.Data = []models.Book{}
	}

	return page
}

// FeaturedBooks is the home page carousel: first 8 books.
func (c *Client) FeaturedBooks(ctx context.Context) []models.Book {
	return c.ListBooks(ctx, models.ListBooksParams{Page: 1, Limit: 8}).Data
}

// TrendingBooks is the home page trending strip: page 2, 6 books.
func (c *Client) TrendingBooks(ctx context.Context) []models.Book {
	return c.ListBooks(ctx, models.ListBooksParams{Page: 2, Limit: 6}).Data
}

// GetBook fetches one book's detail. Unlike listings, detail reads
// return their error: callers need to tell a missing book apart from
// an empty shelf.
func (c *Client) GetBook(ctx context.Context, id string) (*models.Book, error) {

	var book models.Book

	if err := c.get(ctx, "/book/"+id, nil, &book); err != nil {
		return nil, err
	}

	return &book, nil
}

func (c *Client) RandomBook(ctx context.Context) (*models.Book, error) {

	var book models.Book

	if err := c.get(ctx, "/book/random", nil, &book); err != nil {
		return nil, err
	}

	return &book, nil
}

// AddBook publishes a new listing. The payload is validated before
// any network call is made.
func (c *Client) AddBook(ctx context.Context, req *models.AddBookRequest) error {

	if err := c.validateRequest(req); err != nil {
		return err
	}

	return c.post(ctx, "/book/add", req, nil)
}
