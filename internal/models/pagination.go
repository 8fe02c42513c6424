package models

// ListBooksParams are the query parameters for the paginated book
// listing. Page and Limit default to 1 and 12 when unset.
type ListBooksParams struct {
	Page   int
	Limit  int
	Search string
	Genre  string
}

type PaginatedBooks struct {
	Data       []Book `json:"data"`
	Total      int    `json:"total"`
	TotalPages int    `json:"totalPages"`
}
