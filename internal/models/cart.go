package models

// CartLine is one (book, quantity) pairing in the user's server-side
// cart. The embedded Book may be nil when the server returned a bare
// reference; the reconciler enriches such lines with a detail lookup.
type CartLine struct {
	MangaID  string `json:"mangaId,omitempty"`
	Manga    *Book  `json:"manga"`
	Quantity int    `json:"quantity"`
}

// BookID is the line's book reference: the embedded book's ID when
// present, otherwise the bare reference from the server row.
func (l *CartLine) BookID() string {
	if l.Manga != nil {
		return l.Manga.ID
	}

	return l.MangaID
}

type AddCartItemRequest struct {
	MangaID  string `json:"mangaId" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// RemoveCartItemRequest with Quantity 0 removes the entire line;
// Quantity 1 is the decrement path.
type RemoveCartItemRequest struct {
	MangaID  string `json:"mangaId" validate:"required"`
	Quantity int    `json:"quantity,omitempty" validate:"min=0"`
}
