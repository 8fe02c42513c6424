package models

import "math"

type Book struct {
	ID            string   `json:"_id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Author        string   `json:"author"`
	Language      string   `json:"language"`
	URL           string   `json:"url,omitempty"`
	CoverImage    string   `json:"coverImage"`
	Images        []string `json:"images,omitempty"`
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discountPrice,omitempty"`
	Stock         int      `json:"stock"`
	Genre         []string `json:"genre,omitempty"`
}

// DiscountedPrice is the sale price of a book: the explicit discount
// price when the seller set one, otherwise 10% off the list price,
// rounded down. Derived on every call, never stored.
func (b *Book) DiscountedPrice() float64 {
	if b.DiscountPrice != nil {
		return *b.DiscountPrice
	}

	return math.Floor(b.Price * 0.9)
}

type AddBookRequest struct {
	URL         string   `json:"url" validate:"required,url"`
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Author      string   `json:"author" validate:"required"`
	Language    string   `json:"language" validate:"required"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Stock       int      `json:"stock" validate:"required,min=1"`
	CoverImage  string   `json:"coverImage" validate:"required,url"`
	Images      []string `json:"images" validate:"required,min=1,dive,url"`
	Genre       []string `json:"genre" validate:"required,min=1"`
}
