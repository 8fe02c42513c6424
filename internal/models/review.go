package models

import "time"

type ReviewUser struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

type Review struct {
	ID        string     `json:"_id"`
	MangaID   string     `json:"mangaId"`
	Rating    int        `json:"rating"`
	Comment   string     `json:"comment"`
	User      ReviewUser `json:"user"`
	CreatedAt time.Time  `json:"createdAt"`
}

type SubmitReviewRequest struct {
	MangaID string `json:"mangaId" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}
