package entity

import (
	"time"
)

// Review lives in a document store, so its identity is a string and is
// generated independently of the numeric ids used by the other entities.
type Review struct {
	ID        string    `json:"id"`
	ProductID int64     `json:"product_id"`
	UserID    int64     `json:"user_id"`
	Rating    int       `json:"rating"`
	Title     string    `json:"title,omitempty"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ReviewUpdate struct {
	Rating  *int
	Title   *string
	Comment *string
}

func (up ReviewUpdate) Apply(r *Review) {
	if up.Rating != nil {
		r.Rating = *up.Rating
	}
	if up.Title != nil {
		r.Title = *up.Title
	}
	if up.Comment != nil {
		r.Comment = *up.Comment
	}
}
