package book

import "errors"

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// EntityName keys the alert and error headers for this resource.
const EntityName = "book"

// Book is a catalog entry. A zero ID marks a book that has not been
// saved yet; author and publisher references are optional.
type Book struct {
	ID              int64  `json:"id,omitempty"`
	Title           string `json:"title" validate:"required"`
	ISBN            string `json:"isbn,omitempty" validate:"omitempty,isbn"`
	PublicationDate string `json:"publicationDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Description     string `json:"description,omitempty"`
	AuthorID        *int64 `json:"authorId,omitempty"`
	PublisherID     *int64 `json:"publisherId,omitempty"`
}
