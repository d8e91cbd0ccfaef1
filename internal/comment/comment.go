package comment

import "errors"

// ErrNotFound is returned when a comment is not found.
var ErrNotFound = errors.New("comment not found")

// EntityName keys the alert and error headers for this resource.
const EntityName = "comment"

// Comment is reader feedback on a book. Comments are removed together
// with the book they belong to. Date is set by the server on create
// when the client leaves it empty.
type Comment struct {
	ID     int64  `json:"id,omitempty"`
	Text   string `json:"text" validate:"required"`
	Date   string `json:"date,omitempty"`
	BookID *int64 `json:"bookId,omitempty"`
}
