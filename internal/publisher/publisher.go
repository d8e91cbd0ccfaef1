package publisher

import "errors"

// ErrNotFound is returned when a publisher is not found.
var ErrNotFound = errors.New("publisher not found")

// EntityName keys the alert and error headers for this resource.
const EntityName = "publisher"

// Publisher is a publishing house. Deleting one keeps its books and
// clears their publisher reference.
type Publisher struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name" validate:"required"`
}
