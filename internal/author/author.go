package author

import "errors"

// ErrNotFound is returned when an author is not found.
var ErrNotFound = errors.New("author not found")

// EntityName keys the alert and error headers for this resource.
const EntityName = "author"

// Author writes books. Deleting an author keeps the books and clears
// their author reference.
type Author struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"name" validate:"required"`
	BirthDate string `json:"birthDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}
