package author

import (
	"context"

	"github.com/PabloGitu/bookmanagerrmh2/internal/paging"
)

// Repository defines the contract for author storage.
type Repository interface {
	Save(ctx context.Context, a *Author) error
	FindAll(ctx context.Context, p paging.PageRequest) ([]Author, int64, error)
	FindOne(ctx context.Context, id int64) (Author, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
