package comment

import (
	"context"

	"github.com/PabloGitu/bookmanagerrmh2/internal/paging"
)

// Repository defines the contract for comment storage.
type Repository interface {
	Save(ctx context.Context, c *Comment) error
	FindAll(ctx context.Context, p paging.PageRequest) ([]Comment, int64, error)
	FindByBook(ctx context.Context, bookID int64, p paging.PageRequest) ([]Comment, int64, error)
	FindOne(ctx context.Context, id int64) (Comment, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
