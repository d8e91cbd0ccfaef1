package publisher

import (
	"context"

	"github.com/PabloGitu/bookmanagerrmh2/internal/paging"
)

// Repository defines the contract for publisher storage.
type Repository interface {
	Save(ctx context.Context, p *Publisher) error
	FindAll(ctx context.Context, page paging.PageRequest) ([]Publisher, int64, error)
	FindOne(ctx context.Context, id int64) (Publisher, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
