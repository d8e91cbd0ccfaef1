package book

import (
	"context"

	"github.com/PabloGitu/bookmanagerrmh2/internal/paging"
)

// Repository defines the contract for book storage.
type Repository interface {
	Save(ctx context.Context, b *Book) error
	FindAll(ctx context.Context, p paging.PageRequest) ([]Book, int64, error)
	FindByAuthor(ctx context.Context, authorID int64, p paging.PageRequest) ([]Book, int64, error)
	FindByPublisher(ctx context.Context, publisherID int64, p paging.PageRequest) ([]Book, int64, error)
	FindOne(ctx context.Context, id int64) (Book, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
