package book

import (
	"context"

	"github.com/PabloGitu/bookmanagerrmh2/internal/paging"
)

// Service provides book-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Save inserts b when its ID is zero and updates it otherwise.
func (s *Service) Save(ctx context.Context, b *Book) error {
	return s.repo.Save(ctx, b)
}

// FindAll returns one page of books plus the total count.
func (s *Service) FindAll(ctx context.Context, p paging.PageRequest) ([]Book, int64, error) {
	return s.repo.FindAll(ctx, p)
}

// FindByAuthor returns one page of an author's books.
func (s *Service) FindByAuthor(ctx context.Context, authorID int64, p paging.PageRequest) ([]Book, int64, error) {
	return s.repo.FindByAuthor(ctx, authorID, p)
}

// FindByPublisher returns one page of a publisher's books.
func (s *Service) FindByPublisher(ctx context.Context, publisherID int64, p paging.PageRequest) ([]Book, int64, error) {
	return s.repo.FindByPublisher(ctx, publisherID, p)
}

// FindOne returns the book with the given id.
func (s *Service) FindOne(ctx context.Context, id int64) (Book, error) {
	return s.repo.FindOne(ctx, id)
}

// Delete removes the book with the given id. It reports whether a row
// was actually deleted; deleting an unknown id is not an error.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}
