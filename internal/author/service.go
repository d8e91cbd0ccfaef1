package author

import (
	"context"

	"github.com/PabloGitu/bookmanagerrmh2/internal/paging"
)

// Service provides author-related business logic.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Save(ctx context.Context, a *Author) error {
	return s.repo.Save(ctx, a)
}

func (s *Service) FindAll(ctx context.Context, p paging.PageRequest) ([]Author, int64, error) {
	return s.repo.FindAll(ctx, p)
}

func (s *Service) FindOne(ctx context.Context, id int64) (Author, error) {
	return s.repo.FindOne(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}
