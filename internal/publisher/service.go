package publisher

import (
	"context"

	"github.com/PabloGitu/bookmanagerrmh2/internal/paging"
)

// Service provides publisher-related business logic.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Save(ctx context.Context, p *Publisher) error {
	return s.repo.Save(ctx, p)
}

func (s *Service) FindAll(ctx context.Context, page paging.PageRequest) ([]Publisher, int64, error) {
	return s.repo.FindAll(ctx, page)
}

func (s *Service) FindOne(ctx context.Context, id int64) (Publisher, error) {
	return s.repo.FindOne(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}
