package comment

import (
	"context"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/PabloGitu/bookmanagerrmh2/internal/paging"
)

// Service provides comment-related business logic. Comment text comes
// from end users, so it is sanitized before it is stored.
type Service struct {
	repo   Repository
	policy *bluemonday.Policy
	now    func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:   repo,
		policy: bluemonday.UGCPolicy(),
		now:    time.Now,
	}
}

// Save sanitizes the text, stamps new comments with the current time
// and stores the result.
func (s *Service) Save(ctx context.Context, c *Comment) error {
	c.Text = s.policy.Sanitize(c.Text)
	if c.ID == 0 && c.Date == "" {
		c.Date = s.now().UTC().Format(time.RFC3339)
	}
	return s.repo.Save(ctx, c)
}

func (s *Service) FindAll(ctx context.Context, p paging.PageRequest) ([]Comment, int64, error) {
	return s.repo.FindAll(ctx, p)
}

func (s *Service) FindByBook(ctx context.Context, bookID int64, p paging.PageRequest) ([]Comment, int64, error) {
	return s.repo.FindByBook(ctx, bookID, p)
}

func (s *Service) FindOne(ctx context.Context, id int64) (Comment, error) {
	return s.repo.FindOne(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.repo.Delete(ctx, id)
}
