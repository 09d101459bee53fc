package history

import (
	"context"

	"github.com/skytrail/tripcast/pkg/common"
)

// Service handles prediction history business logic
type Service struct {
	repo RepositoryInterface
}

// NewService creates a new prediction history service
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// Record stores a completed prediction.
func (s *Service) Record(ctx context.Context, entry *Entry) error {
	if entry.City == "" {
		return common.NewBadRequestError("city is required", nil)
	}
	if entry.DataSource == "" {
		entry.DataSource = "synthetic"
	}
	return s.repo.Insert(ctx, entry)
}

// List returns stored predictions newest first. An empty city returns
// predictions for all destinations.
func (s *Service) List(ctx context.Context, city string, limit, offset int) ([]Entry, int, error) {
	entries, total, err := s.repo.List(ctx, city, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, total, nil
}
