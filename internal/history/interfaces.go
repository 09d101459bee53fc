package history

import "context"

// RepositoryInterface defines the interface for prediction history storage
type RepositoryInterface interface {
	Insert(ctx context.Context, entry *Entry) error
	List(ctx context.Context, city string, limit, offset int) ([]Entry, int, error)
}
