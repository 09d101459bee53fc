package planner

import (
	"context"

	"github.com/google/uuid"
)

// RepositoryInterface defines the persistence operations for saved
// itineraries.
type RepositoryInterface interface {
	Insert(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, id uuid.UUID) (*Plan, error)
}
