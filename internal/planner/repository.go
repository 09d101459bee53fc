package planner

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/skytrail/tripcast/pkg/common"
)

// Repository persists planned itineraries. The full plan is stored as a
// JSON document next to a few queryable columns.
type Repository struct {
	db *sql.DB
}

var _ RepositoryInterface = (*Repository)(nil)

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Insert(ctx context.Context, plan *Plan) error {
	raw, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encode itinerary: %w", err)
	}

	query := `
		INSERT INTO saved_itineraries (
			id, origin_city, total_days, start_date, end_date,
			total_cost, overall_score, plan, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = r.db.ExecContext(ctx, query,
		plan.ID,
		plan.OriginCity,
		plan.TotalDays,
		plan.StartDate,
		plan.EndDate,
		plan.CostBreakdown.TotalCost,
		plan.OverallScore.Overall,
		raw,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert itinerary: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Plan, error) {
	query := `SELECT plan FROM saved_itineraries WHERE id = $1`

	var raw []byte
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewNotFoundError("itinerary not found", err)
		}
		return nil, fmt.Errorf("query itinerary: %w", err)
	}

	var plan Plan
	if err := json.Unmarshal(raw, &plan); err != nil {
		return nil, fmt.Errorf("decode itinerary: %w", err)
	}
	return &plan, nil
}
