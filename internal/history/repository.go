package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Shared column list for prediction history queries
const entryColumns = `id, city, best_start_date, best_end_date, predicted_price,
	travel_score, confidence, trip_days, data_source, created_at`

// Repository handles prediction history data access
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new prediction history repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Insert stores one prediction outcome. A missing ID or timestamp is filled
// in before the write.
func (r *Repository) Insert(ctx context.Context, entry *Entry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO prediction_history (
			id, city, best_start_date, best_end_date, predicted_price,
			travel_score, confidence, trip_days, data_source, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		entry.ID, entry.City, entry.BestStartDate, entry.BestEndDate, entry.PredictedPrice,
		entry.TravelScore, entry.Confidence, entry.TripDays, entry.DataSource, entry.CreatedAt,
	)
	return err
}

// List returns stored predictions newest first, optionally filtered by city.
func (r *Repository) List(ctx context.Context, city string, limit, offset int) ([]Entry, int, error) {
	where := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if city != "" {
		where = fmt.Sprintf("LOWER(city) = LOWER($%d)", argIdx)
		args = append(args, city)
		argIdx++
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM prediction_history WHERE %s`, where)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM prediction_history WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		entryColumns, where, argIdx, argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.City, &e.BestStartDate, &e.BestEndDate, &e.PredictedPrice,
			&e.TravelScore, &e.Confidence, &e.TripDays, &e.DataSource, &e.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}
