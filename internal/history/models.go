package history

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one stored prediction outcome.
type Entry struct {
	ID             uuid.UUID `json:"id"`
	City           string    `json:"city"`
	BestStartDate  time.Time `json:"best_start_date"`
	BestEndDate    time.Time `json:"best_end_date"`
	PredictedPrice float64   `json:"predicted_price"`
	TravelScore    float64   `json:"travel_score"`
	Confidence     float64   `json:"confidence"`
	TripDays       int       `json:"trip_days"`
	DataSource     string    `json:"data_source"`
	CreatedAt      time.Time `json:"created_at"`
}
