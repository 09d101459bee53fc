package prediction

import (
	"github.com/skytrail/tripcast/internal/events"
)

// Defaults applied to omitted request fields.
const (
	DefaultTripDays   = 7
	DefaultOriginCity = "London"
)

// PredictRequest asks for the best travel window for one destination.
// Explicit coordinates take precedence over the catalog and let callers
// predict for cities the catalog does not know.
type PredictRequest struct {
	Destination   string   `json:"destination" validate:"required"`
	Lat           *float64 `json:"lat" validate:"omitempty,min=-90,max=90"`
	Lon           *float64 `json:"lon" validate:"omitempty,min=-180,max=180"`
	OriginCity    string   `json:"origin_city"`
	StartDate     string   `json:"start_date" validate:"omitempty,iso_date"`
	EndDate       string   `json:"end_date" validate:"omitempty,iso_date"`
	TripDays      int      `json:"trip_days" validate:"omitempty,trip_days"`
	ForecastWeeks int      `json:"forecast_weeks" validate:"omitempty,min=1,max=104"`
	MaxBudget     *float64 `json:"max_budget" validate:"omitempty,gt=0"`
}

// normalize fills omitted fields with their defaults.
func (r *PredictRequest) normalize(defaultWeeks int) {
	if r.TripDays <= 0 {
		r.TripDays = DefaultTripDays
	}
	if r.ForecastWeeks <= 0 {
		r.ForecastWeeks = defaultWeeks
	}
	if r.OriginCity == "" {
		r.OriginCity = DefaultOriginCity
	}
}

// Coordinates echoes the resolved destination coordinates.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Scores breaks the composite travel score into its components.
type Scores struct {
	PriceScore   float64 `json:"price_score"`
	WeatherScore float64 `json:"weather_score"`
	CrowdScore   float64 `json:"crowd_score"`
}

// PredictResponse is the full prediction result.
type PredictResponse struct {
	Destination            string         `json:"destination"`
	Coordinates            Coordinates    `json:"coordinates"`
	OriginCity             string         `json:"origin_city,omitempty"`
	BestStartDate          string         `json:"best_start_date"`
	BestEndDate            string         `json:"best_end_date"`
	PredictedPrice         float64        `json:"predicted_price"`
	PredictedTemp          float64        `json:"predicted_temp"`
	PredictedPrecipitation float64        `json:"predicted_precipitation"`
	PredictedCrowd         float64        `json:"predicted_crowd"`
	TravelScore            float64        `json:"travel_score"`
	Confidence             float64        `json:"confidence"`
	Scores                 Scores         `json:"scores"`
	Explanation            string         `json:"ai_explanation"`
	TravelTip              string         `json:"ai_travel_tip,omitempty"`
	GeneratedAt            string         `json:"generated_at"`
	TripDays               int            `json:"trip_days"`
	DataSource             string         `json:"data_source"`
	Events                 []events.Event `json:"events"`
	EventWarning           string         `json:"event_warning,omitempty"`
	EventSuggestions       []string       `json:"event_suggestions"`
}
