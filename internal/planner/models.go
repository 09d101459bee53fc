package planner

import (
	"github.com/google/uuid"

	"github.com/skytrail/tripcast/internal/events"
	"github.com/skytrail/tripcast/internal/prediction"
	"github.com/skytrail/tripcast/internal/route"
)

// Defaults applied to omitted stay constraints.
const (
	DefaultMinDays = 2
	DefaultMaxDays = 7
)

// CityStopRequest is one requested stop with its stay constraints.
// Explicit coordinates let callers plan through cities the catalog does
// not know.
type CityStopRequest struct {
	City          string   `json:"city" validate:"required"`
	Lat           *float64 `json:"lat" validate:"omitempty,min=-90,max=90"`
	Lon           *float64 `json:"lon" validate:"omitempty,min=-180,max=180"`
	MinDays       int      `json:"min_days" validate:"omitempty,min=1"`
	MaxDays       int      `json:"max_days" validate:"omitempty,min=1"`
	PreferredDays int      `json:"preferred_days" validate:"omitempty,min=1"`
}

// PlanRequest asks for a complete multi-city itinerary.
type PlanRequest struct {
	Cities        []CityStopRequest `json:"cities" validate:"required,min=2,dive"`
	TotalDays     int               `json:"total_days" validate:"required,min=3,max=60"`
	OriginCity    string            `json:"origin_city"`
	StartDate     string            `json:"start_date" validate:"omitempty,iso_date"`
	OptimizeRoute *bool             `json:"optimize_route"`
	ForecastWeeks int               `json:"forecast_weeks" validate:"omitempty,min=1,max=104"`
	MaxBudget     *float64          `json:"max_budget" validate:"omitempty,gt=0"`
	Store         bool              `json:"store"`
}

// normalize fills omitted fields with their defaults.
func (r *PlanRequest) normalize(defaultWeeks int) {
	for i := range r.Cities {
		if r.Cities[i].MinDays <= 0 {
			r.Cities[i].MinDays = DefaultMinDays
		}
		if r.Cities[i].MaxDays <= 0 {
			r.Cities[i].MaxDays = DefaultMaxDays
		}
	}
	if r.OriginCity == "" {
		r.OriginCity = prediction.DefaultOriginCity
	}
	if r.ForecastWeeks <= 0 {
		r.ForecastWeeks = defaultWeeks
	}
}

// optimize reports whether route optimization was requested. It defaults
// on when the field is omitted.
func (r *PlanRequest) optimize() bool {
	return r.OptimizeRoute == nil || *r.OptimizeRoute
}

// VisitWeather is the forecast weather for one stay.
type VisitWeather struct {
	Temperature   float64 `json:"temperature"`
	Precipitation float64 `json:"precipitation"`
}

// CityVisit is one scheduled stop with its forecast and events. The
// prediction fields are nil when forecasting the city failed; Error then
// carries the reason and the stop still schedules and prices at zero.
type CityVisit struct {
	City             string                 `json:"city"`
	Order            int                    `json:"order"`
	StartDate        string                 `json:"start_date"`
	EndDate          string                 `json:"end_date"`
	Days             int                    `json:"days"`
	Coordinates      prediction.Coordinates `json:"coordinates"`
	PredictedWeather *VisitWeather          `json:"predicted_weather,omitempty"`
	PredictedPrice   *float64               `json:"predicted_price,omitempty"`
	PredictedCrowd   *float64               `json:"predicted_crowd,omitempty"`
	TravelScore      *float64               `json:"travel_score,omitempty"`
	Confidence       *float64               `json:"confidence,omitempty"`
	Scores           *prediction.Scores     `json:"scores,omitempty"`
	Explanation      string                 `json:"ai_explanation,omitempty"`
	TravelTip        string                 `json:"ai_travel_tip,omitempty"`
	FromCity         string                 `json:"from_city"`
	Events           []events.Event         `json:"events"`
	EventWarning     string                 `json:"event_warning,omitempty"`
	EventSuggestions []string               `json:"event_suggestions"`
	HasMajorEvents   bool                   `json:"has_major_events"`
	Error            string                 `json:"error,omitempty"`
}

// FlightEstimate is one estimated flight leg.
type FlightEstimate struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	DistanceKm float64 `json:"distance_km"`
	Cost       float64 `json:"cost"`
}

// CostBreakdown itemizes the estimated trip cost.
type CostBreakdown struct {
	TotalHotel   float64            `json:"total_hotel"`
	TotalFlights float64            `json:"total_flights"`
	TotalCost    float64            `json:"total_cost"`
	PerPerson    float64            `json:"per_person"`
	Breakdown    map[string]float64 `json:"breakdown"`
	Flights      []FlightEstimate   `json:"flights"`
}

// ScoreSummary aggregates the per-city travel scores.
type ScoreSummary struct {
	Overall float64 `json:"overall"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// RouteInfo reports the visiting order and how it was chosen.
type RouteInfo struct {
	Order              []string    `json:"order"`
	WasOptimized       bool        `json:"was_optimized"`
	OptimizationMethod string      `json:"optimization_method"`
	Segments           []route.Leg `json:"segments"`
	TotalKm            float64     `json:"total_km"`
}

// PlanMetadata describes how a plan was produced.
type PlanMetadata struct {
	ForecastWeeks       int    `json:"forecast_weeks"`
	OptimizationEnabled bool   `json:"optimization_enabled"`
	NumberOfCities      int    `json:"number_of_cities"`
	GeneratedAt         string `json:"generated_at"`
}

// Plan is a complete multi-city itinerary.
type Plan struct {
	ID              uuid.UUID     `json:"id"`
	OriginCity      string        `json:"origin_city"`
	Cities          []string      `json:"cities"`
	TotalDays       int           `json:"total_days"`
	StartDate       string        `json:"start_date"`
	EndDate         string        `json:"end_date"`
	RouteOptimized  bool          `json:"route_optimized"`
	RouteInfo       RouteInfo     `json:"route_info"`
	TotalDistanceKm float64       `json:"total_distance_km"`
	Itinerary       []CityVisit   `json:"itinerary"`
	CostBreakdown   CostBreakdown `json:"cost_breakdown"`
	OverallScore    ScoreSummary  `json:"overall_score"`
	Summary         string        `json:"summary"`
	Metadata        PlanMetadata  `json:"metadata"`
	GeneratedAt     string        `json:"generated_at"`
}

// Progress event types emitted while a plan is built.
const (
	ProgressStatus   = "status"
	ProgressError    = "error"
	ProgressComplete = "complete"
)

// Progress is one planning progress update.
type Progress struct {
	Type        string `json:"type"`
	Message     string `json:"message"`
	Progress    int    `json:"progress"`
	CurrentCity string `json:"current_city,omitempty"`
	Result      *Plan  `json:"result,omitempty"`
}

// ProgressFunc receives progress updates during planning.
type ProgressFunc func(Progress)
