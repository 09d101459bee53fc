package scoring

import "time"

// ScoredWeek is one forecasted week with its component and composite
// scores. RollingScore is populated during window selection, over the
// candidate set only.
type ScoredWeek struct {
	WeekStart     time.Time `json:"week_start"`
	Price         float64   `json:"price"`
	Temperature   float64   `json:"temperature"`
	Precipitation float64   `json:"precipitation"`
	Crowd         float64   `json:"crowd"`
	PriceScore    float64   `json:"price_score"`
	WeatherScore  float64   `json:"weather_score"`
	CrowdScore    float64   `json:"crowd_score"`
	TravelScore   float64   `json:"travel_score"`
	RollingScore  float64   `json:"rolling_score"`
}

// Window is the chosen best travel window. TravelScore is the rolling
// trip-window score at the chosen week, the component scores are that
// week's own. Values are rounded for presentation: price and travel score
// to 2 decimals, the rest to 1.
type Window struct {
	WeekStart     time.Time `json:"week_start"`
	TripDays      int       `json:"trip_days"`
	Price         float64   `json:"price"`
	Temperature   float64   `json:"temperature"`
	Precipitation float64   `json:"precipitation"`
	Crowd         float64   `json:"crowd"`
	PriceScore    float64   `json:"price_score"`
	WeatherScore  float64   `json:"weather_score"`
	CrowdScore    float64   `json:"crowd_score"`
	TravelScore   float64   `json:"travel_score"`
}

// Selection is the outcome of best-window selection: the window itself
// plus the candidate weeks it was chosen from, with rolling scores filled
// in. Candidates feed the confidence estimate.
type Selection struct {
	Window     Window       `json:"window"`
	Candidates []ScoredWeek `json:"candidates"`
}

// RollingScores returns the candidates' rolling scores in week order.
func (s *Selection) RollingScores() []float64 {
	out := make([]float64, len(s.Candidates))
	for i, c := range s.Candidates {
		out[i] = c.RollingScore
	}
	return out
}
