package explain

import (
	"context"
	"time"

	"github.com/skytrail/tripcast/pkg/config"
)

// Input carries the best-window facts prose is generated from.
type Input struct {
	Destination   string
	WeekStart     time.Time
	Price         float64
	Temperature   float64
	Precipitation float64
	Crowd         float64
	TravelScore   float64
	Confidence    float64
	TripDays      int
	EventNames    []string
}

// Generator produces the explanation and travel tip for a prediction.
type Generator interface {
	Explanation(ctx context.Context, in Input) string
	Tip(ctx context.Context, in Input) string
}

// FromConfig returns the Ollama-backed generator when enabled, otherwise
// the deterministic template generator.
func FromConfig(cfg config.OllamaConfig) Generator {
	if cfg.Enabled {
		return NewOllamaGenerator(cfg)
	}
	return NewTemplateGenerator()
}
