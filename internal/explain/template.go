package explain

import (
	"context"
	"fmt"

	"github.com/skytrail/tripcast/internal/tips"
)

// TemplateGenerator produces deterministic prose without an LLM.
type TemplateGenerator struct{}

// NewTemplateGenerator creates a template-based generator.
func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

// Explanation renders the fixed best-week explanation sentence.
func (g *TemplateGenerator) Explanation(_ context.Context, in Input) string {
	var tempDesc string
	switch {
	case in.Temperature >= 18 && in.Temperature <= 26:
		tempDesc = "comfortable"
	case in.Temperature < 18:
		tempDesc = "mild"
	default:
		tempDesc = "warm"
	}

	var crowdDesc string
	switch {
	case in.Crowd < 40:
		crowdDesc = "light tourist crowds"
	case in.Crowd < 70:
		crowdDesc = "moderate tourist levels"
	default:
		crowdDesc = "peak season activity"
	}

	return fmt.Sprintf(
		"%s offers excellent value for %s — flight prices around $%.0f, %s temperatures near %.1f°C, and %s. This week provides an optimal balance across all factors.",
		in.WeekStart.Format("January"), in.Destination, in.Price, tempDesc, in.Temperature, crowdDesc,
	)
}

// Tip composes the template travel tip from the window conditions.
func (g *TemplateGenerator) Tip(_ context.Context, in Input) string {
	return tips.Compose(tips.Context{
		Destination:   in.Destination,
		Start:         in.WeekStart,
		Temperature:   in.Temperature,
		Precipitation: in.Precipitation,
		Crowd:         in.Crowd,
		EventNames:    in.EventNames,
	})
}
