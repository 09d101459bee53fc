package explain

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skytrail/tripcast/internal/tips"
)

func TestTemplateExplanationComfortableWeek(t *testing.T) {
	gen := NewTemplateGenerator()

	got := gen.Explanation(context.Background(), Input{
		Destination: "Paris",
		WeekStart:   time.Date(2027, time.June, 14, 0, 0, 0, 0, time.UTC),
		Price:       300.4,
		Temperature: 22.0,
		Crowd:       55.0,
	})

	require.Equal(t,
		"June offers excellent value for Paris — flight prices around $300, comfortable temperatures near 22.0°C, and moderate tourist levels. This week provides an optimal balance across all factors.",
		got)
}

func TestTemplateExplanationMildQuietWeek(t *testing.T) {
	gen := NewTemplateGenerator()

	got := gen.Explanation(context.Background(), Input{
		Destination: "Oslo",
		WeekStart:   time.Date(2027, time.February, 1, 0, 0, 0, 0, time.UTC),
		Price:       218.2,
		Temperature: 3.4,
		Crowd:       25.0,
	})

	require.Equal(t,
		"February offers excellent value for Oslo — flight prices around $218, mild temperatures near 3.4°C, and light tourist crowds. This week provides an optimal balance across all factors.",
		got)
}

func TestTemplateExplanationWarmPeakWeek(t *testing.T) {
	gen := NewTemplateGenerator()

	got := gen.Explanation(context.Background(), Input{
		Destination: "Dubai",
		WeekStart:   time.Date(2027, time.August, 2, 0, 0, 0, 0, time.UTC),
		Price:       412.9,
		Temperature: 34.6,
		Crowd:       81.0,
	})

	require.Equal(t,
		"August offers excellent value for Dubai — flight prices around $413, warm temperatures near 34.6°C, and peak season activity. This week provides an optimal balance across all factors.",
		got)
}

func TestTemplateTipMatchesComposer(t *testing.T) {
	gen := NewTemplateGenerator()

	in := Input{
		Destination:   "Barcelona",
		WeekStart:     time.Date(2027, time.May, 10, 0, 0, 0, 0, time.UTC),
		Temperature:   21.0,
		Precipitation: 1.1,
		Crowd:         45.0,
		EventNames:    []string{"Primavera Sound"},
	}

	want := tips.Compose(tips.Context{
		Destination:   in.Destination,
		Start:         in.WeekStart,
		Temperature:   in.Temperature,
		Precipitation: in.Precipitation,
		Crowd:         in.Crowd,
		EventNames:    in.EventNames,
	})

	require.Equal(t, want, gen.Tip(context.Background(), in))
}
