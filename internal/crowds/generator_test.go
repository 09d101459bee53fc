package crowds

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skytrail/tripcast/internal/events"
)

func TestDailyBoundsAndRange(t *testing.T) {
	g := NewGenerator(events.NewService())
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	got := g.Daily("London", start, end)

	require.Len(t, got, 365)
	assert.Equal(t, start, got[0].Date)
	assert.Equal(t, end, got[len(got)-1].Date)
	for _, p := range got {
		assert.GreaterOrEqual(t, p.Value, 0.0)
		assert.LessOrEqual(t, p.Value, 100.0)
	}
}

func TestDailyDeterministic(t *testing.T) {
	g := NewGenerator(events.NewService())
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, g.Daily("Paris", start, end), g.Daily("Paris", start, end))
}

func TestDailyEventMonthUplift(t *testing.T) {
	plain := NewGenerator(nil)
	withEvents := NewGenerator(events.NewService())
	day := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)

	base := plain.Daily("Paris", day, day)
	lifted := withEvents.Daily("Paris", day, day)
	require.Len(t, base, 1)
	require.Len(t, lifted, 1)

	// Paris Fashion Week makes March a medium-impact month.
	assert.InDelta(t, base[0].Value*1.3, lifted[0].Value, 1e-9)
	assert.Less(t, lifted[0].Value, 100.0)
}

func TestDailyUpliftClippedAtHundred(t *testing.T) {
	g := NewGenerator(events.NewService())
	day := time.Date(2027, 3, 20, 0, 0, 0, 0, time.UTC)

	// Tokyo in March is high impact, 1.6x pushes past the cap.
	got := g.Daily("Tokyo", day, day)
	require.Len(t, got, 1)
	assert.Equal(t, 100.0, got[0].Value)
}

func TestDailyOffMonthMatchesPlainSeries(t *testing.T) {
	plain := NewGenerator(nil)
	withEvents := NewGenerator(events.NewService())
	start := time.Date(2027, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2027, 5, 10, 0, 0, 0, 0, time.UTC)

	// London has no catalog events in May.
	assert.Equal(t, plain.Daily("London", start, end), withEvents.Daily("London", start, end))
}

func TestDailyEmptyWhenEndBeforeStart(t *testing.T) {
	g := NewGenerator(nil)
	start := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, g.Daily("Rome", start, start.AddDate(0, 0, -1)))
}
