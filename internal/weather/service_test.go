package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skytrail/tripcast/pkg/config"
)

type fakeCache struct {
	store    map[string]string
	getCalls int
	setCalls int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string]string)}
}

func (f *fakeCache) SetWithExpiration(_ context.Context, key string, value interface{}, _ time.Duration) error {
	f.setCalls++
	f.store[key] = value.(string)
	return nil
}

func (f *fakeCache) GetString(_ context.Context, key string) (string, error) {
	f.getCalls++
	return f.store[key], nil
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.store, k)
	}
	return nil
}

func (f *fakeCache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := f.store[key]
	return ok, nil
}

func (f *fakeCache) Close() error { return nil }

func TestDailyWithoutClientIsSynthetic(t *testing.T) {
	synth := NewSynthetic()
	svc := NewService(nil, synth, nil, 0)

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	got := svc.Daily(context.Background(), 48.8566, 2.3522, start, end)

	assert.Equal(t, synth.Daily(48.8566, 2.3522, start, end), got)
}

func TestDailyUsesCache(t *testing.T) {
	cache := newFakeCache()
	svc := NewService(nil, NewSynthetic(), cache, time.Hour)

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	first := svc.Daily(context.Background(), 48.8566, 2.3522, start, end)
	second := svc.Daily(context.Background(), 48.8566, 2.3522, start, end)

	require.Len(t, first, 14)
	assert.Equal(t, 1, cache.setCalls)
	assert.Equal(t, 2, cache.getCalls)

	require.Len(t, second, len(first))
	for i := range first {
		assert.True(t, first[i].Date.Equal(second[i].Date))
		assert.InDelta(t, first[i].Temperature, second[i].Temperature, 1e-9)
		assert.InDelta(t, first[i].Precipitation, second[i].Precipitation, 1e-9)
	}
}

func TestDailyStitchesArchiveGapAndForecast(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/archive", openMeteoStub(t))
	mux.HandleFunc("/forecast", openMeteoStub(t))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(config.OpenMeteoConfig{
		ArchiveURL:     srv.URL + "/archive",
		ForecastURL:    srv.URL + "/forecast",
		TimeoutSeconds: 5,
	})
	svc := NewService(client, NewSynthetic(), nil, 0)
	svc.now = func() time.Time { return time.Date(2025, 6, 20, 9, 30, 0, 0, time.UTC) }

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 25, 0, 0, 0, 0, time.UTC)

	got := svc.Daily(context.Background(), 48.86, 2.35, start, end)

	require.Len(t, got, 25)
	for i, d := range got {
		assert.True(t, d.Date.Equal(start.AddDate(0, 0, i)), "day %d out of order", i)
	}

	// Archive covers June 1-15 and the forecast June 20-25, both stubbed
	// at 15 °C. The 16th through the 19th fall in the API gap and are
	// synthesized.
	stubbed := 0
	for _, d := range got {
		if d.Temperature == 15.0 {
			stubbed++
		}
	}
	assert.Equal(t, 21, stubbed)
}

func TestDailyFallsBackToSyntheticWhenArchiveFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/forecast", openMeteoStub(t))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	// The archive path is not registered, so those calls 404 and the
	// period is synthesized instead.
	client := NewClient(config.OpenMeteoConfig{
		ArchiveURL:     srv.URL + "/archive",
		ForecastURL:    srv.URL + "/forecast",
		TimeoutSeconds: 5,
	})
	svc := NewService(client, NewSynthetic(), nil, 0)
	svc.now = func() time.Time { return time.Date(2025, 6, 20, 9, 30, 0, 0, time.UTC) }

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 25, 0, 0, 0, 0, time.UTC)

	got := svc.Daily(context.Background(), 48.86, 2.35, start, end)

	require.Len(t, got, 25)
	for i, d := range got {
		assert.True(t, d.Date.Equal(start.AddDate(0, 0, i)), "day %d out of order", i)
	}
}

func TestDailyPastOnlyWindowSkipsForecast(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/archive", openMeteoStub(t))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(config.OpenMeteoConfig{
		ArchiveURL:     srv.URL + "/archive",
		ForecastURL:    srv.URL + "/forecast",
		TimeoutSeconds: 5,
	})
	svc := NewService(client, NewSynthetic(), nil, 0)
	svc.now = func() time.Time { return time.Date(2025, 6, 20, 9, 30, 0, 0, time.UTC) }

	// History assembly window: a year back, ending three days before now.
	start := time.Date(2024, 6, 18, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC)

	got := svc.Daily(context.Background(), 48.86, 2.35, start, end)

	require.Len(t, got, 365)
	assert.True(t, got[0].Date.Equal(start))
	assert.True(t, got[len(got)-1].Date.Equal(end))
}
