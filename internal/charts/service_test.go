package charts

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skytrail/tripcast/internal/crowds"
	"github.com/skytrail/tripcast/internal/destinations"
	"github.com/skytrail/tripcast/internal/events"
	"github.com/skytrail/tripcast/internal/explain"
	"github.com/skytrail/tripcast/internal/forecast"
	"github.com/skytrail/tripcast/internal/prediction"
	"github.com/skytrail/tripcast/internal/prices"
	"github.com/skytrail/tripcast/internal/scoring"
	"github.com/skytrail/tripcast/internal/weather"
	"github.com/skytrail/tripcast/pkg/common"
	"github.com/skytrail/tripcast/pkg/config"
	"github.com/skytrail/tripcast/pkg/storage"
)

type captureStorage struct {
	keys         []string
	contentTypes []string
	bodies       [][]byte
}

func (s *captureStorage) Upload(_ context.Context, key string, reader io.Reader, _ int64, contentType string) (*storage.UploadResult, error) {
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	s.keys = append(s.keys, key)
	s.contentTypes = append(s.contentTypes, contentType)
	s.bodies = append(s.bodies, body)
	return &storage.UploadResult{Key: key}, nil
}

func (s *captureStorage) Download(_ context.Context, _ string) (io.ReadCloser, error) {
	return nil, nil
}

func (s *captureStorage) Delete(_ context.Context, _ string) error { return nil }

func (s *captureStorage) GetURL(key string) string { return "https://cdn.test/" + key }

func (s *captureStorage) GetPresignedDownloadURL(_ context.Context, _ string, _ time.Duration) (*storage.PresignedURLResult, error) {
	return nil, nil
}

func (s *captureStorage) Exists(_ context.Context, _ string) (bool, error) { return false, nil }

func newTestCharts(reports storage.Storage) *Service {
	forecastCfg := config.ForecastConfig{
		HorizonWeeks:    52,
		MinHistoryWeeks: 8,
		Harmonics:       3,
		HistoryDays:     365,
		HistoryLagDays:  3,
	}
	scoringCfg := config.ScoringConfig{
		PriceWeight:          0.40,
		WeatherWeight:        0.30,
		CrowdWeight:          0.30,
		IdealTemperature:     22,
		TemperatureTolerance: 15,
	}

	eventSvc := events.NewService()
	predictor := prediction.NewService(
		destinations.NewService(),
		prices.NewGenerator(),
		weather.NewService(nil, weather.NewSynthetic(), nil, 0),
		crowds.NewGenerator(eventSvc),
		forecast.NewService(forecastCfg),
		scoring.NewService(scoringCfg),
		eventSvc,
		explain.NewTemplateGenerator(),
		nil,
		nil,
		forecastCfg,
	)
	return NewService(predictor, reports)
}

func TestRenderKnownCity(t *testing.T) {
	svc := newTestCharts(nil)

	var buf bytes.Buffer
	require.NoError(t, svc.Render(context.Background(), &buf, "Paris", 12))

	html := buf.String()
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "Best time to travel to Paris")
	assert.Contains(t, html, "Travel score")
	assert.Contains(t, html, "Nightly price")
	assert.Contains(t, html, "12 week forecast")
}

func TestRenderUnknownCity(t *testing.T) {
	svc := newTestCharts(nil)

	var buf bytes.Buffer
	err := svc.Render(context.Background(), &buf, "Atlantis", 12)
	var unresolvable *destinations.UnresolvableLocationError
	require.ErrorAs(t, err, &unresolvable)
	assert.Zero(t, buf.Len())
}

func TestPublishStoresReport(t *testing.T) {
	reports := &captureStorage{}
	svc := newTestCharts(reports)

	key, err := svc.Publish(context.Background(), "Paris", 8)
	require.NoError(t, err)
	assert.Contains(t, key, "reports/charts/paris/")

	require.Len(t, reports.keys, 1)
	assert.Equal(t, key, reports.keys[0])
	assert.Equal(t, "text/html; charset=utf-8", reports.contentTypes[0])
	assert.Contains(t, string(reports.bodies[0]), "echarts")

	assert.Equal(t, "https://cdn.test/"+key, svc.ReportURL(key))
}

func TestPublishWithoutStorage(t *testing.T) {
	svc := newTestCharts(nil)

	_, err := svc.Publish(context.Background(), "Paris", 8)
	var appErr *common.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.Code)
}
