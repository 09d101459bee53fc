package charts

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/skytrail/tripcast/internal/prediction"
	"github.com/skytrail/tripcast/internal/scoring"
	"github.com/skytrail/tripcast/pkg/common"
	"github.com/skytrail/tripcast/pkg/storage"
)

// Service renders weekly forecast outlooks as standalone HTML charts.
type Service struct {
	prediction *prediction.Service
	reports    storage.Storage
}

// NewService creates a chart service. reports may be nil; publishing is
// then disabled.
func NewService(predictor *prediction.Service, reports storage.Storage) *Service {
	return &Service{prediction: predictor, reports: reports}
}

// Render writes the weekly outlook chart for a city as a standalone HTML
// page.
func (s *Service) Render(ctx context.Context, w io.Writer, city string, weeks int) error {
	outlook, err := s.prediction.WeeklyOutlook(ctx, city, weeks)
	if err != nil {
		return err
	}
	return renderOutlook(w, city, outlook)
}

// Publish renders the chart and archives it to object storage, returning
// the stored key.
func (s *Service) Publish(ctx context.Context, city string, weeks int) (string, error) {
	if s.reports == nil {
		return "", common.NewServiceUnavailableError("report storage is not configured")
	}

	outlook, err := s.prediction.WeeklyOutlook(ctx, city, weeks)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := renderOutlook(&buf, city, outlook); err != nil {
		return "", err
	}

	key := storage.GenerateChartReportKey(city, outlook[0].WeekStart)
	contentType := storage.ContentTypeForFormat("html")
	if _, err := s.reports.Upload(ctx, key, bytes.NewReader(buf.Bytes()), int64(buf.Len()), contentType); err != nil {
		return "", fmt.Errorf("upload chart report: %w", err)
	}
	return key, nil
}

// ReportURL returns the public URL for a published report key.
func (s *Service) ReportURL(key string) string {
	if s.reports == nil {
		return ""
	}
	return s.reports.GetURL(key)
}

func renderOutlook(w io.Writer, city string, weeks []scoring.ScoredWeek) error {
	labels := make([]string, len(weeks))
	travel := make([]opts.LineData, len(weeks))
	price := make([]opts.LineData, len(weeks))
	weather := make([]opts.LineData, len(weeks))
	crowd := make([]opts.LineData, len(weeks))
	nightly := make([]opts.LineData, len(weeks))

	for i, wk := range weeks {
		labels[i] = wk.WeekStart.Format("2006-01-02")
		travel[i] = opts.LineData{Value: wk.TravelScore}
		price[i] = opts.LineData{Value: wk.PriceScore}
		weather[i] = opts.LineData{Value: wk.WeatherScore}
		crowd[i] = opts.LineData{Value: wk.CrowdScore}
		nightly[i] = opts.LineData{Value: wk.Price}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: fmt.Sprintf("%s travel outlook", city),
			Width:     "1100px",
			Height:    "520px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Best time to travel to %s", city),
			Subtitle: fmt.Sprintf("%d week forecast", len(weeks)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Score", Min: 0, Max: 100}),
	)
	line.ExtendYAxis(opts.YAxis{Name: "Nightly price", Type: "value"})

	smooth := charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)})
	priceAxis := charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true), YAxisIndex: 1})

	line.SetXAxis(labels).
		AddSeries("Travel score", travel, smooth).
		AddSeries("Price score", price, smooth).
		AddSeries("Weather score", weather, smooth).
		AddSeries("Crowd score", crowd, smooth).
		AddSeries("Nightly price", nightly, priceAxis)

	return line.Render(w)
}
