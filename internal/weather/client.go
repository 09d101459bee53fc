package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/skytrail/tripcast/internal/forecast"
	"github.com/skytrail/tripcast/pkg/config"
	"github.com/skytrail/tripcast/pkg/httpclient"
	"github.com/skytrail/tripcast/pkg/resilience"
)

const (
	dateLayout = "2006-01-02"

	// The archive API lags a few days behind real time, the forecast API
	// covers roughly two weeks ahead.
	ArchiveLagDays      = 5
	ForecastHorizonDays = 15
)

// dailyFields are the daily aggregates requested from Open-Meteo.
const dailyFields = "temperature_2m_max,temperature_2m_min,precipitation_sum"

type openMeteoResponse struct {
	Daily struct {
		Time             []string  `json:"time"`
		TemperatureMax   []float64 `json:"temperature_2m_max"`
		TemperatureMin   []float64 `json:"temperature_2m_min"`
		PrecipitationSum []float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

// Client fetches daily weather from the Open-Meteo archive and forecast
// APIs through the shared resilient HTTP client and a circuit breaker.
type Client struct {
	archive  *httpclient.Client
	forecast *httpclient.Client
	breaker  *resilience.CircuitBreaker
}

func NewClient(cfg config.OpenMeteoConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	return &Client{
		archive:  httpclient.NewClientWithOptions(cfg.ArchiveURL, timeout, httpclient.WithDefaultRetry()),
		forecast: httpclient.NewClientWithOptions(cfg.ForecastURL, timeout, httpclient.WithDefaultRetry()),
		breaker: resilience.NewCircuitBreaker(resilience.Settings{
			Name:             "open_meteo",
			Interval:         60 * time.Second,
			Timeout:          30 * time.Second,
			FailureThreshold: 5,
		}, nil),
	}
}

// Archive fetches observed daily weather. The API serves data up to a few
// days before now; callers clamp the range first.
func (c *Client) Archive(ctx context.Context, lat, lon float64, start, end time.Time) ([]forecast.WeatherDay, error) {
	return c.fetch(ctx, c.archive, lat, lon, start, end)
}

// Forecast fetches predicted daily weather for the next two weeks.
func (c *Client) Forecast(ctx context.Context, lat, lon float64, start, end time.Time) ([]forecast.WeatherDay, error) {
	return c.fetch(ctx, c.forecast, lat, lon, start, end)
}

func (c *Client) fetch(ctx context.Context, hc *httpclient.Client, lat, lon float64, start, end time.Time) ([]forecast.WeatherDay, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%.4f", lat))
	params.Set("longitude", fmt.Sprintf("%.4f", lon))
	params.Set("start_date", start.Format(dateLayout))
	params.Set("end_date", end.Format(dateLayout))
	params.Set("daily", dailyFields)
	params.Set("timezone", "auto")

	result, err := c.breaker.Execute(ctx, func(ctx context.Context) (interface{}, error) {
		return hc.Get(ctx, "?"+params.Encode(), nil)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weather data: %w", err)
	}

	body, _ := result.([]byte)
	var resp openMeteoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	return daysFromResponse(resp)
}

func daysFromResponse(resp openMeteoResponse) ([]forecast.WeatherDay, error) {
	d := resp.Daily
	if len(d.Time) == 0 {
		return nil, nil
	}
	if len(d.TemperatureMax) != len(d.Time) || len(d.TemperatureMin) != len(d.Time) || len(d.PrecipitationSum) != len(d.Time) {
		return nil, fmt.Errorf("weather response has misaligned daily series")
	}

	out := make([]forecast.WeatherDay, 0, len(d.Time))
	for i, ts := range d.Time {
		date, err := time.Parse(dateLayout, ts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse weather date %q: %w", ts, err)
		}
		out = append(out, forecast.WeatherDay{
			Date:          date,
			Temperature:   (d.TemperatureMax[i] + d.TemperatureMin[i]) / 2,
			Precipitation: d.PrecipitationSum[i],
		})
	}
	return out, nil
}
