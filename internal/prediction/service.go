package prediction

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/skytrail/tripcast/internal/crowds"
	"github.com/skytrail/tripcast/internal/destinations"
	"github.com/skytrail/tripcast/internal/events"
	"github.com/skytrail/tripcast/internal/explain"
	"github.com/skytrail/tripcast/internal/forecast"
	"github.com/skytrail/tripcast/internal/history"
	"github.com/skytrail/tripcast/internal/prices"
	"github.com/skytrail/tripcast/internal/scoring"
	"github.com/skytrail/tripcast/internal/weather"
	"github.com/skytrail/tripcast/pkg/config"
	"github.com/skytrail/tripcast/pkg/logger"
	"github.com/skytrail/tripcast/pkg/pubsub"
	"github.com/skytrail/tripcast/pkg/tracing"
)

const (
	dateLayout = "2006-01-02"

	dataSourceSynthetic = "synthetic"
	dataSourceLive      = "real_api"

	tracerName = "prediction"
)

// EventPredictionCompleted is published after every successful prediction.
const EventPredictionCompleted = "prediction.completed"

// Service runs the full prediction pipeline for one destination: assemble
// daily history, forecast weekly signals, score, select the best window and
// dress the result with events and generated prose.
type Service struct {
	destinations *destinations.Service
	prices       *prices.Generator
	weather      *weather.Service
	crowds       *crowds.Generator
	forecaster   *forecast.Service
	scorer       *scoring.Service
	events       *events.Service
	texts        explain.Generator
	history      *history.Service
	publisher    pubsub.Publisher
	cfg          config.ForecastConfig
	now          func() time.Time
}

// NewService creates a prediction service.
func NewService(
	dests *destinations.Service,
	priceGen *prices.Generator,
	weatherSvc *weather.Service,
	crowdGen *crowds.Generator,
	forecaster *forecast.Service,
	scorer *scoring.Service,
	eventSvc *events.Service,
	texts explain.Generator,
	hist *history.Service,
	publisher pubsub.Publisher,
	cfg config.ForecastConfig,
) *Service {
	return &Service{
		destinations: dests,
		prices:       priceGen,
		weather:      weatherSvc,
		crowds:       crowdGen,
		forecaster:   forecaster,
		scorer:       scorer,
		events:       eventSvc,
		texts:        texts,
		history:      hist,
		publisher:    publisher,
		cfg:          cfg,
		now:          time.Now,
	}
}

// Predict finds the best travel window for the requested destination,
// attaches the events overlapping that window and records the result.
func (s *Service) Predict(ctx context.Context, req *PredictRequest) (*PredictResponse, error) {
	resp, loc, tripStart, err := s.window(ctx, req)
	if err != nil {
		return nil, err
	}

	tripEnd := tripStart.AddDate(0, 0, req.TripDays)
	assessment := s.events.ForTrip(req.Destination, tripStart, tripEnd)
	resp.Events = assessment.Events
	resp.EventWarning = assessment.Warning
	resp.EventSuggestions = assessment.Suggestions

	s.record(ctx, loc.City, resp, tripStart, tripEnd)
	s.publish(ctx, resp)

	return resp, nil
}

// Window runs the forecast pipeline and returns the best travel window
// without event lookups or persistence. The multi-city planner probes
// candidate cities through it.
func (s *Service) Window(ctx context.Context, req *PredictRequest) (*PredictResponse, error) {
	resp, _, _, err := s.window(ctx, req)
	return resp, err
}

func (s *Service) window(ctx context.Context, req *PredictRequest) (*PredictResponse, *destinations.Location, time.Time, error) {
	req.normalize(s.cfg.HorizonWeeks)

	loc, err := s.destinations.ResolveCoords(req.Destination, req.Lat, req.Lon)
	if err != nil {
		return nil, nil, time.Time{}, err
	}

	histStart, histEnd, err := s.historyWindow(req.StartDate, req.EndDate)
	if err != nil {
		return nil, nil, time.Time{}, err
	}

	scored, err := s.forecastScored(ctx, loc, histStart, histEnd, req.ForecastWeeks)
	if err != nil {
		return nil, nil, time.Time{}, err
	}

	sel, err := s.scorer.SelectBest(scored, req.TripDays, req.MaxBudget)
	if err != nil {
		return nil, nil, time.Time{}, err
	}

	rolling := sel.RollingScores()
	best := rolling[0]
	for _, v := range rolling[1:] {
		if v > best {
			best = v
		}
	}
	confidence := round2(s.scorer.Confidence(rolling, best))

	win := sel.Window
	tripStart := win.WeekStart
	tripEnd := tripStart.AddDate(0, 0, req.TripDays)

	in := explain.Input{
		Destination:   req.Destination,
		WeekStart:     tripStart,
		Price:         win.Price,
		Temperature:   win.Temperature,
		Precipitation: win.Precipitation,
		Crowd:         win.Crowd,
		TravelScore:   win.TravelScore,
		Confidence:    confidence,
		TripDays:      req.TripDays,
	}
	explanation := s.texts.Explanation(ctx, in)
	tip := s.texts.Tip(ctx, in)

	resp := &PredictResponse{
		Destination:            req.Destination,
		Coordinates:            Coordinates{Lat: loc.Lat, Lon: loc.Lon},
		OriginCity:             req.OriginCity,
		BestStartDate:          tripStart.Format(dateLayout),
		BestEndDate:            tripEnd.Format(dateLayout),
		PredictedPrice:         win.Price,
		PredictedTemp:          win.Temperature,
		PredictedPrecipitation: win.Precipitation,
		PredictedCrowd:         win.Crowd,
		TravelScore:            win.TravelScore,
		Confidence:             confidence,
		Scores: Scores{
			PriceScore:   win.PriceScore,
			WeatherScore: win.WeatherScore,
			CrowdScore:   win.CrowdScore,
		},
		Explanation: explanation,
		TravelTip:   tip,
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
		TripDays:    req.TripDays,
		DataSource:  s.dataSource(),
	}

	return resp, loc, tripStart, nil
}

// WeeklyOutlook returns the scored forecast curve for a catalog city over
// the default historical window.
func (s *Service) WeeklyOutlook(ctx context.Context, city string, weeks int) ([]scoring.ScoredWeek, error) {
	loc, err := s.destinations.Resolve(city)
	if err != nil {
		return nil, err
	}

	if weeks <= 0 {
		weeks = s.cfg.HorizonWeeks
	}

	histStart, histEnd, err := s.historyWindow("", "")
	if err != nil {
		return nil, err
	}

	return s.forecastScored(ctx, loc, histStart, histEnd, weeks)
}

// forecastScored assembles daily history for the location, projects it the
// requested number of weeks ahead and scores every projected week.
func (s *Service) forecastScored(ctx context.Context, loc *destinations.Location, histStart, histEnd time.Time, weeks int) ([]scoring.ScoredWeek, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "prediction.assemble_history")
	priceDays := s.prices.Daily(loc.City, histStart, histEnd)
	weatherDays := s.weather.Daily(ctx, loc.Lat, loc.Lon, histStart, histEnd)
	crowdDays := s.crowds.Daily(loc.City, histStart, histEnd)
	span.End()

	_, span = tracing.StartSpan(ctx, tracerName, "prediction.forecast")
	defer span.End()

	weekly, err := s.forecaster.PrepareWeekly(loc.City, priceDays, weatherDays, crowdDays)
	if err != nil {
		return nil, err
	}

	points, err := s.projector(weeks).Project(loc.City, weekly)
	if err != nil {
		return nil, err
	}

	return s.scorer.Score(points), nil
}

// historyWindow resolves the daily history period. Defaults end the window
// HistoryLagDays before today and reach HistoryDays back; explicit dates
// override either end. An end date in the future is pulled back to the
// default.
func (s *Service) historyWindow(startStr, endStr string) (time.Time, time.Time, error) {
	today := dayOf(s.now())
	defaultEnd := today.AddDate(0, 0, -s.cfg.HistoryLagDays)

	end := defaultEnd
	if endStr != "" {
		parsed, err := time.Parse(dateLayout, endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = dayOf(parsed)
	}

	explicitStart := startStr != ""
	var start time.Time
	if explicitStart {
		parsed, err := time.Parse(dateLayout, startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = dayOf(parsed)
	} else {
		start = end.AddDate(0, 0, -s.cfg.HistoryDays)
	}

	if end.After(today) {
		logger.Warn("historical end date is in the future, adjusting",
			zap.String("requested", end.Format(dateLayout)),
			zap.String("adjusted", defaultEnd.Format(dateLayout)),
		)
		end = defaultEnd
		if !explicitStart {
			start = end.AddDate(0, 0, -s.cfg.HistoryDays)
		}
	}

	return start, end, nil
}

// projector returns a forecast service with the requested horizon, reusing
// the shared one when the horizon matches.
func (s *Service) projector(weeks int) *forecast.Service {
	if weeks <= 0 || weeks == s.cfg.HorizonWeeks {
		return s.forecaster
	}
	cfg := s.cfg
	cfg.HorizonWeeks = weeks
	return forecast.NewService(cfg)
}

func (s *Service) dataSource() string {
	if s.weather.Live() {
		return dataSourceLive
	}
	return dataSourceSynthetic
}

// record persists the prediction. Failures are logged, never surfaced; a
// down database must not block predictions.
func (s *Service) record(ctx context.Context, city string, resp *PredictResponse, tripStart, tripEnd time.Time) {
	if s.history == nil {
		return
	}

	entry := &history.Entry{
		City:           city,
		BestStartDate:  tripStart,
		BestEndDate:    tripEnd,
		PredictedPrice: resp.PredictedPrice,
		TravelScore:    resp.TravelScore,
		Confidence:     resp.Confidence,
		TripDays:       resp.TripDays,
		DataSource:     resp.DataSource,
	}
	if err := s.history.Record(ctx, entry); err != nil {
		logger.Warn("failed to record prediction history",
			zap.String("city", city),
			zap.Error(err),
		)
	}
}

// publish emits the completion event. Best effort.
func (s *Service) publish(ctx context.Context, resp *PredictResponse) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, EventPredictionCompleted, resp); err != nil {
		logger.Warn("failed to publish prediction event",
			zap.String("destination", resp.Destination),
			zap.Error(err),
		)
	}
}

func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
