package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/skytrail/tripcast/internal/allocation"
	"github.com/skytrail/tripcast/internal/destinations"
	"github.com/skytrail/tripcast/internal/events"
	"github.com/skytrail/tripcast/internal/prediction"
	"github.com/skytrail/tripcast/internal/route"
	"github.com/skytrail/tripcast/pkg/common"
	"github.com/skytrail/tripcast/pkg/config"
	"github.com/skytrail/tripcast/pkg/i18n"
	"github.com/skytrail/tripcast/pkg/logger"
	"github.com/skytrail/tripcast/pkg/pubsub"
	"github.com/skytrail/tripcast/pkg/storage"
	"github.com/skytrail/tripcast/pkg/tracing"
)

const (
	dateLayout = "2006-01-02"

	tracerName = "planner"
)

// EventItineraryPlanned is published after every successful plan.
const EventItineraryPlanned = "itinerary.planned"

// Service plans multi-city itineraries: it orders the stops, splits the
// days, anchors the start date on per-city forecasts and prices the trip.
type Service struct {
	destinations *destinations.Service
	prediction   *prediction.Service
	events       *events.Service
	optimizer    *route.Optimizer
	repo         RepositoryInterface
	exports      storage.Storage
	publisher    pubsub.Publisher
	cfg          config.PlannerConfig
	routeCfg     config.RouteConfig
	forecast     config.ForecastConfig
	now          func() time.Time
}

// NewService creates a planner service. repo, exports and publisher may be
// nil; saving, archiving and events are then disabled.
func NewService(
	dests *destinations.Service,
	predictor *prediction.Service,
	eventSvc *events.Service,
	optimizer *route.Optimizer,
	repo RepositoryInterface,
	exports storage.Storage,
	publisher pubsub.Publisher,
	cfg config.PlannerConfig,
	routeCfg config.RouteConfig,
	forecastCfg config.ForecastConfig,
) *Service {
	return &Service{
		destinations: dests,
		prediction:   predictor,
		events:       eventSvc,
		optimizer:    optimizer,
		repo:         repo,
		exports:      exports,
		publisher:    publisher,
		cfg:          cfg,
		routeCfg:     routeCfg,
		forecast:     forecastCfg,
		now:          time.Now,
	}
}

// stop pairs a resolved location with the stay constraints from the
// request.
type stop struct {
	loc  *destinations.Location
	stay allocation.Stop
}

// Plan builds a complete multi-city itinerary.
func (s *Service) Plan(ctx context.Context, req *PlanRequest) (*Plan, error) {
	return s.plan(ctx, req, nil)
}

// PlanWithProgress builds the itinerary while reporting pipeline progress
// through emit.
func (s *Service) PlanWithProgress(ctx context.Context, req *PlanRequest, emit ProgressFunc) (*Plan, error) {
	return s.plan(ctx, req, emit)
}

// SavedPlan fetches a stored itinerary.
func (s *Service) SavedPlan(ctx context.Context, id uuid.UUID) (*Plan, error) {
	if s.repo == nil {
		return nil, common.NewNotFoundError("itinerary not found", nil)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) plan(ctx context.Context, req *PlanRequest, emit ProgressFunc) (*Plan, error) {
	req.normalize(s.forecast.HorizonWeeks)

	ctx, span := tracing.StartSpan(ctx, tracerName, "planner.plan")
	defer span.End()

	report(emit, Progress{
		Type:     ProgressStatus,
		Message:  fmt.Sprintf("Processing %d cities...", len(req.Cities)),
		Progress: 5,
	})

	stops, err := s.resolveStops(req.Cities)
	if err != nil {
		return nil, err
	}

	ordered, method := s.orderStops(stops, req.optimize(), emit)

	report(emit, Progress{Type: ProgressStatus, Message: "Allocating days to each city...", Progress: 20})
	alloc, err := allocation.Allocate(stays(ordered), req.TotalDays)
	if err != nil {
		return nil, err
	}

	startDate, err := s.startDate(ctx, req, ordered, alloc, emit)
	if err != nil {
		return nil, err
	}

	itinerary := s.buildItinerary(ctx, req, ordered, alloc, startDate, emit)

	report(emit, Progress{Type: ProgressStatus, Message: "Calculating trip costs...", Progress: 85})
	originLat, originLon := s.originCoords(req.OriginCity)
	costs := s.tripCosts(itinerary, req.OriginCity, originLat, originLon)

	if req.MaxBudget != nil && costs.TotalCost > *req.MaxBudget {
		return nil, &common.InfeasibleConstraintError{
			Constraint: "max_budget",
			Minimum:    costs.TotalCost,
			Message: fmt.Sprintf(
				"no itinerary found within budget of $%.2f, minimum predicted cost is $%.2f",
				*req.MaxBudget, costs.TotalCost,
			),
		}
	}

	report(emit, Progress{Type: ProgressStatus, Message: "Finalizing itinerary...", Progress: 90})

	score := overallScore(itinerary)
	generatedAt := s.now().UTC().Format(time.RFC3339)

	plan := &Plan{
		ID:              uuid.New(),
		OriginCity:      req.OriginCity,
		Cities:          cityNames(ordered),
		TotalDays:       req.TotalDays,
		StartDate:       startDate.Format(dateLayout),
		EndDate:         startDate.AddDate(0, 0, req.TotalDays).Format(dateLayout),
		RouteOptimized:  req.optimize(),
		RouteInfo:       routeInfo(ordered, req.optimize(), method),
		TotalDistanceKm: round1(s.totalDistance(itinerary, originLat, originLon)),
		Itinerary:       itinerary,
		CostBreakdown:   costs,
		OverallScore:    score,
		Summary:         summary(req.OriginCity, itinerary, costs, score),
		Metadata: PlanMetadata{
			ForecastWeeks:       req.ForecastWeeks,
			OptimizationEnabled: req.optimize(),
			NumberOfCities:      len(ordered),
			GeneratedAt:         generatedAt,
		},
		GeneratedAt: generatedAt,
	}

	if req.Store {
		s.save(ctx, plan)
	}
	s.export(ctx, plan)
	s.publish(ctx, plan)

	return plan, nil
}

func (s *Service) resolveStops(cities []CityStopRequest) ([]stop, error) {
	stops := make([]stop, len(cities))
	for i, c := range cities {
		loc, err := s.destinations.ResolveCoords(c.City, c.Lat, c.Lon)
		if err != nil {
			return nil, err
		}
		stops[i] = stop{
			loc: loc,
			stay: allocation.Stop{
				City:          loc.City,
				MinDays:       c.MinDays,
				MaxDays:       c.MaxDays,
				PreferredDays: c.PreferredDays,
			},
		}
	}
	return stops, nil
}

// orderStops applies route optimization when requested and there are more
// than two stops; otherwise the input order stands.
func (s *Service) orderStops(stops []stop, optimize bool, emit ProgressFunc) ([]stop, string) {
	if !optimize || len(stops) <= 2 {
		return stops, route.MethodManual
	}

	report(emit, Progress{Type: ProgressStatus, Message: "Optimizing route...", Progress: 15})

	routeStops := make([]route.Stop, len(stops))
	for i, st := range stops {
		routeStops[i] = route.Stop{City: st.loc.City, Lat: st.loc.Lat, Lon: st.loc.Lon}
	}
	orderedStops, method := s.optimizer.Optimize(routeStops)

	byCity := make(map[string]stop, len(stops))
	for _, st := range stops {
		byCity[st.loc.City] = st
	}
	ordered := make([]stop, len(orderedStops))
	for i, rs := range orderedStops {
		ordered[i] = byCity[rs.City]
	}

	logger.Info("optimized route",
		zap.Strings("order", cityNames(ordered)),
		zap.String("method", method),
	)
	return ordered, method
}

// startDate resolves the trip start: the explicit request date when given,
// otherwise the forecast-anchored optimum.
func (s *Service) startDate(ctx context.Context, req *PlanRequest, ordered []stop, alloc map[string]int, emit ProgressFunc) (time.Time, error) {
	if req.StartDate != "" {
		parsed, err := time.Parse(dateLayout, req.StartDate)
		if err != nil {
			return time.Time{}, common.NewBadRequestError("invalid start_date format, use YYYY-MM-DD", err)
		}
		return parsed, nil
	}

	report(emit, Progress{Type: ProgressStatus, Message: "Finding optimal travel dates...", Progress: 25})
	return s.anchorStart(ctx, req, ordered, alloc), nil
}

// anchorStart picks the trip start so the best-forecast city is visited
// during its best window. Cities are probed with an even budget split when
// one is set; a city infeasible only because of the split is probed again
// without it. When every probe fails, or the anchored start has already
// passed, the trip starts FallbackLeadWeeks from now.
func (s *Service) anchorStart(ctx context.Context, req *PlanRequest, ordered []stop, alloc map[string]int) time.Time {
	var perCity *float64
	if req.MaxBudget != nil && len(ordered) > 0 {
		split := *req.MaxBudget / (float64(len(ordered)) * s.splitFactor())
		perCity = &split
		logger.Info("per-city budget estimate", zap.Float64("budget", round2(split)))
	}

	var best *prediction.PredictResponse
	bestOffset := 0

	offset := 0
	for _, st := range ordered {
		days := alloc[st.loc.City]
		win, err := s.cityWindow(ctx, st, days, req.ForecastWeeks, perCity)
		if err != nil {
			logger.Warn("failed to get predictions for city",
				zap.String("city", st.loc.City),
				zap.Error(err),
			)
			offset += days
			continue
		}
		if best == nil || win.TravelScore > best.TravelScore {
			best = win
			bestOffset = offset
		}
		offset += days
	}

	today := dayOf(s.now())
	fallback := today.AddDate(0, 0, 7*s.leadWeeks())

	if best == nil {
		return fallback
	}

	anchor, err := time.Parse(dateLayout, best.BestStartDate)
	if err != nil {
		return fallback
	}

	start := anchor.AddDate(0, 0, -bestOffset)
	if start.Before(today) {
		logger.Warn("anchored start date already passed, using fallback",
			zap.String("anchor", anchor.Format(dateLayout)),
			zap.String("fallback", fallback.Format(dateLayout)),
		)
		return fallback
	}
	return start
}

// cityWindow probes the best window for one stop, retrying without the
// budget split when the split alone makes the city infeasible.
func (s *Service) cityWindow(ctx context.Context, st stop, days, weeks int, maxBudget *float64) (*prediction.PredictResponse, error) {
	win, err := s.prediction.Window(ctx, windowRequest(st, days, weeks, maxBudget))
	if err == nil || maxBudget == nil {
		return win, err
	}

	var infeasible *common.InfeasibleConstraintError
	if !errors.As(err, &infeasible) {
		return nil, err
	}

	logger.Warn("city infeasible under budget split, retrying without budget",
		zap.String("city", st.loc.City),
		zap.Float64("per_city_budget", round2(*maxBudget)),
	)
	return s.prediction.Window(ctx, windowRequest(st, days, weeks, nil))
}

func windowRequest(st stop, days, weeks int, maxBudget *float64) *prediction.PredictRequest {
	lat, lon := st.loc.Lat, st.loc.Lon
	return &prediction.PredictRequest{
		Destination:   st.loc.City,
		Lat:           &lat,
		Lon:           &lon,
		TripDays:      days,
		ForecastWeeks: weeks,
		MaxBudget:     maxBudget,
	}
}

// buildItinerary schedules the ordered stops consecutively from startDate
// and decorates each stay with its forecast and events. A stop whose
// forecast fails keeps its schedule and records the error.
func (s *Service) buildItinerary(ctx context.Context, req *PlanRequest, ordered []stop, alloc map[string]int, startDate time.Time, emit ProgressFunc) []CityVisit {
	visits := make([]CityVisit, 0, len(ordered))
	current := startDate
	previous := req.OriginCity

	for i, st := range ordered {
		days := alloc[st.loc.City]
		cityStart := current
		cityEnd := current.AddDate(0, 0, days)

		report(emit, Progress{
			Type:        ProgressStatus,
			Message:     fmt.Sprintf("Analyzing %s...", st.loc.City),
			Progress:    30 + (i+1)*50/len(ordered),
			CurrentCity: st.loc.City,
		})

		visit := CityVisit{
			City:             st.loc.City,
			Order:            i + 1,
			StartDate:        cityStart.Format(dateLayout),
			EndDate:          cityEnd.Format(dateLayout),
			Days:             days,
			Coordinates:      prediction.Coordinates{Lat: st.loc.Lat, Lon: st.loc.Lon},
			FromCity:         previous,
			Events:           []events.Event{},
			EventSuggestions: []string{},
		}

		win, err := s.prediction.Window(ctx, windowRequest(st, days, 0, nil))
		if err != nil {
			logger.Warn("could not get predictions for city",
				zap.String("city", st.loc.City),
				zap.Error(err),
			)
			visit.Error = err.Error()
		} else {
			visit.PredictedWeather = &VisitWeather{
				Temperature:   win.PredictedTemp,
				Precipitation: win.PredictedPrecipitation,
			}
			visit.PredictedPrice = &win.PredictedPrice
			visit.PredictedCrowd = &win.PredictedCrowd
			visit.TravelScore = &win.TravelScore
			visit.Confidence = &win.Confidence
			visit.Scores = &win.Scores
			visit.Explanation = win.Explanation
			visit.TravelTip = win.TravelTip

			assessment := s.events.ForTrip(st.loc.City, cityStart, cityEnd)
			visit.Events = assessment.Events
			visit.EventWarning = assessment.Warning
			visit.EventSuggestions = assessment.Suggestions
			visit.HasMajorEvents = assessment.HasMajorEvents

			if assessment.HasMajorEvents {
				logger.Info("major events during stay",
					zap.String("city", st.loc.City),
					zap.Int("events", len(assessment.Events)),
				)
			}
		}

		visits = append(visits, visit)
		current = cityEnd
		previous = st.loc.City
	}

	return visits
}

// tripCosts prices the itinerary: accommodation at the predicted nightly
// price for each stay, flights at a flat per-km rate over consecutive legs
// plus the return to the origin. Per-person figures split the total across
// the configured travelers.
func (s *Service) tripCosts(itinerary []CityVisit, originCity string, originLat, originLon float64) CostBreakdown {
	rate := s.flightRate()

	totalHotel := 0.0
	totalFlights := 0.0
	breakdown := make(map[string]float64, 2*len(itinerary)+1)
	flights := make([]FlightEstimate, 0, len(itinerary))

	for i, visit := range itinerary {
		hotel := 0.0
		if visit.PredictedPrice != nil {
			hotel = *visit.PredictedPrice * float64(visit.Days)
		}
		totalHotel += hotel

		if i > 0 {
			prev := itinerary[i-1]
			d := route.Haversine(prev.Coordinates.Lat, prev.Coordinates.Lon, visit.Coordinates.Lat, visit.Coordinates.Lon)
			cost := d * rate
			totalFlights += cost
			flights = append(flights, FlightEstimate{
				From:       prev.City,
				To:         visit.City,
				DistanceKm: round1(d),
				Cost:       round2(cost),
			})
			breakdown[fmt.Sprintf("Flight %s → %s", prev.City, visit.City)] = round2(cost)
		}

		breakdown[fmt.Sprintf("%s accommodation", visit.City)] = round2(hotel)
	}

	if len(itinerary) > 0 {
		last := itinerary[len(itinerary)-1]
		d := route.Haversine(last.Coordinates.Lat, last.Coordinates.Lon, originLat, originLon)
		cost := d * rate
		totalFlights += cost
		flights = append(flights, FlightEstimate{
			From:       last.City,
			To:         originCity,
			DistanceKm: round1(d),
			Cost:       round2(cost),
		})
		breakdown[fmt.Sprintf("Flight %s → %s", last.City, originCity)] = round2(cost)
	}

	return CostBreakdown{
		TotalHotel:   round2(totalHotel),
		TotalFlights: round2(totalFlights),
		TotalCost:    round2(totalHotel + totalFlights),
		PerPerson:    round2((totalHotel + totalFlights) / float64(s.travelers())),
		Breakdown:    breakdown,
		Flights:      flights,
	}
}

// overallScore aggregates the visit scores, weighting the overall figure
// by days spent in each city. Visits without a score dilute the weighted
// overall but are excluded from the averages; an itinerary with no scores
// at all reports a neutral 50.
func overallScore(itinerary []CityVisit) ScoreSummary {
	var scores []float64
	totalDays := 0
	for _, v := range itinerary {
		totalDays += v.Days
		if v.TravelScore != nil {
			scores = append(scores, *v.TravelScore)
		}
	}

	if len(scores) == 0 {
		return ScoreSummary{Overall: 50.0, Average: 50.0, Min: 50.0, Max: 50.0}
	}

	overall := 0.0
	if totalDays > 0 {
		for _, v := range itinerary {
			if v.TravelScore != nil {
				overall += *v.TravelScore * float64(v.Days) / float64(totalDays)
			}
		}
	}

	sum := 0.0
	minScore := scores[0]
	maxScore := scores[0]
	for _, sc := range scores {
		sum += sc
		minScore = math.Min(minScore, sc)
		maxScore = math.Max(maxScore, sc)
	}

	return ScoreSummary{
		Overall: round2(overall),
		Average: round2(sum / float64(len(scores))),
		Min:     round2(minScore),
		Max:     round2(maxScore),
	}
}

// summary renders the human-readable trip summary.
func summary(origin string, itinerary []CityVisit, costs CostBreakdown, score ScoreSummary) string {
	names := make([]string, len(itinerary))
	totalDays := 0
	for i, v := range itinerary {
		names[i] = v.City
		totalDays += v.Days
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Multi-city trip visiting %d cities over %d days.\n", len(itinerary), totalDays)
	fmt.Fprintf(&b, "Route: %s → %s → %s\n", origin, strings.Join(names, " → "), origin)
	fmt.Fprintf(&b, "Overall trip score: %s/100\n", strconv.FormatFloat(score.Overall, 'f', -1, 64))
	fmt.Fprintf(&b, "Estimated total cost: %s (%s per person)",
		i18n.FormatAmount(costs.TotalCost, "USD"),
		i18n.FormatAmount(costs.PerPerson, "USD"),
	)
	return b.String()
}

// totalDistance is the closed-loop distance: origin to first stop, the
// consecutive legs and the return to origin.
func (s *Service) totalDistance(itinerary []CityVisit, originLat, originLon float64) float64 {
	if len(itinerary) == 0 {
		return 0
	}

	first := itinerary[0]
	total := route.Haversine(originLat, originLon, first.Coordinates.Lat, first.Coordinates.Lon)
	for i := 1; i < len(itinerary); i++ {
		prev := itinerary[i-1]
		cur := itinerary[i]
		total += route.Haversine(prev.Coordinates.Lat, prev.Coordinates.Lon, cur.Coordinates.Lat, cur.Coordinates.Lon)
	}
	last := itinerary[len(itinerary)-1]
	total += route.Haversine(last.Coordinates.Lat, last.Coordinates.Lon, originLat, originLon)
	return total
}

// routeInfo builds the reported route: ordered names, per-leg distances
// and the search method that produced the ordering.
func routeInfo(ordered []stop, optimized bool, method string) RouteInfo {
	routeStops := make([]route.Stop, len(ordered))
	for i, st := range ordered {
		routeStops[i] = route.Stop{City: st.loc.City, Lat: st.loc.Lat, Lon: st.loc.Lon}
	}
	r := route.BuildRoute(routeStops, method)

	return RouteInfo{
		Order:              r.Cities(),
		WasOptimized:       optimized,
		OptimizationMethod: method,
		Segments:           r.Legs,
		TotalKm:            r.TotalKm,
	}
}

// originCoords resolves the origin city, falling back to London when it is
// not in the catalog.
func (s *Service) originCoords(origin string) (float64, float64) {
	loc, err := s.destinations.Resolve(origin)
	if err != nil {
		logger.Warn("origin city not in catalog, using London coordinates",
			zap.String("origin", origin),
		)
		return 51.5074, -0.1278
	}
	return loc.Lat, loc.Lon
}

// save persists the plan. Failures are logged, never surfaced.
func (s *Service) save(ctx context.Context, plan *Plan) {
	if s.repo == nil {
		logger.Warn("itinerary store requested but persistence is not configured",
			zap.String("plan_id", plan.ID.String()),
		)
		return
	}
	if err := s.repo.Insert(ctx, plan); err != nil {
		logger.Warn("failed to save itinerary",
			zap.String("plan_id", plan.ID.String()),
			zap.Error(err),
		)
	}
}

// export archives the plan JSON to object storage when configured.
func (s *Service) export(ctx context.Context, plan *Plan) {
	if s.exports == nil {
		return
	}

	raw, err := json.Marshal(plan)
	if err != nil {
		logger.Warn("failed to encode itinerary export",
			zap.String("plan_id", plan.ID.String()),
			zap.Error(err),
		)
		return
	}

	key := storage.GenerateItineraryExportKey(plan.ID, "json")
	contentType := storage.ContentTypeForFormat("json")
	if _, err := s.exports.Upload(ctx, key, bytes.NewReader(raw), int64(len(raw)), contentType); err != nil {
		logger.Warn("failed to export itinerary",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

// publish emits the completion event. Best effort.
func (s *Service) publish(ctx context.Context, plan *Plan) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, EventItineraryPlanned, plan); err != nil {
		logger.Warn("failed to publish itinerary event",
			zap.String("plan_id", plan.ID.String()),
			zap.Error(err),
		)
	}
}

func (s *Service) splitFactor() float64 {
	if s.cfg.BudgetSplitFactor > 0 {
		return s.cfg.BudgetSplitFactor
	}
	return 1.3
}

func (s *Service) leadWeeks() int {
	if s.cfg.FallbackLeadWeeks > 0 {
		return s.cfg.FallbackLeadWeeks
	}
	return 4
}

func (s *Service) travelers() int {
	if s.cfg.Travelers > 0 {
		return s.cfg.Travelers
	}
	return 2
}

func (s *Service) flightRate() float64 {
	if s.routeCfg.FlightCostPerKm > 0 {
		return s.routeCfg.FlightCostPerKm
	}
	return 0.15
}

func report(emit ProgressFunc, p Progress) {
	if emit != nil {
		emit(p)
	}
}

func stays(ordered []stop) []allocation.Stop {
	out := make([]allocation.Stop, len(ordered))
	for i, st := range ordered {
		out[i] = st.stay
	}
	return out
}

func cityNames(ordered []stop) []string {
	out := make([]string, len(ordered))
	for i, st := range ordered {
		out[i] = st.loc.City
	}
	return out
}

func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
