package planner

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const planBody = `{"cities":[{"city":"Paris","min_days":3,"max_days":5},{"city":"Rome","min_days":2,"max_days":5}],"total_days":7}`

func newPlanRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(svc)
	api := r.Group("/api/v1")
	h.RegisterRoutes(api)
	h.RegisterStreamRoutes(api)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func getJSON(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func sseEvents(t *testing.T, body string) []Progress {
	t.Helper()
	var parsed []Progress
	for _, chunk := range strings.Split(body, "\n\n") {
		chunk = strings.TrimSpace(chunk)
		if !strings.HasPrefix(chunk, "data: ") {
			continue
		}
		var p Progress
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(chunk, "data: ")), &p))
		parsed = append(parsed, p)
	}
	return parsed
}

func TestPlanEndpoint(t *testing.T) {
	r := newPlanRouter(newTestPlanner(nil, nil, nil))

	w := postJSON(r, "/api/v1/trips/plan", planBody)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeEnvelope(t, w)
	assert.Equal(t, true, body["success"])

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "London", data["origin_city"])
	assert.Equal(t, float64(7), data["total_days"])

	itinerary, ok := data["itinerary"].([]interface{})
	require.True(t, ok)
	assert.Len(t, itinerary, 2)

	costs, ok := data["cost_breakdown"].(map[string]interface{})
	require.True(t, ok)
	assert.Greater(t, costs["total_cost"].(float64), 0.0)

	metadata, ok := data["metadata"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), metadata["number_of_cities"])
}

func TestPlanEndpointSingleCityRejected(t *testing.T) {
	r := newPlanRouter(newTestPlanner(nil, nil, nil))

	w := postJSON(r, "/api/v1/trips/plan", `{"cities":[{"city":"Paris"}],"total_days":7}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation failed", decodeEnvelope(t, w)["error"])
}

func TestPlanEndpointTotalDaysTooShort(t *testing.T) {
	r := newPlanRouter(newTestPlanner(nil, nil, nil))

	w := postJSON(r, "/api/v1/trips/plan", `{"cities":[{"city":"Paris"},{"city":"Rome"}],"total_days":2}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation failed", decodeEnvelope(t, w)["error"])
}

func TestPlanEndpointBadStartDate(t *testing.T) {
	r := newPlanRouter(newTestPlanner(nil, nil, nil))

	w := postJSON(r, "/api/v1/trips/plan",
		`{"cities":[{"city":"Paris"},{"city":"Rome"}],"total_days":7,"start_date":"not-a-date"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlanEndpointMalformedJSON(t *testing.T) {
	r := newPlanRouter(newTestPlanner(nil, nil, nil))

	w := postJSON(r, "/api/v1/trips/plan", `{`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlanEndpointUnknownCity(t *testing.T) {
	r := newPlanRouter(newTestPlanner(nil, nil, nil))

	w := postJSON(r, "/api/v1/trips/plan", `{"cities":[{"city":"Paris"},{"city":"Atlantis"}],"total_days":7}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	body := decodeEnvelope(t, w)
	errBody, ok := body["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, errBody["message"], "Atlantis")
}

func TestPlanEndpointBudgetConflict(t *testing.T) {
	r := newPlanRouter(newTestPlanner(nil, nil, nil))

	w := postJSON(r, "/api/v1/trips/plan",
		`{"cities":[{"city":"Paris","min_days":3,"max_days":5},{"city":"Rome","min_days":2,"max_days":5}],"total_days":7,"max_budget":5}`)
	require.Equal(t, http.StatusConflict, w.Code)

	body := decodeEnvelope(t, w)
	errBody, ok := body["error"].(map[string]interface{})
	require.True(t, ok)
	details, ok := errBody["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "max_budget", details["constraint"])
	assert.Greater(t, details["minimum"].(float64), 5.0)
}

func TestGetTripEndpoint(t *testing.T) {
	plan := storedPlan()
	repo := &captureRepo{plans: map[uuid.UUID]*Plan{plan.ID: plan}}
	r := newPlanRouter(newTestPlanner(repo, nil, nil))

	w := getJSON(r, "/api/v1/trips/"+plan.ID.String())
	require.Equal(t, http.StatusOK, w.Code)

	data, ok := decodeEnvelope(t, w)["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, plan.ID.String(), data["id"])
}

func TestGetTripEndpointMissing(t *testing.T) {
	repo := &captureRepo{plans: map[uuid.UUID]*Plan{}}
	r := newPlanRouter(newTestPlanner(repo, nil, nil))

	w := getJSON(r, "/api/v1/trips/"+uuid.NewString())
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetTripEndpointBadID(t *testing.T) {
	r := newPlanRouter(newTestPlanner(nil, nil, nil))

	w := getJSON(r, "/api/v1/trips/not-a-uuid")
	require.Equal(t, http.StatusBadRequest, w.Code)

	errBody, ok := decodeEnvelope(t, w)["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "invalid trip id", errBody["message"])
}

func TestExampleEndpoint(t *testing.T) {
	r := newPlanRouter(newTestPlanner(nil, nil, nil))

	w := getJSON(r, "/api/v1/trips/example")
	require.Equal(t, http.StatusOK, w.Code)

	data, ok := decodeEnvelope(t, w)["data"].(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["description"])

	example, ok := data["example_request"].(map[string]interface{})
	require.True(t, ok)
	cities, ok := example["cities"].([]interface{})
	require.True(t, ok)
	assert.Len(t, cities, 3)
}

func TestStreamEndpoint(t *testing.T) {
	r := newPlanRouter(newTestPlanner(nil, nil, nil))

	w := postJSON(r, "/api/v1/trips/plan/stream", planBody)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))

	frames := sseEvents(t, w.Body.String())
	require.NotEmpty(t, frames)

	assert.Equal(t, ProgressStatus, frames[0].Type)
	assert.Equal(t, "Starting trip planning...", frames[0].Message)
	assert.Equal(t, 0, frames[0].Progress)

	var analyzed bool
	for _, f := range frames {
		if strings.HasPrefix(f.Message, "Analyzing ") {
			analyzed = true
		}
	}
	assert.True(t, analyzed)

	last := frames[len(frames)-1]
	assert.Equal(t, ProgressComplete, last.Type)
	assert.Equal(t, 100, last.Progress)
	require.NotNil(t, last.Result)
	assert.Len(t, last.Result.Itinerary, 2)
}

func TestStreamEndpointValidationFailsBeforeStream(t *testing.T) {
	r := newPlanRouter(newTestPlanner(nil, nil, nil))

	w := postJSON(r, "/api/v1/trips/plan/stream", `{"cities":[{"city":"Paris"}],"total_days":7}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEqual(t, "text/event-stream", w.Header().Get("Content-Type"))
}

func TestStreamEndpointEmitsErrorEvent(t *testing.T) {
	r := newPlanRouter(newTestPlanner(nil, nil, nil))

	w := postJSON(r, "/api/v1/trips/plan/stream", `{"cities":[{"city":"Paris"},{"city":"Atlantis"}],"total_days":7}`)
	require.Equal(t, http.StatusOK, w.Code)

	frames := sseEvents(t, w.Body.String())
	require.NotEmpty(t, frames)

	last := frames[len(frames)-1]
	assert.Equal(t, ProgressError, last.Type)
	assert.Contains(t, last.Message, "Atlantis")
}

func TestPlanSocket(t *testing.T) {
	r := newPlanRouter(newTestPlanner(nil, nil, nil))
	server := httptest.NewServer(r)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/trips/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(60*time.Second)))

	req := PlanRequest{
		Cities: []CityStopRequest{
			{City: "Paris"},
			{City: "Rome"},
		},
		TotalDays: 6,
	}
	require.NoError(t, conn.WriteJSON(req))

	var frames []Progress
	for {
		var p Progress
		require.NoError(t, conn.ReadJSON(&p))
		frames = append(frames, p)
		if p.Type == ProgressComplete || p.Type == ProgressError {
			break
		}
	}

	require.NotEmpty(t, frames)
	assert.Equal(t, "Starting trip planning...", frames[0].Message)

	last := frames[len(frames)-1]
	require.Equal(t, ProgressComplete, last.Type)
	require.NotNil(t, last.Result)
	assert.Len(t, last.Result.Itinerary, 2)
	assert.Equal(t, 100, last.Progress)
}

func TestPlanSocketRejectsInvalidRequest(t *testing.T) {
	r := newPlanRouter(newTestPlanner(nil, nil, nil))
	server := httptest.NewServer(r)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/v1/trips/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(10*time.Second)))

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"cities": []interface{}{}, "total_days": 1}))

	var p Progress
	require.NoError(t, conn.ReadJSON(&p))
	assert.Equal(t, ProgressError, p.Type)
	assert.Contains(t, p.Message, "Invalid request")
}
