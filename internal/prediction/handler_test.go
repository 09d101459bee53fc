package prediction

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(api)
	return router
}

func postPredict(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestPredictEndpointSuccess(t *testing.T) {
	router := newTestRouter(newTestService(&captureRepo{}, &capturePublisher{}))

	w := postPredict(t, router, `{"destination": "Paris", "trip_days": 10}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Paris", data["destination"])
	assert.Equal(t, float64(10), data["trip_days"])
	assert.Equal(t, "synthetic", data["data_source"])
	assert.NotEmpty(t, data["best_start_date"])
	assert.NotEmpty(t, data["best_end_date"])
	assert.NotEmpty(t, data["ai_explanation"])
	assert.NotEmpty(t, data["generated_at"])

	coords, ok := data["coordinates"].(map[string]interface{})
	require.True(t, ok)
	assert.InDelta(t, 48.8566, coords["lat"], 0.001)

	scores, ok := data["scores"].(map[string]interface{})
	require.True(t, ok)
	for _, key := range []string{"price_score", "weather_score", "crowd_score"} {
		assert.Contains(t, scores, key)
	}
}

func TestPredictEndpointMissingDestination(t *testing.T) {
	router := newTestRouter(newTestService(&captureRepo{}, &capturePublisher{}))

	w := postPredict(t, router, `{"trip_days": 7}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Validation failed", body["error"])
}

func TestPredictEndpointTripTooLong(t *testing.T) {
	router := newTestRouter(newTestService(&captureRepo{}, &capturePublisher{}))

	w := postPredict(t, router, `{"destination": "Paris", "trip_days": 200}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Validation failed", body["error"])
}

func TestPredictEndpointMalformedJSON(t *testing.T) {
	router := newTestRouter(newTestService(&captureRepo{}, &capturePublisher{}))

	w := postPredict(t, router, `{"destination": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPredictEndpointUnknownCity(t *testing.T) {
	router := newTestRouter(newTestService(&captureRepo{}, &capturePublisher{}))

	w := postPredict(t, router, `{"destination": "Atlantis"}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])

	errBody, ok := body["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, errBody["message"], "Atlantis")
}

func TestPredictEndpointBudgetConflict(t *testing.T) {
	router := newTestRouter(newTestService(&captureRepo{}, &capturePublisher{}))

	w := postPredict(t, router, `{"destination": "Paris", "max_budget": 0.5}`)
	require.Equal(t, http.StatusConflict, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])

	errBody, ok := body["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, errBody["message"], "budget")

	details, ok := errBody["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "max_budget", details["constraint"])
	minimum, ok := details["minimum"].(float64)
	require.True(t, ok)
	assert.Greater(t, minimum, 0.5)
}

func TestPredictEndpointInsufficientData(t *testing.T) {
	router := newTestRouter(newTestService(&captureRepo{}, &capturePublisher{}))

	w := postPredict(t, router, `{"destination": "Paris", "start_date": "2025-06-01", "end_date": "2025-05-01"}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
}

func TestPredictEndpointCoordinatesBypassCatalog(t *testing.T) {
	router := newTestRouter(newTestService(&captureRepo{}, &capturePublisher{}))

	w := postPredict(t, router, `{"destination": "Reykjavik", "lat": 64.1466, "lon": -21.9426}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Reykjavik", data["destination"])

	coords, ok := data["coordinates"].(map[string]interface{})
	require.True(t, ok)
	assert.InDelta(t, 64.1466, coords["lat"], 0.001)
	assert.InDelta(t, -21.9426, coords["lon"], 0.001)
}
