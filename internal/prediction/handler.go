package prediction

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skytrail/tripcast/internal/destinations"
	"github.com/skytrail/tripcast/internal/forecast"
	"github.com/skytrail/tripcast/internal/scoring"
	"github.com/skytrail/tripcast/pkg/common"
	"github.com/skytrail/tripcast/pkg/middleware"
)

// Handler handles HTTP requests for travel-window predictions
type Handler struct {
	service *Service
}

// NewHandler creates a new prediction handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// PredictBestTime returns the best travel window for a destination
func (h *Handler) PredictBestTime(c *gin.Context) {
	var req PredictRequest
	if !middleware.ValidateAndBind(c, &req) {
		return
	}

	resp, err := h.service.Predict(c.Request.Context(), &req)
	if err != nil {
		respondPredictionError(c, err)
		return
	}

	common.SuccessResponse(c, resp)
}

// respondPredictionError maps pipeline errors onto HTTP statuses: unknown
// cities are 404, thin or exhausted forecasts 422, infeasible constraints
// 409 with the minimum feasible value in the details.
func respondPredictionError(c *gin.Context, err error) {
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		common.AppErrorResponse(c, appErr)
		return
	}

	var unresolvable *destinations.UnresolvableLocationError
	if errors.As(err, &unresolvable) {
		common.ErrorResponse(c, http.StatusNotFound, unresolvable.Error())
		return
	}

	var insufficient *forecast.InsufficientDataError
	if errors.As(err, &insufficient) {
		common.ErrorResponse(c, http.StatusUnprocessableEntity, insufficient.Error())
		return
	}

	if errors.Is(err, scoring.ErrNoFutureWindows) {
		common.ErrorResponse(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var infeasible *common.InfeasibleConstraintError
	if errors.As(err, &infeasible) {
		common.ErrorResponseWithDetails(c, http.StatusConflict, infeasible.Error(), map[string]interface{}{
			"constraint": infeasible.Constraint,
			"minimum":    infeasible.Minimum,
		})
		return
	}

	common.ErrorResponse(c, http.StatusInternalServerError, "prediction failed")
}

// RegisterRoutes registers prediction routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/predict", h.PredictBestTime)
}
