package planner

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skytrail/tripcast/internal/destinations"
	"github.com/skytrail/tripcast/pkg/common"
	"github.com/skytrail/tripcast/pkg/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// PlanTrip handles POST /trips/plan.
func (h *Handler) PlanTrip(c *gin.Context) {
	var req PlanRequest
	if !middleware.ValidateAndBind(c, &req) {
		return
	}

	plan, err := h.service.Plan(c.Request.Context(), &req)
	if err != nil {
		respondPlanError(c, err)
		return
	}

	common.SuccessResponse(c, plan)
}

// GetTrip handles GET /trips/:id for itineraries saved with store=true.
func (h *Handler) GetTrip(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid trip id")
		return
	}

	plan, err := h.service.SavedPlan(c.Request.Context(), id)
	if err != nil {
		respondPlanError(c, err)
		return
	}

	common.SuccessResponse(c, plan)
}

// GetExample handles GET /trips/example with a ready-to-send request body.
func (h *Handler) GetExample(c *gin.Context) {
	optimize := true
	example := PlanRequest{
		Cities: []CityStopRequest{
			{City: "Paris", MinDays: 3, MaxDays: 5, PreferredDays: 4},
			{City: "Barcelona", MinDays: 3, MaxDays: 6, PreferredDays: 4},
			{City: "Rome", MinDays: 2, MaxDays: 5, PreferredDays: 3},
		},
		TotalDays:     12,
		OriginCity:    "London",
		OptimizeRoute: &optimize,
	}

	common.SuccessResponse(c, gin.H{
		"description":     "Example multi-city trip through Europe",
		"example_request": example,
	})
}

func respondPlanError(c *gin.Context, err error) {
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		common.AppErrorResponse(c, appErr)
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

	var unresolvable *destinations.UnresolvableLocationError
	if errors.As(err, &unresolvable) {
		common.ErrorResponse(c, http.StatusNotFound, unresolvable.Error())
		return
	}

	common.ErrorResponse(c, http.StatusInternalServerError, "trip planning failed")
}

// RegisterRoutes mounts the request/response trip planning endpoints on the
// given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	trips := rg.Group("/trips")
	{
		trips.POST("/plan", h.PlanTrip)
		trips.GET("/example", h.GetExample)
		trips.GET("/:id", h.GetTrip)
	}
}

// RegisterStreamRoutes mounts the progress streaming endpoints. These hold
// the connection open for the whole planning run, so the group they attach
// to must not wrap responses in a timeout middleware.
func (h *Handler) RegisterStreamRoutes(rg *gin.RouterGroup) {
	trips := rg.Group("/trips")
	{
		trips.POST("/plan/stream", h.StreamPlan)
		trips.GET("/ws", h.PlanSocket)
	}
}
