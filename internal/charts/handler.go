package charts

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skytrail/tripcast/internal/destinations"
	"github.com/skytrail/tripcast/internal/forecast"
	"github.com/skytrail/tripcast/pkg/common"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetChart handles GET /predict/chart, rendering the weekly outlook for a
// city as an HTML page.
func (h *Handler) GetChart(c *gin.Context) {
	city, weeks, ok := chartParams(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.service.Render(c.Request.Context(), &buf, city, weeks); err != nil {
		respondChartError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// PublishChart handles POST /predict/chart/report, archiving the rendered
// chart to object storage.
func (h *Handler) PublishChart(c *gin.Context) {
	city, weeks, ok := chartParams(c)
	if !ok {
		return
	}

	key, err := h.service.Publish(c.Request.Context(), city, weeks)
	if err != nil {
		respondChartError(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{
		"key": key,
		"url": h.service.ReportURL(key),
	})
}

func chartParams(c *gin.Context) (string, int, bool) {
	city := c.Query("city")
	if city == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "city query parameter is required")
		return "", 0, false
	}

	weeks := 0
	if raw := c.Query("weeks"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 104 {
			common.ErrorResponse(c, http.StatusBadRequest, "weeks must be between 1 and 104")
			return "", 0, false
		}
		weeks = parsed
	}

	return city, weeks, true
}

func respondChartError(c *gin.Context, err error) {
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

	common.ErrorResponse(c, http.StatusInternalServerError, "chart rendering failed")
}

// RegisterRoutes mounts the chart endpoints on the given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/predict/chart", h.GetChart)
	rg.POST("/predict/chart/report", h.PublishChart)
}
