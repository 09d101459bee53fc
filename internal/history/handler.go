package history

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skytrail/tripcast/pkg/common"
	"github.com/skytrail/tripcast/pkg/pagination"
)

// Handler handles HTTP requests for prediction history
type Handler struct {
	service *Service
}

// NewHandler creates a new prediction history handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetHistory returns stored predictions, newest first
// GET /api/v1/history?city=Paris&limit=20&offset=0
func (h *Handler) GetHistory(c *gin.Context) {
	params := pagination.ParseParams(c)
	city := c.Query("city")

	entries, total, err := h.service.List(c.Request.Context(), city, params.Limit, params.Offset)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to get prediction history")
		return
	}

	meta := pagination.BuildMeta(params.Limit, params.Offset, int64(total))
	common.SuccessResponseWithMeta(c, gin.H{"predictions": entries}, meta)
}

// RegisterRoutes registers prediction history routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/history", h.GetHistory)
}
