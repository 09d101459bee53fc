package destinations

import (
	"github.com/gin-gonic/gin"

	"github.com/skytrail/tripcast/pkg/common"
)

// Handler handles HTTP requests for the destination catalog
type Handler struct {
	service *Service
}

// NewHandler creates a new destinations handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListDestinations returns all supported destinations
func (h *Handler) ListDestinations(c *gin.Context) {
	list := h.service.List()
	common.SuccessResponse(c, gin.H{
		"destinations": list,
		"count":        len(list),
	})
}

// RegisterRoutes registers destination routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/destinations", h.ListDestinations)
}
