package planner

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/skytrail/tripcast/internal/destinations"
	"github.com/skytrail/tripcast/pkg/common"
	"github.com/skytrail/tripcast/pkg/logger"
	"github.com/skytrail/tripcast/pkg/middleware"
	"github.com/skytrail/tripcast/pkg/validation"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StreamPlan handles POST /trips/plan/stream. Progress is reported over
// server-sent events while the plan is built; the final event carries the
// completed plan.
func (h *Handler) StreamPlan(c *gin.Context) {
	var req PlanRequest
	if !middleware.ValidateAndBind(c, &req) {
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	writeEvent(c, Progress{Type: ProgressStatus, Message: "Starting trip planning...", Progress: 0})

	plan, err := h.service.PlanWithProgress(c.Request.Context(), &req, func(p Progress) {
		writeEvent(c, p)
	})
	if err != nil {
		writeEvent(c, Progress{Type: ProgressError, Message: planErrorMessage(err)})
		return
	}

	writeEvent(c, Progress{
		Type:     ProgressComplete,
		Message:  "Trip planning complete!",
		Progress: 100,
		Result:   plan,
	})
}

func writeEvent(c *gin.Context, p Progress) {
	raw, err := json.Marshal(p)
	if err != nil {
		logger.Warn("failed to encode progress event", zap.Error(err))
		return
	}
	fmt.Fprintf(c.Writer, "data: %s\n\n", raw)
	c.Writer.Flush()
}

// PlanSocket handles GET /trips/ws. The client sends one plan request and
// receives progress frames followed by the completed plan.
func (h *Handler) PlanSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	var req PlanRequest
	if err := conn.ReadJSON(&req); err != nil {
		_ = conn.WriteJSON(Progress{Type: ProgressError, Message: "Invalid request: " + err.Error()})
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		_ = conn.WriteJSON(Progress{Type: ProgressError, Message: "Invalid request: " + err.Error()})
		return
	}

	_ = conn.WriteJSON(Progress{Type: ProgressStatus, Message: "Starting trip planning...", Progress: 0})

	plan, err := h.service.PlanWithProgress(c.Request.Context(), &req, func(p Progress) {
		if err := conn.WriteJSON(p); err != nil {
			logger.Warn("failed to write progress frame", zap.Error(err))
		}
	})
	if err != nil {
		_ = conn.WriteJSON(Progress{Type: ProgressError, Message: planErrorMessage(err)})
		return
	}

	_ = conn.WriteJSON(Progress{
		Type:     ProgressComplete,
		Message:  "Trip planning complete!",
		Progress: 100,
		Result:   plan,
	})
}

// planErrorMessage renders a stream-safe error message in the same shape
// for SSE and websocket clients.
func planErrorMessage(err error) string {
	var appErr *common.AppError
	var infeasible *common.InfeasibleConstraintError
	var unresolvable *destinations.UnresolvableLocationError

	switch {
	case errors.As(err, &infeasible), errors.As(err, &unresolvable):
		return "Invalid request: " + err.Error()
	case errors.As(err, &appErr):
		return "Invalid request: " + appErr.Message
	default:
		return "Planning failed: " + err.Error()
	}
}
