package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"iprights/internal/infrastructure/repository"
	"iprights/internal/shared/logger"
	"iprights/internal/shared/utils"
)

const defaultReplayLimit = 100

// EventsHandler exposes the durable audit trail for replay
type EventsHandler struct {
	store  *repository.EventStore
	logger logger.Interface
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(store *repository.EventStore, logger logger.Interface) *EventsHandler {
	return &EventsHandler{store: store, logger: logger}
}

// Replay handles GET /events?after=<sequence>&limit=<n>
func (h *EventsHandler) Replay(c *gin.Context) {
	after := uint64(0)
	if raw := c.Query("after"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid after parameter")
			return
		}
		after = parsed
	}

	limit := defaultReplayLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		limit = parsed
	}

	records, err := h.store.ReplayAfter(c.Request.Context(), after, limit)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", records)
}
