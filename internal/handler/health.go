package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vsrin/en-app-analytics/internal/domain"
	"github.com/vsrin/en-app-analytics/internal/storage"
)

const pingTimeout = 2 * time.Second

// HealthHandler serves the liveness probe. It bypasses the app registry and
// auth so orchestrators can hit it unconditionally.
type HealthHandler struct {
	store storage.Store
	now   func() time.Time
}

// NewHealthHandler creates a HealthHandler backed by the given store.
func NewHealthHandler(store storage.Store) *HealthHandler {
	return &HealthHandler{store: store, now: time.Now}
}

// Liveness handles GET /health. The service reports ok even when the
// database is unreachable; the database field carries that state.
func (h *HealthHandler) Liveness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	database := "connected"
	if err := h.store.Ping(ctx); err != nil {
		database = "disconnected"
	}

	c.JSON(http.StatusOK, domain.LivenessResponse{
		Status:    "ok",
		Database:  database,
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
}
