// Package handler dispatches analytics API requests: registry validation,
// store queries, response shaping, and the error envelope.
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vsrin/en-app-analytics/internal/config"
	"github.com/vsrin/en-app-analytics/internal/domain"
	"github.com/vsrin/en-app-analytics/internal/logger"
	"github.com/vsrin/en-app-analytics/internal/query"
	"github.com/vsrin/en-app-analytics/internal/storage"
)

// AnalyticsHandler serves the per-app analytics endpoints.
type AnalyticsHandler struct {
	store  storage.Store
	cfg    *config.Config
	logger logger.Logger
	now    func() time.Time
}

// NewAnalyticsHandler creates an AnalyticsHandler with the given dependencies.
func NewAnalyticsHandler(store storage.Store, cfg *config.Config, log logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		store:  store,
		cfg:    cfg,
		logger: log,
		now:    time.Now,
	}
}

// WithClock overrides the clock used for the default reference date.
func (h *AnalyticsHandler) WithClock(now func() time.Time) *AnalyticsHandler {
	h.now = now
	return h
}

// today is the reference date used when a request supplies no date parameter.
func (h *AnalyticsHandler) today() string {
	return h.now().UTC().Format(query.DateLayout)
}

// appOrAbort validates the appId path parameter against the registry.
// Unknown ids short-circuit with a 404 before any store access.
func (h *AnalyticsHandler) appOrAbort(c *gin.Context) (config.AppEntry, bool) {
	appID := c.Param("appId")
	app, ok := h.cfg.LookupApp(appID)
	if !ok {
		c.JSON(http.StatusNotFound, domain.ErrorResponse{Error: "App not found"})
		return config.AppEntry{}, false
	}
	return app, true
}

// fail logs a store failure and responds with the generic 500 envelope.
// Message detail is exposed only in debug mode.
func (h *AnalyticsHandler) fail(c *gin.Context, msg string, err error) {
	h.logger.Error(msg,
		logger.String("path", c.Request.URL.Path),
		logger.Error(err),
	)

	body := domain.ErrorResponse{Error: msg}
	if h.cfg.Service.Debug {
		body.Message = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}
