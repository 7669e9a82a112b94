package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/vsrin/en-app-analytics/internal/domain"
	"github.com/vsrin/en-app-analytics/internal/logger"
	"github.com/vsrin/en-app-analytics/internal/query"
	"github.com/vsrin/en-app-analytics/internal/shape"
	"github.com/vsrin/en-app-analytics/internal/storage"
)

// Apps handles GET /apps. Quick stats are attached to active apps only; a
// stats lookup failure downgrades that entry instead of failing the list.
func (h *AnalyticsHandler) Apps(c *gin.Context) {
	today := h.today()

	resp := domain.AppsResponse{Apps: make([]domain.AppInfo, 0, len(h.cfg.Apps))}
	for _, app := range h.cfg.Apps {
		info := domain.AppInfo{
			AppID:       app.AppID,
			AppName:     app.AppName,
			Description: app.Description,
			Color:       app.Color,
			Status:      app.Status,
			Database:    app.Database,
		}
		if app.Active() {
			stats, err := h.store.AppStats(c.Request.Context(), today)
			if err != nil {
				h.logger.Warn("Failed to fetch app stats",
					logger.String("app_id", app.AppID),
					logger.Error(err),
				)
			} else {
				info.Stats = stats
			}
		}
		resp.Apps = append(resp.Apps, info)
	}

	c.JSON(http.StatusOK, resp)
}

// SystemHealth handles GET /apps/:appId/system-health.
func (h *AnalyticsHandler) SystemHealth(c *gin.Context) {
	app, ok := h.appOrAbort(c)
	if !ok {
		return
	}

	q := query.Resolve(c.Request.URL.Query(), h.today())

	var (
		current *domain.DailyHealthRecord
		trend   []domain.DailyHealthRecord
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		rec, err := h.store.HealthCurrent(ctx, q.Date)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		current = rec
		return err
	})
	g.Go(func() error {
		var err error
		trend, err = h.store.HealthTrend(ctx, q.Since)
		return err
	})
	if err := g.Wait(); err != nil {
		h.fail(c, "Failed to fetch system health", err)
		return
	}

	// Missing day rolls up as an all-zero record, not an error.
	cur := shape.ZeroHealthRecord(q.Date)
	if current != nil {
		cur = *current
	}

	c.JSON(http.StatusOK, domain.SystemHealthResponse{
		AppID:   app.AppID,
		Current: cur,
		Trend:   shape.TrendPoints(trend),
	})
}

// Users handles GET /apps/:appId/users.
func (h *AnalyticsHandler) Users(c *gin.Context) {
	if _, ok := h.appOrAbort(c); !ok {
		return
	}

	q := query.Resolve(c.Request.URL.Query(), h.today())

	users, total, err := h.store.Users(c.Request.Context(), q)
	if err != nil {
		h.fail(c, "Failed to fetch users", err)
		return
	}

	c.JSON(http.StatusOK, domain.UsersResponse{
		Users:      shape.UserRows(users),
		TotalCount: total,
	})
}

// Batches handles GET /apps/:appId/batches.
func (h *AnalyticsHandler) Batches(c *gin.Context) {
	if _, ok := h.appOrAbort(c); !ok {
		return
	}

	q := query.Resolve(c.Request.URL.Query(), h.today())

	batches, total, err := h.store.Batches(c.Request.Context(), q)
	if err != nil {
		h.fail(c, "Failed to fetch batches", err)
		return
	}

	page, pages := shape.Pagination(total, q.Limit, q.Skip)
	c.JSON(http.StatusOK, domain.BatchesResponse{
		Batches:    shape.BatchRows(batches),
		TotalCount: total,
		Page:       page,
		Pages:      pages,
	})
}

// BatchDetail handles GET /apps/:appId/batches/:batchId.
func (h *AnalyticsHandler) BatchDetail(c *gin.Context) {
	if _, ok := h.appOrAbort(c); !ok {
		return
	}

	batchID := c.Param("batchId")
	batch, err := h.store.BatchByID(c.Request.Context(), batchID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, domain.ErrorResponse{Error: "Batch not found"})
			return
		}
		h.fail(c, "Failed to fetch batch details", err)
		return
	}

	c.JSON(http.StatusOK, shape.BatchDetail(batch))
}

// Products handles GET /apps/:appId/products.
func (h *AnalyticsHandler) Products(c *gin.Context) {
	if _, ok := h.appOrAbort(c); !ok {
		return
	}

	products, err := h.store.Products(c.Request.Context())
	if err != nil {
		h.fail(c, "Failed to fetch product breakdown", err)
		return
	}

	c.JSON(http.StatusOK, domain.ProductsResponse{Products: shape.ProductRows(products)})
}
