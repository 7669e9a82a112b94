package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/vsrin/en-app-analytics/internal/domain"
	"github.com/vsrin/en-app-analytics/internal/query"
	"github.com/vsrin/en-app-analytics/internal/shape"
)

// Failures handles GET /apps/:appId/failures. The response shape follows the
// group_by parameter: lob mode carries a limit-independent summary alongside
// the groups, carrier mode returns groups only, and everything else returns
// the flat filtered list with its total count.
func (h *AnalyticsHandler) Failures(c *gin.Context) {
	if _, ok := h.appOrAbort(c); !ok {
		return
	}

	q := query.Resolve(c.Request.URL.Query(), h.today())

	switch q.GroupBy {
	case query.GroupByLOB:
		h.failuresByLOB(c)
	case query.GroupByCarrier:
		h.failuresByCarrier(c)
	default:
		h.failureList(c, q)
	}
}

func (h *AnalyticsHandler) failuresByLOB(c *gin.Context) {
	var (
		groups  []domain.FailureGroup
		summary *domain.FailureSummary
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		groups, err = h.store.FailureGroups(ctx, query.GroupByLOB)
		return err
	})
	g.Go(func() error {
		var err error
		summary, err = h.store.FailureSummary(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		h.fail(c, "Failed to fetch failure analysis", err)
		return
	}

	c.JSON(http.StatusOK, domain.FailuresByLOBResponse{
		Summary: shape.Summary(summary),
		ByLOB:   shape.LOBRows(groups),
	})
}

func (h *AnalyticsHandler) failuresByCarrier(c *gin.Context) {
	groups, err := h.store.FailureGroups(c.Request.Context(), query.GroupByCarrier)
	if err != nil {
		h.fail(c, "Failed to fetch failure analysis", err)
		return
	}

	c.JSON(http.StatusOK, domain.FailuresByCarrierResponse{
		ByCarrier: shape.CarrierRows(groups),
	})
}

func (h *AnalyticsHandler) failureList(c *gin.Context, q query.Descriptor) {
	failures, total, err := h.store.Failures(c.Request.Context(), q)
	if err != nil {
		h.fail(c, "Failed to fetch failure analysis", err)
		return
	}

	c.JSON(http.StatusOK, domain.FailureListResponse{
		Failures:   shape.FailureRows(failures),
		TotalCount: total,
	})
}
