// Package storage provides read-only access to the analytics views
// materialized in MongoDB by the upstream pipeline writer.
package storage

import (
	"context"
	"errors"

	"github.com/vsrin/en-app-analytics/internal/domain"
	"github.com/vsrin/en-app-analytics/internal/query"
)

// ErrNotFound is returned when a single-document lookup matches nothing.
// It is a first-class outcome, not an internal failure.
var ErrNotFound = errors.New("not found")

// View collection names. All are maintained by an external writer and are
// never mutated by this service.
const (
	collHealth   = "daily_system_health"
	collUsers    = "user_dashboard"
	collBatches  = "batch_details"
	collFailures = "mapping_failures"
	collProducts = "product_breakdown_view"
	collActivity = "user_activity"
)

// topGroups caps the number of groups returned by a failure aggregation.
const topGroups = 20

// Store is the query surface consumed by the dispatcher. List methods return
// the page of rows together with the total count over the same filter,
// unaffected by limit/skip.
type Store interface {
	// Ping verifies store connectivity; it backs the liveness probe.
	Ping(ctx context.Context) error

	// AppStats computes the quick stats for an active app, using the given
	// reference date for "today".
	AppStats(ctx context.Context, today string) (*domain.AppStats, error)

	// HealthCurrent returns the health record for the given date, or
	// ErrNotFound when no record exists for it.
	HealthCurrent(ctx context.Context, date string) (*domain.DailyHealthRecord, error)

	// HealthTrend returns health records dated on or after since, ascending
	// by date. An empty since returns the full collection.
	HealthTrend(ctx context.Context, since string) ([]domain.DailyHealthRecord, error)

	// Users returns user rollups sorted descending by the descriptor's sort
	// key, limited, with the total count over the same filter.
	Users(ctx context.Context, q query.Descriptor) ([]domain.UserRollup, int64, error)

	// Batches returns batches sorted by timestamp descending, paginated,
	// with the total count over the same filter.
	Batches(ctx context.Context, q query.Descriptor) ([]domain.Batch, int64, error)

	// BatchByID returns the full batch including embedded policies, or
	// ErrNotFound.
	BatchByID(ctx context.Context, batchID string) (*domain.Batch, error)

	// FailureGroups runs the grouped failure aggregation for the given mode
	// (GroupByLOB or GroupByCarrier): per-group row count, null-safe incurred
	// sum, distinct opposite-dimension values, first-encountered reason,
	// ordered by failure count descending, truncated to the top 20.
	FailureGroups(ctx context.Context, mode query.GroupMode) ([]domain.FailureGroup, error)

	// FailureSummary computes totals over the entire unfiltered failure
	// collection; grouping truncation never affects it.
	FailureSummary(ctx context.Context) (*domain.FailureSummary, error)

	// Failures returns individual failure rows filtered by the descriptor's
	// incurred threshold, sorted by date then incurred descending, limited,
	// with the total count over the same filter.
	Failures(ctx context.Context, q query.Descriptor) ([]domain.FailureRecord, int64, error)

	// Products returns the full product breakdown sorted by policy count
	// descending.
	Products(ctx context.Context) ([]domain.ProductRollup, error)
}
