package storage

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"golang.org/x/sync/errgroup"

	"github.com/vsrin/en-app-analytics/internal/domain"
	"github.com/vsrin/en-app-analytics/internal/query"
)

// Mongo implements Store against a MongoDB database of materialized views.
// The client is established once at startup and shared read-only across all
// requests; it is never reassigned mid-process.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens and verifies a MongoDB connection.
func Connect(ctx context.Context, uri, database string) (*Mongo, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if pingErr := client.Ping(ctx, readpref.Primary()); pingErr != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", pingErr)
	}

	return &Mongo{client: client, db: client.Database(database)}, nil
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Ping verifies connectivity to the primary.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// HealthCurrent returns the single health record for the given date.
func (m *Mongo) HealthCurrent(ctx context.Context, date string) (*domain.DailyHealthRecord, error) {
	var rec domain.DailyHealthRecord
	err := m.db.Collection(collHealth).
		FindOne(ctx, bson.D{{Key: "date", Value: date}}).
		Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find health record: %w", err)
	}
	return &rec, nil
}

// HealthTrend returns health records dated on or after since, ascending.
func (m *Mongo) HealthTrend(ctx context.Context, since string) ([]domain.DailyHealthRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := m.db.Collection(collHealth).Find(ctx, sinceFilter(since), opts)
	if err != nil {
		return nil, fmt.Errorf("find health trend: %w", err)
	}

	var trend []domain.DailyHealthRecord
	if err := cursor.All(ctx, &trend); err != nil {
		return nil, fmt.Errorf("decode health trend: %w", err)
	}
	return trend, nil
}

// Users returns the sorted, limited user rollup page and its total count.
// The two lookups are independent and run concurrently.
func (m *Mongo) Users(ctx context.Context, q query.Descriptor) ([]domain.UserRollup, int64, error) {
	coll := m.db.Collection(collUsers)
	filter := equalityFilter(pickFilters(q.Filters, "organization"))

	var (
		users []domain.UserRollup
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		opts := options.Find().
			SetSort(descending(q.SortKey)).
			SetLimit(int64(q.Limit))
		cursor, err := coll.Find(gctx, filter, opts)
		if err != nil {
			return fmt.Errorf("find users: %w", err)
		}
		return cursor.All(gctx, &users)
	})
	g.Go(func() error {
		var err error
		total, err = coll.CountDocuments(gctx, filter)
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Batches returns the filtered, paginated batch page and its total count.
func (m *Mongo) Batches(ctx context.Context, q query.Descriptor) ([]domain.Batch, int64, error) {
	coll := m.db.Collection(collBatches)
	filter := equalityFilter(pickFilters(q.Filters, "username", "date", "status"))

	var (
		batches []domain.Batch
		total   int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		opts := options.Find().
			SetSort(descending("timestamp")).
			SetSkip(int64(q.Skip)).
			SetLimit(int64(q.Limit))
		cursor, err := coll.Find(gctx, filter, opts)
		if err != nil {
			return fmt.Errorf("find batches: %w", err)
		}
		return cursor.All(gctx, &batches)
	})
	g.Go(func() error {
		var err error
		total, err = coll.CountDocuments(gctx, filter)
		if err != nil {
			return fmt.Errorf("count batches: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return batches, total, nil
}

// BatchByID returns the full batch document including embedded policies.
func (m *Mongo) BatchByID(ctx context.Context, batchID string) (*domain.Batch, error) {
	var batch domain.Batch
	err := m.db.Collection(collBatches).
		FindOne(ctx, bson.D{{Key: "batch_id", Value: batchID}}).
		Decode(&batch)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find batch %s: %w", batchID, err)
	}
	return &batch, nil
}

// FailureGroups runs the grouped failure aggregation for the given mode.
func (m *Mongo) FailureGroups(ctx context.Context, mode query.GroupMode) ([]domain.FailureGroup, error) {
	var pipeline mongo.Pipeline
	switch mode {
	case query.GroupByCarrier:
		pipeline = failureGroupPipeline("carrier", "raw_lob", false)
	default:
		pipeline = failureGroupPipeline("raw_lob", "carrier", true)
	}

	cursor, err := m.db.Collection(collFailures).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate failures by %s: %w", mode, err)
	}

	var groups []domain.FailureGroup
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("decode failure groups: %w", err)
	}
	return groups, nil
}

// FailureSummary computes the unscoped totals over the whole failure
// collection. The three lookups are independent and run concurrently.
func (m *Mongo) FailureSummary(ctx context.Context) (*domain.FailureSummary, error) {
	coll := m.db.Collection(collFailures)
	var summary domain.FailureSummary

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, err := coll.CountDocuments(gctx, bson.D{})
		if err != nil {
			return fmt.Errorf("count failures: %w", err)
		}
		summary.TotalUnmatched = total
		return nil
	})
	g.Go(func() error {
		cursor, err := coll.Aggregate(gctx, totalIncurredPipeline())
		if err != nil {
			return fmt.Errorf("aggregate incurred total: %w", err)
		}
		var totals []struct {
			Total float64 `bson:"total"`
		}
		if err := cursor.All(gctx, &totals); err != nil {
			return fmt.Errorf("decode incurred total: %w", err)
		}
		if len(totals) > 0 {
			summary.TotalUnmappedVal = totals[0].Total
		}
		return nil
	})
	g.Go(func() error {
		var codes []string
		if err := coll.Distinct(gctx, "raw_lob", bson.D{}).Decode(&codes); err != nil {
			return fmt.Errorf("distinct lob codes: %w", err)
		}
		summary.UniqueLOBCodes = len(codes)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Failures returns individual failure rows and the total count over the same
// threshold filter.
func (m *Mongo) Failures(ctx context.Context, q query.Descriptor) ([]domain.FailureRecord, int64, error) {
	coll := m.db.Collection(collFailures)
	filter := incurredFilter(q.MinIncurred)

	var (
		failures []domain.FailureRecord
		total    int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		opts := options.Find().
			SetSort(descending("date", "incurred")).
			SetLimit(int64(q.Limit))
		cursor, err := coll.Find(gctx, filter, opts)
		if err != nil {
			return fmt.Errorf("find failures: %w", err)
		}
		return cursor.All(gctx, &failures)
	})
	g.Go(func() error {
		var err error
		total, err = coll.CountDocuments(gctx, filter)
		if err != nil {
			return fmt.Errorf("count failures: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return failures, total, nil
}

// Products returns the full product breakdown, policy count descending.
func (m *Mongo) Products(ctx context.Context) ([]domain.ProductRollup, error) {
	opts := options.Find().SetSort(descending("policies_count"))
	cursor, err := m.db.Collection(collProducts).Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}

	var products []domain.ProductRollup
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

// AppStats gathers the quick stats shown on the app registry card. The three
// lookups are independent and run concurrently.
func (m *Mongo) AppStats(ctx context.Context, today string) (*domain.AppStats, error) {
	var stats domain.AppStats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, err := m.db.Collection(collActivity).CountDocuments(gctx, bson.D{})
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		stats.TotalUsers = total
		return nil
	})
	g.Go(func() error {
		cursor, err := m.db.Collection(collActivity).Aggregate(gctx, batchTotalsPipeline())
		if err != nil {
			return fmt.Errorf("aggregate batch totals: %w", err)
		}
		var totals []struct {
			Total int64 `bson:"total"`
		}
		if err := cursor.All(gctx, &totals); err != nil {
			return fmt.Errorf("decode batch totals: %w", err)
		}
		if len(totals) > 0 {
			stats.TotalBatches = totals[0].Total
		}
		return nil
	})
	g.Go(func() error {
		rec, err := m.HealthCurrent(gctx, today)
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		stats.ActiveToday = rec.TotalBatches
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &stats, nil
}
