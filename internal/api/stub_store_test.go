package api_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vsrin/en-app-analytics/internal/domain"
	"github.com/vsrin/en-app-analytics/internal/query"
)

// stubStore satisfies storage.Store for routing tests. Only Ping is expected
// to be exercised here; handler behavior is covered in the handler package.
type stubStore struct {
	mock.Mock
}

func (s *stubStore) Ping(ctx context.Context) error {
	return s.Called(ctx).Error(0)
}

func (s *stubStore) AppStats(context.Context, string) (*domain.AppStats, error) {
	return &domain.AppStats{}, nil
}

func (s *stubStore) HealthCurrent(context.Context, string) (*domain.DailyHealthRecord, error) {
	return &domain.DailyHealthRecord{}, nil
}

func (s *stubStore) HealthTrend(context.Context, string) ([]domain.DailyHealthRecord, error) {
	return nil, nil
}

func (s *stubStore) Users(context.Context, query.Descriptor) ([]domain.UserRollup, int64, error) {
	return nil, 0, nil
}

func (s *stubStore) Batches(context.Context, query.Descriptor) ([]domain.Batch, int64, error) {
	return nil, 0, nil
}

func (s *stubStore) BatchByID(context.Context, string) (*domain.Batch, error) {
	return &domain.Batch{}, nil
}

func (s *stubStore) FailureGroups(context.Context, query.GroupMode) ([]domain.FailureGroup, error) {
	return nil, nil
}

func (s *stubStore) FailureSummary(context.Context) (*domain.FailureSummary, error) {
	return &domain.FailureSummary{}, nil
}

func (s *stubStore) Failures(context.Context, query.Descriptor) ([]domain.FailureRecord, int64, error) {
	return nil, 0, nil
}

func (s *stubStore) Products(context.Context) ([]domain.ProductRollup, error) {
	return nil, nil
}
