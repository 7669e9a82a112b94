package handler_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vsrin/en-app-analytics/internal/domain"
	"github.com/vsrin/en-app-analytics/internal/query"
)

// mockStore is a testify mock of storage.Store.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockStore) AppStats(ctx context.Context, today string) (*domain.AppStats, error) {
	args := m.Called(ctx, today)
	if v := args.Get(0); v != nil {
		return v.(*domain.AppStats), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) HealthCurrent(ctx context.Context, date string) (*domain.DailyHealthRecord, error) {
	args := m.Called(ctx, date)
	if v := args.Get(0); v != nil {
		return v.(*domain.DailyHealthRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) HealthTrend(ctx context.Context, since string) ([]domain.DailyHealthRecord, error) {
	args := m.Called(ctx, since)
	if v := args.Get(0); v != nil {
		return v.([]domain.DailyHealthRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) Users(ctx context.Context, q query.Descriptor) ([]domain.UserRollup, int64, error) {
	args := m.Called(ctx, q)
	if v := args.Get(0); v != nil {
		return v.([]domain.UserRollup), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

func (m *mockStore) Batches(ctx context.Context, q query.Descriptor) ([]domain.Batch, int64, error) {
	args := m.Called(ctx, q)
	if v := args.Get(0); v != nil {
		return v.([]domain.Batch), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

func (m *mockStore) BatchByID(ctx context.Context, batchID string) (*domain.Batch, error) {
	args := m.Called(ctx, batchID)
	if v := args.Get(0); v != nil {
		return v.(*domain.Batch), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) FailureGroups(ctx context.Context, mode query.GroupMode) ([]domain.FailureGroup, error) {
	args := m.Called(ctx, mode)
	if v := args.Get(0); v != nil {
		return v.([]domain.FailureGroup), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) FailureSummary(ctx context.Context) (*domain.FailureSummary, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(*domain.FailureSummary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) Failures(ctx context.Context, q query.Descriptor) ([]domain.FailureRecord, int64, error) {
	args := m.Called(ctx, q)
	if v := args.Get(0); v != nil {
		return v.([]domain.FailureRecord), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

func (m *mockStore) Products(ctx context.Context) ([]domain.ProductRollup, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]domain.ProductRollup), args.Error(1)
	}
	return nil, args.Error(1)
}
