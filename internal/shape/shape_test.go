package shape

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsrin/en-app-analytics/internal/domain"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.57, Round2(10.566))
	assert.Equal(t, 10.56, Round2(10.561))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, 1234.5, Round2(1234.499999999))
}

func TestPagination(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		limit     int
		skip      int
		wantPage  int
		wantPages int
	}{
		{"middle page", 23, 5, 10, 3, 5},
		{"first page", 23, 5, 0, 1, 5},
		{"exact multiple", 20, 5, 0, 1, 4},
		{"empty result", 0, 50, 0, 1, 0},
		{"single partial page", 3, 50, 0, 1, 1},
		{"unbounded limit", 7, 0, 0, 1, 1},
		{"unbounded limit empty", 0, 0, 0, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pages := Pagination(tt.total, tt.limit, tt.skip)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPages, pages)
		})
	}
}

func TestZeroHealthRecord(t *testing.T) {
	rec := ZeroHealthRecord("2025-06-15")
	assert.Equal(t, "2025-06-15", rec.Date)
	assert.Zero(t, rec.TotalBatches)
	assert.Zero(t, rec.MatchRate)
	assert.Zero(t, rec.SuccessRate)
}

func TestTrendPoints(t *testing.T) {
	records := []domain.DailyHealthRecord{
		{
			Date:              "2025-06-14",
			TotalBatches:      4,
			TotalPolicies:     12,
			TotalClaims:       300,
			MatchedClaims:     290,
			UnmatchedClaims:   10,
			MatchRate:         96.7,
			AvgProcessingTime: 42.5,
			SuccessRate:       100,
		},
	}

	points := TrendPoints(records)
	require.Len(t, points, 1)

	// chart subset only: claim counters are not part of the projection
	assert.Equal(t, domain.HealthTrendPoint{
		Date:              "2025-06-14",
		TotalBatches:      4,
		TotalPolicies:     12,
		AvgProcessingTime: 42.5,
		MatchRate:         96.7,
		SuccessRate:       100,
	}, points[0])
}

func TestUserRows(t *testing.T) {
	first := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	last := time.Date(2025, 6, 7, 8, 9, 10, 0, time.UTC)

	rows := UserRows([]domain.UserRollup{{
		Username:                 "alice",
		Organization:             "acme",
		TotalBatches:             9,
		AvgProcessingTimeSeconds: 31.5,
		FirstActivity:            first,
		LastActivity:             last,
	}})
	require.Len(t, rows, 1)

	assert.Equal(t, "alice", rows[0].Username)
	assert.Equal(t, 31.5, rows[0].AvgProcessingTime)
	assert.Equal(t, "2025-01-02T03:04:05Z", rows[0].FirstRequest)
	assert.Equal(t, "2025-06-07T08:09:10Z", rows[0].LastRequest)
}

func TestBatchRowsOmitPolicies(t *testing.T) {
	rows := BatchRows([]domain.Batch{{
		BatchID:  "b-1",
		Products: nil,
		Policies: []domain.Policy{{Appnum: "A-1"}},
	}})
	require.Len(t, rows, 1)
	assert.Equal(t, "b-1", rows[0].BatchID)
	assert.Equal(t, []string{}, rows[0].Products)
}

func TestBatchDetail(t *testing.T) {
	inferenced := 2
	batch := &domain.Batch{
		BatchID:       "b-1",
		Username:      "alice",
		Timestamp:     time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
		Date:          "2025-06-15",
		Status:        "success",
		PolicyCount:   2,
		TotalClaims:   50,
		MatchedClaims: 48,
		MatchRate:     96,
		Products:      []string{"GL", "WC"},
		Policies: []domain.Policy{
			{
				Appnum: "A-1",
				Status: "success",
				Stats: domain.PolicyStats{
					RawClaims:       30,
					Matched:         30,
					InferencedCount: &inferenced,
					Products:        []string{"GL"},
				},
				Timing: &domain.PolicyTiming{DurationSeconds: 12.5},
			},
			{
				Appnum: "A-2",
				Status: "success",
				Stats:  domain.PolicyStats{RawClaims: 20, Matched: 18, Unmatched: 2},
			},
		},
	}

	detail := BatchDetail(batch)

	assert.Equal(t, "b-1", detail.BatchID)
	assert.Equal(t, 2, detail.Summary.PolicyCount)
	assert.Equal(t, 96.0, detail.Summary.MatchRate)
	require.Len(t, detail.Policies, 2)

	// timing recorded: processing_time present
	require.NotNil(t, detail.Policies[0].ProcessingTime)
	assert.Equal(t, 12.5, *detail.Policies[0].ProcessingTime)
	assert.Equal(t, []string{"GL"}, detail.Policies[0].Products)

	// no timing block: absent, not zero
	assert.Nil(t, detail.Policies[1].ProcessingTime)
	assert.Equal(t, []string{}, detail.Policies[1].Products)
}

func TestLOBRows(t *testing.T) {
	rows := LOBRows([]domain.FailureGroup{
		{Key: "B", FailureCount: 5, TotalIncurred: 1000.556, Distinct: []string{"CarrierX"}, CommonReason: "no mapping"},
		{Key: "A", FailureCount: 3, TotalIncurred: 10, Distinct: nil},
	})
	require.Len(t, rows, 2)

	// order preserved: store emits failure_count descending
	assert.Equal(t, "B", rows[0].LOBCode)
	assert.Equal(t, int64(5), rows[0].FailureCount)
	assert.Equal(t, 1000.56, rows[0].TotalIncurred)
	assert.Equal(t, []string{"CarrierX"}, rows[0].AffectedCarriers)
	assert.Equal(t, "no mapping", rows[0].CommonReason)

	assert.Equal(t, "A", rows[1].LOBCode)
	assert.Equal(t, []string{}, rows[1].AffectedCarriers)
}

func TestCarrierRows(t *testing.T) {
	rows := CarrierRows([]domain.FailureGroup{
		{Key: "CarrierX", FailureCount: 4, TotalIncurred: 99.999, Distinct: []string{"A", "B"}},
	})
	require.Len(t, rows, 1)

	assert.Equal(t, "CarrierX", rows[0].Carrier)
	assert.Equal(t, 100.0, rows[0].TotalIncurred)
	assert.Equal(t, 2, rows[0].UniqueLOBCodes)
	assert.Equal(t, []string{"A", "B"}, rows[0].LOBCodes)
}

func TestFailureRows(t *testing.T) {
	rows := FailureRows([]domain.FailureRecord{{LossNumber: "L-1", Incurred: 12.346}})
	require.Len(t, rows, 1)
	assert.Equal(t, 12.35, rows[0].Incurred)
}

func TestSummary(t *testing.T) {
	s := Summary(&domain.FailureSummary{
		TotalUnmatched:   8,
		TotalUnmappedVal: 1010.556,
		UniqueLOBCodes:   3,
	})
	assert.Equal(t, int64(8), s.TotalUnmatched)
	assert.Equal(t, 1010.56, s.TotalUnmappedVal)
	assert.Equal(t, 3, s.UniqueLOBCodes)
}
