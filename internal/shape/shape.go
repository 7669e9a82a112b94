// Package shape projects store records and aggregates into the stable
// response schema: public field subsets, numeric rounding at the boundary,
// documented defaults for absent values, and pagination metadata.
package shape

import (
	"math"
	"time"

	"github.com/vsrin/en-app-analytics/internal/domain"
)

// Round2 rounds a currency amount to 2 decimal places. It is applied only
// after accumulation completes, never before.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Pagination computes page and pages from an unfiltered-by-limit total count.
// pages is 0 when the total is 0. A non-positive limit means the page is
// unbounded: a single page holds everything.
func Pagination(total int64, limit, skip int) (page, pages int) {
	if limit <= 0 {
		if total > 0 {
			return 1, 1
		}
		return 1, 0
	}
	page = skip/limit + 1
	pages = int((total + int64(limit) - 1) / int64(limit))
	return page, pages
}

// ZeroHealthRecord is the documented default substituted when no health
// record exists for the requested date.
func ZeroHealthRecord(date string) domain.DailyHealthRecord {
	return domain.DailyHealthRecord{Date: date}
}

// TrendPoints projects health records to the chart field subset, preserving
// order.
func TrendPoints(records []domain.DailyHealthRecord) []domain.HealthTrendPoint {
	points := make([]domain.HealthTrendPoint, 0, len(records))
	for _, r := range records {
		points = append(points, domain.HealthTrendPoint{
			Date:              r.Date,
			TotalBatches:      r.TotalBatches,
			TotalPolicies:     r.TotalPolicies,
			AvgProcessingTime: r.AvgProcessingTime,
			MatchRate:         r.MatchRate,
			SuccessRate:       r.SuccessRate,
		})
	}
	return points
}

// UserRows projects user rollups to their public field set.
func UserRows(users []domain.UserRollup) []domain.UserRow {
	rows := make([]domain.UserRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, domain.UserRow{
			Username:          u.Username,
			Organization:      u.Organization,
			TotalBatches:      u.TotalBatches,
			TotalPolicies:     u.TotalPolicies,
			TotalClaimsRaw:    u.TotalClaimsRaw,
			MatchedClaims:     u.MatchedClaims,
			MatchRate:         u.MatchRate,
			AvgProcessingTime: u.AvgProcessingTimeSeconds,
			FirstRequest:      formatTimestamp(u.FirstActivity),
			LastRequest:       formatTimestamp(u.LastActivity),
		})
	}
	return rows
}

// BatchRows projects batches to their list field set; embedded policies are
// never leaked into the list view.
func BatchRows(batches []domain.Batch) []domain.BatchRow {
	rows := make([]domain.BatchRow, 0, len(batches))
	for _, b := range batches {
		rows = append(rows, domain.BatchRow{
			BatchID:           b.BatchID,
			Username:          b.Username,
			Organization:      b.Organization,
			Timestamp:         formatTimestamp(b.Timestamp),
			Date:              b.Date,
			PolicyCount:       b.PolicyCount,
			PDFCount:          b.PDFCount,
			TotalClaims:       b.TotalClaims,
			MatchedClaims:     b.MatchedClaims,
			UnmatchedClaims:   b.UnmatchedClaims,
			MatchRate:         b.MatchRate,
			AvgProcessingTime: b.AvgProcessingTime,
			Status:            b.Status,
			Products:          stringsOrEmpty(b.Products),
		})
	}
	return rows
}

// BatchDetail reshapes a full batch into the detail response: flat batch
// fields, a summary block, and flattened policy rows.
func BatchDetail(b *domain.Batch) domain.BatchDetailResponse {
	policies := make([]domain.PolicyRow, 0, len(b.Policies))
	for _, p := range b.Policies {
		row := domain.PolicyRow{
			Appnum:   p.Appnum,
			Status:   p.Status,
			Stats:    p.Stats,
			Products: stringsOrEmpty(p.Stats.Products),
		}
		// A missing timing block stays absent; zero would claim a recorded
		// zero-second duration.
		if p.Timing != nil {
			seconds := p.Timing.DurationSeconds
			row.ProcessingTime = &seconds
		}
		policies = append(policies, row)
	}

	return domain.BatchDetailResponse{
		BatchID:      b.BatchID,
		Username:     b.Username,
		Organization: b.Organization,
		Timestamp:    formatTimestamp(b.Timestamp),
		Date:         b.Date,
		Status:       b.Status,
		Summary: domain.BatchSummary{
			PolicyCount:       b.PolicyCount,
			PDFCount:          b.PDFCount,
			TotalClaims:       b.TotalClaims,
			MatchedClaims:     b.MatchedClaims,
			UnmatchedClaims:   b.UnmatchedClaims,
			MatchRate:         b.MatchRate,
			AvgProcessingTime: b.AvgProcessingTime,
		},
		Products: stringsOrEmpty(b.Products),
		Policies: policies,
	}
}

// LOBRows shapes lob-mode failure groups, rounding currency at the boundary.
// Group order is preserved.
func LOBRows(groups []domain.FailureGroup) []domain.LOBGroupRow {
	rows := make([]domain.LOBGroupRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, domain.LOBGroupRow{
			LOBCode:          g.Key,
			FailureCount:     g.FailureCount,
			TotalIncurred:    Round2(g.TotalIncurred),
			AffectedCarriers: stringsOrEmpty(g.Distinct),
			CommonReason:     g.CommonReason,
		})
	}
	return rows
}

// CarrierRows shapes carrier-mode failure groups.
func CarrierRows(groups []domain.FailureGroup) []domain.CarrierGroupRow {
	rows := make([]domain.CarrierGroupRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, domain.CarrierGroupRow{
			Carrier:        g.Key,
			FailureCount:   g.FailureCount,
			TotalIncurred:  Round2(g.TotalIncurred),
			UniqueLOBCodes: len(g.Distinct),
			LOBCodes:       stringsOrEmpty(g.Distinct),
		})
	}
	return rows
}

// FailureRows returns boundary-rounded copies of individual failure records.
func FailureRows(failures []domain.FailureRecord) []domain.FailureRecord {
	rows := make([]domain.FailureRecord, 0, len(failures))
	for _, f := range failures {
		f.Incurred = Round2(f.Incurred)
		rows = append(rows, f)
	}
	return rows
}

// Summary rounds the unscoped failure summary's currency total.
func Summary(s *domain.FailureSummary) domain.FailureSummary {
	if s == nil {
		return domain.FailureSummary{}
	}
	out := *s
	out.TotalUnmappedVal = Round2(out.TotalUnmappedVal)
	return out
}

// ProductRows guards against a nil product slice.
func ProductRows(products []domain.ProductRollup) []domain.ProductRollup {
	if products == nil {
		return []domain.ProductRollup{}
	}
	return products
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// stringsOrEmpty keeps JSON arrays as [] rather than null.
func stringsOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
