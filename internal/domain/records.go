// Package domain defines the analytics record types materialized by the
// upstream processing pipeline. All records are read-only from this service's
// perspective; an external writer maintains the underlying views.
package domain

import "time"

// DailyHealthRecord is one day of aggregated pipeline health, keyed by date.
type DailyHealthRecord struct {
	Date              string  `bson:"date"                json:"date"`
	TotalBatches      int     `bson:"total_batches"       json:"total_batches"`
	TotalPolicies     int     `bson:"total_policies"      json:"total_policies"`
	TotalClaims       int     `bson:"total_claims"        json:"total_claims"`
	MatchedClaims     int     `bson:"matched_claims"      json:"matched_claims"`
	UnmatchedClaims   int     `bson:"unmatched_claims"    json:"unmatched_claims"`
	MatchRate         float64 `bson:"match_rate"          json:"match_rate"`
	AvgProcessingTime float64 `bson:"avg_processing_time" json:"avg_processing_time"`
	SuccessRate       float64 `bson:"success_rate"        json:"success_rate"`
}

// UserRollup is the per-user activity rollup, keyed by username.
// MatchRate may be pre-stored independently of matched/total counts;
// consumers must not assume exact consistency beyond presentation.
type UserRollup struct {
	Username                 string    `bson:"username"                    json:"username"`
	Organization             string    `bson:"organization"                json:"organization"`
	TotalBatches             int       `bson:"total_batches"               json:"total_batches"`
	TotalPolicies            int       `bson:"total_policies"              json:"total_policies"`
	TotalClaimsRaw           int       `bson:"total_claims_raw"            json:"total_claims_raw"`
	MatchedClaims            int       `bson:"matched_claims"              json:"matched_claims"`
	MatchRate                float64   `bson:"match_rate"                  json:"match_rate"`
	AvgProcessingTimeSeconds float64   `bson:"avg_processing_time_seconds" json:"avg_processing_time_seconds"`
	FirstActivity            time.Time `bson:"first_activity"              json:"first_activity"`
	LastActivity             time.Time `bson:"last_activity"               json:"last_activity"`
}

// Batch is one execution of the upstream pipeline. Policies are embedded and
// present only when the detail view is fetched.
type Batch struct {
	BatchID           string    `bson:"batch_id"            json:"batch_id"`
	Username          string    `bson:"username"            json:"username"`
	Organization      string    `bson:"organization"        json:"organization"`
	Timestamp         time.Time `bson:"timestamp"           json:"timestamp"`
	Date              string    `bson:"date"                json:"date"`
	PolicyCount       int       `bson:"policy_count"        json:"policy_count"`
	PDFCount          int       `bson:"pdf_count"           json:"pdf_count"`
	TotalClaims       int       `bson:"total_claims"        json:"total_claims"`
	MatchedClaims     int       `bson:"matched_claims"      json:"matched_claims"`
	UnmatchedClaims   int       `bson:"unmatched_claims"    json:"unmatched_claims"`
	MatchRate         float64   `bson:"match_rate"          json:"match_rate"`
	AvgProcessingTime float64   `bson:"avg_processing_time" json:"avg_processing_time"`
	Status            string    `bson:"status"              json:"status"`
	Products          []string  `bson:"products"            json:"products"`
	Policies          []Policy  `bson:"policies,omitempty"  json:"policies,omitempty"`
}

// Policy is a single policy result nested under a batch.
type Policy struct {
	Appnum string        `bson:"appnum"           json:"appnum"`
	Status string        `bson:"status"           json:"status"`
	Stats  PolicyStats   `bson:"stats"            json:"stats"`
	Timing *PolicyTiming `bson:"timing,omitempty" json:"timing,omitempty"`
}

// PolicyStats holds per-policy claim matching counts.
type PolicyStats struct {
	RawClaims       int      `bson:"raw_claims"                 json:"raw_claims"`
	Matched         int      `bson:"matched"                    json:"matched"`
	Unmatched       int      `bson:"unmatched"                  json:"unmatched"`
	InferencedCount *int     `bson:"inferenced_count,omitempty" json:"inferenced_count,omitempty"`
	Products        []string `bson:"products,omitempty"         json:"products,omitempty"`
}

// PolicyTiming holds per-policy processing timing. A nil timing block means
// no timing was recorded, which is distinct from a zero duration.
type PolicyTiming struct {
	DurationSeconds float64 `bson:"duration_seconds" json:"duration_seconds"`
}

// FailureRecord is one claim line that could not be mapped to a known
// policy/LOB combination. RawLOB is an ungoverned vocabulary.
type FailureRecord struct {
	LossNumber      string  `bson:"loss_number"      json:"loss_number"`
	BatchID         string  `bson:"batch_id"         json:"batch_id"`
	Appnum          string  `bson:"appnum"           json:"appnum"`
	Date            string  `bson:"date"             json:"date"`
	RawLOB          string  `bson:"raw_lob"          json:"raw_lob"`
	Description     string  `bson:"description"      json:"description"`
	Incurred        float64 `bson:"incurred"         json:"incurred"`
	Carrier         string  `bson:"carrier"          json:"carrier"`
	UnmatchedReason string  `bson:"unmatched_reason" json:"unmatched_reason"`
	DateOfLoss      string  `bson:"date_of_loss"     json:"date_of_loss"`
}

// ProductRollup is the per-product aggregate, keyed by product name.
type ProductRollup struct {
	Product       string `bson:"product"        json:"product"`
	PoliciesCount int    `bson:"policies_count" json:"policies_count"`
	BatchesCount  int    `bson:"batches_count"  json:"batches_count"`
}

// FailureGroup is one row of a grouped failure aggregation. Key is the
// grouping value (raw LOB code or carrier); Distinct collects the distinct
// values of the opposite dimension. CommonReason is the unmatched reason of
// the first record encountered in the group under the store's natural
// iteration order, not a statistical mode.
type FailureGroup struct {
	Key           string   `bson:"_id"             json:"-"`
	FailureCount  int64    `bson:"failure_count"   json:"failure_count"`
	TotalIncurred float64  `bson:"total_incurred"  json:"total_incurred"`
	Distinct      []string `bson:"distinct_values" json:"-"`
	CommonReason  string   `bson:"common_reason"   json:"common_reason,omitempty"`
}

// FailureSummary is computed over the entire unfiltered failure collection.
// It is never scoped by grouping truncation or list limits.
type FailureSummary struct {
	TotalUnmatched    int64   `json:"total_unmatched"`
	TotalUnmappedVal  float64 `json:"total_unmapped_value"`
	UniqueLOBCodes    int     `json:"unique_lob_codes"`
}

// AppStats are the quick stats attached to active apps in the registry list.
type AppStats struct {
	TotalUsers   int64 `json:"total_users"`
	ActiveToday  int   `json:"active_today"`
	TotalBatches int64 `json:"total_batches"`
}
