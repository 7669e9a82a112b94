package domain

// ErrorResponse is the envelope returned for every non-2xx outcome.
// Message carries detail only in debug mode.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// LivenessResponse is the /health probe body.
type LivenessResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// AppInfo is one registry entry in the apps list, with quick stats attached
// for active apps only.
type AppInfo struct {
	AppID       string    `json:"app_id"`
	AppName     string    `json:"app_name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Status      string    `json:"status"`
	Database    string    `json:"database"`
	Stats       *AppStats `json:"stats,omitempty"`
}

// AppsResponse is the GET /apps body.
type AppsResponse struct {
	Apps []AppInfo `json:"apps"`
}

// HealthTrendPoint is the per-day trend projection. It intentionally carries
// only the fields the dashboard charts; the source record keeps the rest.
type HealthTrendPoint struct {
	Date              string  `json:"date"`
	TotalBatches      int     `json:"total_batches"`
	TotalPolicies     int     `json:"total_policies"`
	AvgProcessingTime float64 `json:"avg_processing_time"`
	MatchRate         float64 `json:"match_rate"`
	SuccessRate       float64 `json:"success_rate"`
}

// SystemHealthResponse is the GET /apps/:appId/system-health body.
type SystemHealthResponse struct {
	AppID   string             `json:"app_id"`
	Current DailyHealthRecord  `json:"current"`
	Trend   []HealthTrendPoint `json:"trend"`
}

// UserRow is the public projection of a UserRollup.
type UserRow struct {
	Username          string  `json:"username"`
	Organization      string  `json:"organization"`
	TotalBatches      int     `json:"total_batches"`
	TotalPolicies     int     `json:"total_policies"`
	TotalClaimsRaw    int     `json:"total_claims_raw"`
	MatchedClaims     int     `json:"matched_claims"`
	MatchRate         float64 `json:"match_rate"`
	AvgProcessingTime float64 `json:"avg_processing_time"`
	FirstRequest      string  `json:"first_request"`
	LastRequest       string  `json:"last_request"`
}

// UsersResponse is the GET /apps/:appId/users body.
type UsersResponse struct {
	Users      []UserRow `json:"users"`
	TotalCount int64     `json:"total_count"`
}

// BatchRow is the list projection of a Batch; nested policies are omitted.
type BatchRow struct {
	BatchID           string   `json:"batch_id"`
	Username          string   `json:"username"`
	Organization      string   `json:"organization"`
	Timestamp         string   `json:"timestamp"`
	Date              string   `json:"date"`
	PolicyCount       int      `json:"policy_count"`
	PDFCount          int      `json:"pdf_count"`
	TotalClaims       int      `json:"total_claims"`
	MatchedClaims     int      `json:"matched_claims"`
	UnmatchedClaims   int      `json:"unmatched_claims"`
	MatchRate         float64  `json:"match_rate"`
	AvgProcessingTime float64  `json:"avg_processing_time"`
	Status            string   `json:"status"`
	Products          []string `json:"products"`
}

// BatchesResponse is the GET /apps/:appId/batches body.
type BatchesResponse struct {
	Batches    []BatchRow `json:"batches"`
	TotalCount int64      `json:"total_count"`
	Page       int        `json:"page"`
	Pages      int        `json:"pages"`
}

// BatchSummary groups the batch-level counters in the detail view.
type BatchSummary struct {
	PolicyCount       int     `json:"policy_count"`
	PDFCount          int     `json:"pdf_count"`
	TotalClaims       int     `json:"total_claims"`
	MatchedClaims     int     `json:"matched_claims"`
	UnmatchedClaims   int     `json:"unmatched_claims"`
	MatchRate         float64 `json:"match_rate"`
	AvgProcessingTime float64 `json:"avg_processing_time"`
}

// PolicyRow flattens a nested Policy for the batch detail view.
// ProcessingTime is nil when no timing block was recorded; callers must be
// able to distinguish that from a zero duration.
type PolicyRow struct {
	Appnum         string      `json:"appnum"`
	Status         string      `json:"status"`
	Stats          PolicyStats `json:"stats"`
	Products       []string    `json:"products"`
	ProcessingTime *float64    `json:"processing_time,omitempty"`
}

// BatchDetailResponse is the GET /apps/:appId/batches/:batchId body.
type BatchDetailResponse struct {
	BatchID      string       `json:"batch_id"`
	Username     string       `json:"username"`
	Organization string       `json:"organization"`
	Timestamp    string       `json:"timestamp"`
	Date         string       `json:"date"`
	Status       string       `json:"status"`
	Summary      BatchSummary `json:"summary"`
	Products     []string     `json:"products"`
	Policies     []PolicyRow  `json:"policies"`
}

// LOBGroupRow is one grouped failure row in lob mode.
type LOBGroupRow struct {
	LOBCode          string   `json:"lob_code"`
	FailureCount     int64    `json:"failure_count"`
	TotalIncurred    float64  `json:"total_incurred"`
	AffectedCarriers []string `json:"affected_carriers"`
	CommonReason     string   `json:"common_reason"`
}

// FailuresByLOBResponse is the failures body when group_by=lob.
type FailuresByLOBResponse struct {
	Summary FailureSummary `json:"summary"`
	ByLOB   []LOBGroupRow  `json:"by_lob"`
}

// CarrierGroupRow is one grouped failure row in carrier mode.
type CarrierGroupRow struct {
	Carrier        string   `json:"carrier"`
	FailureCount   int64    `json:"failure_count"`
	TotalIncurred  float64  `json:"total_incurred"`
	UniqueLOBCodes int      `json:"unique_lob_codes"`
	LOBCodes       []string `json:"lob_codes"`
}

// FailuresByCarrierResponse is the failures body when group_by=carrier.
type FailuresByCarrierResponse struct {
	ByCarrier []CarrierGroupRow `json:"by_carrier"`
}

// FailureListResponse is the failures body when no grouping applies.
// TotalCount covers the same filter as the rows, unaffected by the limit.
type FailureListResponse struct {
	Failures   []FailureRecord `json:"failures"`
	TotalCount int64           `json:"total_count"`
}

// ProductsResponse is the GET /apps/:appId/products body.
type ProductsResponse struct {
	Products []ProductRollup `json:"products"`
}
