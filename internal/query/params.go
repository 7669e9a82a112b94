// Package query normalizes raw request parameters into a canonical query
// descriptor. Malformed or missing optional parameters always fall back to
// documented defaults; the resolver itself never fails.
package query

import (
	"net/url"
	"strconv"
	"time"
)

// Documented parameter defaults.
const (
	DefaultDays  = 7
	DefaultLimit = 50
	DefaultSkip  = 0
)

// DateLayout is the ISO date format used by every date-keyed view.
const DateLayout = "2006-01-02"

// GroupMode selects the failure aggregation dimension.
type GroupMode string

const (
	// GroupByLOB groups failures by raw LOB code. This is the default.
	GroupByLOB GroupMode = "lob"
	// GroupByCarrier groups failures by carrier.
	GroupByCarrier GroupMode = "carrier"
	// GroupNone returns individual failure rows.
	GroupNone GroupMode = "none"
)

// Sort keys understood by the user rollup view.
const (
	SortTotalBatches  = "total_batches"
	SortTotalPolicies = "total_policies"
	SortLastActivity  = "last_activity"
)

// sortFields is the closed mapping from the public sort parameter to the
// stored field name. Unrecognized values fall back to total_batches.
var sortFields = map[string]string{
	"batches":     SortTotalBatches,
	"policies":    SortTotalPolicies,
	"last_active": SortLastActivity,
}

// Descriptor is the canonical, fully defaulted form of a request's query
// parameters.
type Descriptor struct {
	// Date is the reference date (YYYY-MM-DD) for "today" semantics. It is
	// the date parameter when supplied, otherwise the caller's clock; never
	// wall-clock time read inside the aggregation.
	Date string
	// Since is the inclusive lower bound of the trend window: Date - Days.
	Since string
	// Days is the lookback window length.
	Days int
	// SortKey is the resolved stored field name for user sorting.
	SortKey string
	// Limit and Skip bound list queries.
	Limit int
	Skip  int
	// GroupBy selects the failure aggregation mode.
	GroupBy GroupMode
	// MinIncurred is the inclusive incurred threshold; 0 means no threshold.
	MinIncurred float64
	// Filters holds the equality filters that were present and non-empty,
	// keyed by stored field name.
	Filters map[string]string
}

// Resolve builds a Descriptor from raw query values. The today argument
// supplies the reference date used when the date parameter is absent, keeping
// results reproducible for a given input.
func Resolve(values url.Values, today string) Descriptor {
	d := Descriptor{
		Days:        intParam(values, "days", DefaultDays),
		Limit:       intParam(values, "limit", DefaultLimit),
		Skip:        intParam(values, "skip", DefaultSkip),
		SortKey:     resolveSort(values.Get("sort")),
		GroupBy:     resolveGroupMode(values.Get("group_by")),
		MinIncurred: floatParam(values, "min_incurred"),
		Filters:     equalityFilters(values),
	}

	d.Date = values.Get("date")
	if d.Date == "" {
		d.Date = today
	}
	d.Since = lowerBound(d.Date, d.Days)

	return d
}

// intParam parses an integer parameter with an explicit presence check, so a
// legitimate zero is kept rather than silently replaced by the default.
func intParam(values url.Values, name string, def int) int {
	if !values.Has(name) {
		return def
	}
	n, err := strconv.Atoi(values.Get(name))
	if err != nil || n < 0 {
		return def
	}
	return n
}

// floatParam parses min_incurred. Absent, malformed, or negative values
// resolve to 0, which means "no threshold".
func floatParam(values url.Values, name string) float64 {
	f, err := strconv.ParseFloat(values.Get(name), 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

func resolveSort(sort string) string {
	if field, ok := sortFields[sort]; ok {
		return field
	}
	return SortTotalBatches
}

func resolveGroupMode(groupBy string) GroupMode {
	switch groupBy {
	case "", string(GroupByLOB):
		return GroupByLOB
	case string(GroupByCarrier):
		return GroupByCarrier
	default:
		return GroupNone
	}
}

// equalityFilters collects the optional equality parameters, mapping the
// public parameter name to the stored field name. Absent or empty parameters
// impose no constraint.
func equalityFilters(values url.Values) map[string]string {
	params := map[string]string{
		"user":         "username",
		"date":         "date",
		"status":       "status",
		"organization": "organization",
	}

	filters := make(map[string]string)
	for param, field := range params {
		if v := values.Get(param); v != "" {
			filters[field] = v
		}
	}
	return filters
}

// lowerBound computes the inclusive start of an N-day lookback window ending
// at the reference date. ISO date strings compare lexicographically, so the
// bound is returned in the same format. An unparseable reference date yields
// an empty bound, which the filter builder treats as unbounded.
func lowerBound(date string, days int) string {
	ref, err := time.Parse(DateLayout, date)
	if err != nil {
		return ""
	}
	return ref.AddDate(0, 0, -days).Format(DateLayout)
}
