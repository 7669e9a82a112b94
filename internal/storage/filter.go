package storage

import (
	"slices"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// equalityFilter translates present, non-empty equality filters into a Mongo
// predicate. Keys are emitted in sorted order so the same descriptor always
// produces the same document. An empty map yields an open (match-all) filter.
func equalityFilter(filters map[string]string) bson.D {
	if len(filters) == 0 {
		return bson.D{}
	}

	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	d := make(bson.D, 0, len(keys))
	for _, k := range keys {
		d = append(d, bson.E{Key: k, Value: filters[k]})
	}
	return d
}

// pickFilters keeps only the named keys of a resolved filter map. Each view
// honors a fixed subset of the equality parameters.
func pickFilters(filters map[string]string, keys ...string) map[string]string {
	picked := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := filters[k]; ok {
			picked[k] = v
		}
	}
	return picked
}

// incurredFilter builds the inclusive minimum-incurred predicate. A zero
// threshold means no threshold and yields an open filter.
func incurredFilter(min float64) bson.D {
	if min <= 0 {
		return bson.D{}
	}
	return bson.D{{Key: "incurred", Value: bson.D{{Key: "$gte", Value: min}}}}
}

// sinceFilter builds the inclusive lower date bound for trend queries. Dates
// are ISO strings, so lexicographic $gte is a correct date comparison. The
// window is unbounded above, and unbounded entirely when since is empty.
func sinceFilter(since string) bson.D {
	if since == "" {
		return bson.D{}
	}
	return bson.D{{Key: "date", Value: bson.D{{Key: "$gte", Value: since}}}}
}

// descending builds a sort document over the given fields, all descending,
// in the order given. Earlier fields take precedence for tie-breaks.
func descending(fields ...string) bson.D {
	d := make(bson.D, 0, len(fields))
	for _, f := range fields {
		d = append(d, bson.E{Key: f, Value: -1})
	}
	return d
}
