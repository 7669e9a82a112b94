package storage

import (
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// nullSafeSum builds a $sum accumulator that treats absent or null values of
// the field as 0, so a null never propagates into an accumulated total.
func nullSafeSum(field string) bson.D {
	return bson.D{{Key: "$sum", Value: bson.D{
		{Key: "$ifNull", Value: bson.A{"$" + field, 0}},
	}}}
}

// failureGroupPipeline builds the grouped failure aggregation.
//
// groupField is the grouping dimension (raw_lob or carrier) and distinctField
// is the opposite dimension collected as a distinct set per group. Groups are
// ordered by failure count descending; ties keep the store's stable iteration
// order. Only the top 20 groups are returned; summary totals are computed
// separately and are never scoped by this truncation.
//
// common_reason takes the unmatched_reason of the first document encountered
// in each group under natural iteration order. It is a known simplification,
// not a most-frequent value.
func failureGroupPipeline(groupField, distinctField string, withReason bool) mongo.Pipeline {
	group := bson.D{
		{Key: "_id", Value: "$" + groupField},
		{Key: "failure_count", Value: bson.D{{Key: "$sum", Value: 1}}},
		{Key: "total_incurred", Value: nullSafeSum("incurred")},
		{Key: "distinct_values", Value: bson.D{{Key: "$addToSet", Value: "$" + distinctField}}},
	}
	if withReason {
		group = append(group, bson.E{
			Key: "common_reason", Value: bson.D{{Key: "$first", Value: "$unmatched_reason"}},
		})
	}

	return mongo.Pipeline{
		{{Key: "$group", Value: group}},
		{{Key: "$sort", Value: bson.D{{Key: "failure_count", Value: -1}}}},
		{{Key: "$limit", Value: topGroups}},
	}
}

// totalIncurredPipeline sums incurred over every failure document.
func totalIncurredPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: nullSafeSum("incurred")},
		}}},
	}
}

// batchTotalsPipeline sums the batch_ids set sizes across user_activity,
// yielding the all-time batch count for the app stats block.
func batchTotalsPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$project", Value: bson.D{
			{Key: "batch_count", Value: bson.D{{Key: "$size", Value: bson.D{
				{Key: "$ifNull", Value: bson.A{"$batch_ids", bson.A{}}},
			}}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$batch_count"}}},
		}}},
	}
}
