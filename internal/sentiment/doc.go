// Package sentiment scores records against a polarity lexicon and aggregates
// token counts by region and time bucket.
//
// Aggregation is a pure reduction over its inputs: no side effects, safe to
// re-run, and invariant to record order because bucket merges are additive.
package sentiment
