// Package analytics holds the pure aggregation routines behind every page
// view: distributions, strategy statistics, utilization, savings and the
// migration timeline. All functions accept empty input and never divide by
// zero.
package analytics
