package analytics

import (
	"math"

	"github.com/martinsuchenak/migrateplan/internal/model"
)

// Bucket is one category of a distribution.
type Bucket struct {
	Key     string  `json:"key"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
	Rounded int     `json:"rounded_percent"`
}

// Percent returns count/total*100, or 0 when total is 0.
func Percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

// RoundedPercent is Percent rounded half away from zero, for display.
func RoundedPercent(count, total int) int {
	return int(math.Round(Percent(count, total)))
}

// distribution counts workloads per key, reporting every key in order
// including those with no workloads.
func distribution(workloads []model.Workload, keys []string, keyOf func(model.Workload) string) []Bucket {
	counts := make(map[string]int, len(keys))
	for _, w := range workloads {
		counts[keyOf(w)]++
	}
	buckets := make([]Bucket, 0, len(keys))
	for _, k := range keys {
		buckets = append(buckets, Bucket{
			Key:     k,
			Count:   counts[k],
			Percent: Percent(counts[k], len(workloads)),
			Rounded: RoundedPercent(counts[k], len(workloads)),
		})
	}
	return buckets
}

func levelKeys() []string {
	keys := make([]string, 0, len(model.Levels))
	for _, l := range model.Levels {
		keys = append(keys, string(l))
	}
	return keys
}

// CountByStatus returns the status distribution.
func CountByStatus(workloads []model.Workload) []Bucket {
	keys := make([]string, 0, len(model.WorkloadStatuses))
	for _, s := range model.WorkloadStatuses {
		keys = append(keys, string(s))
	}
	return distribution(workloads, keys, func(w model.Workload) string { return string(w.Status) })
}

// CountByStrategy returns the strategy distribution in canonical order.
func CountByStrategy(workloads []model.Workload) []Bucket {
	keys := make([]string, 0, len(model.StrategyOrder))
	for _, s := range model.StrategyOrder {
		keys = append(keys, string(s))
	}
	return distribution(workloads, keys, func(w model.Workload) string { return string(w.Strategy) })
}

func CountByRisk(workloads []model.Workload) []Bucket {
	return distribution(workloads, levelKeys(), func(w model.Workload) string { return string(w.RiskLevel) })
}

func CountByComplexity(workloads []model.Workload) []Bucket {
	return distribution(workloads, levelKeys(), func(w model.Workload) string { return string(w.Complexity) })
}

func CountByPriority(workloads []model.Workload) []Bucket {
	return distribution(workloads, levelKeys(), func(w model.Workload) string { return string(w.Priority) })
}

// CountOf returns the count for key, or 0 if the key is absent.
func CountOf(buckets []Bucket, key string) int {
	for _, b := range buckets {
		if b.Key == key {
			return b.Count
		}
	}
	return 0
}
