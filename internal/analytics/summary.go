package analytics

import "github.com/martinsuchenak/migrateplan/internal/model"

// Summary holds portfolio totals and averages.
type Summary struct {
	TotalWorkloads int     `json:"total_workloads"`
	TotalCost      float64 `json:"total_cost"`
	TotalDuration  int     `json:"total_duration"`
	AvgCost        float64 `json:"avg_cost_per_workload"`
	AvgDuration    float64 `json:"avg_duration_per_workload"`
	Planning       int     `json:"planning"`
	InProgress     int     `json:"in_progress"`
	Completed      int     `json:"completed"`
	OnHold         int     `json:"on_hold"`
}

// Summarize totals cost and duration and counts workloads per status.
func Summarize(workloads []model.Workload) Summary {
	var s Summary
	s.TotalWorkloads = len(workloads)
	for _, w := range workloads {
		s.TotalCost += w.EstimatedCost
		s.TotalDuration += w.EstimatedDuration
		switch w.Status {
		case model.StatusPlanning:
			s.Planning++
		case model.StatusInProgress:
			s.InProgress++
		case model.StatusCompleted:
			s.Completed++
		case model.StatusOnHold:
			s.OnHold++
		}
	}
	if s.TotalWorkloads > 0 {
		s.AvgCost = s.TotalCost / float64(s.TotalWorkloads)
		s.AvgDuration = float64(s.TotalDuration) / float64(s.TotalWorkloads)
	}
	return s
}

// Progress returns the share of completed workloads as a percentage.
func Progress(workloads []model.Workload) float64 {
	completed := 0
	for _, w := range workloads {
		if w.Status == model.StatusCompleted {
			completed++
		}
	}
	return Percent(completed, len(workloads))
}

// AssessmentProgress counts workloads that have a strategy, complexity and
// risk level recorded.
func AssessmentProgress(workloads []model.Workload) (assessed int, percent float64) {
	for _, w := range workloads {
		if w.Strategy != "" && w.Complexity != "" && w.RiskLevel != "" {
			assessed++
		}
	}
	return assessed, Percent(assessed, len(workloads))
}

// StrategyStat aggregates the workloads assigned to one strategy.
type StrategyStat struct {
	model.StrategyInfo
	Count       int     `json:"count"`
	TotalCost   float64 `json:"total_cost"`
	AvgCost     float64 `json:"avg_cost"`
	AvgDuration float64 `json:"avg_duration"`
	Savings     float64 `json:"potential_savings"`
}

// StrategyStats returns one entry per strategy in canonical order.
func StrategyStats(workloads []model.Workload) []StrategyStat {
	type acc struct {
		count    int
		cost     float64
		duration int
	}
	by := make(map[model.Strategy]*acc, len(model.StrategyOrder))
	for _, w := range workloads {
		a, ok := by[w.Strategy]
		if !ok {
			a = &acc{}
			by[w.Strategy] = a
		}
		a.count++
		a.cost += w.EstimatedCost
		a.duration += w.EstimatedDuration
	}

	stats := make([]StrategyStat, 0, len(model.StrategyOrder))
	for _, s := range model.StrategyOrder {
		info := model.Strategies[s]
		st := StrategyStat{StrategyInfo: info}
		if a, ok := by[s]; ok {
			st.Count = a.count
			st.TotalCost = a.cost
			st.AvgCost = a.cost / float64(a.count)
			st.AvgDuration = float64(a.duration) / float64(a.count)
		}
		st.Savings = st.TotalCost * info.CostSaving.Multiplier()
		stats = append(stats, st)
	}
	return stats
}

// PotentialSavings sums each strategy's total cost weighted by its
// cost-saving multiplier.
func PotentialSavings(workloads []model.Workload) float64 {
	total := 0.0
	for _, st := range StrategyStats(workloads) {
		total += st.Savings
	}
	return total
}
