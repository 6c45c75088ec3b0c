package analytics

import "github.com/martinsuchenak/migrateplan/internal/model"

// QuickWins returns up to n workloads with low risk and low complexity.
func QuickWins(workloads []model.Workload, n int) []model.Workload {
	return firstN(workloads, n, func(w model.Workload) bool {
		return w.RiskLevel == model.LevelLow && w.Complexity == model.LevelLow
	})
}

// HighRisk returns up to n high-risk workloads.
func HighRisk(workloads []model.Workload, n int) []model.Workload {
	return firstN(workloads, n, func(w model.Workload) bool {
		return w.RiskLevel == model.LevelHigh
	})
}

// Candidates counts workloads assigned to strategy s.
func Candidates(workloads []model.Workload, s model.Strategy) int {
	n := 0
	for _, w := range workloads {
		if w.Strategy == s {
			n++
		}
	}
	return n
}

func firstN(workloads []model.Workload, n int, keep func(model.Workload) bool) []model.Workload {
	out := []model.Workload{}
	for _, w := range workloads {
		if len(out) == n {
			break
		}
		if keep(w) {
			out = append(out, w)
		}
	}
	return out
}

// Advisory is a risk-mitigation hint shown on the analytics page.
type Advisory struct {
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	Count   int    `json:"count"`
	Message string `json:"message"`
}

// RiskAdvisories returns the high-risk and high-complexity advisories when
// such workloads exist, followed by the quick-win advisory.
func RiskAdvisories(workloads []model.Workload) []Advisory {
	risk := CountByRisk(workloads)
	complexity := CountByComplexity(workloads)

	advisories := []Advisory{}
	if n := CountOf(risk, string(model.LevelHigh)); n > 0 {
		advisories = append(advisories, Advisory{
			Kind:    "high-risk",
			Title:   "High Risk Items",
			Count:   n,
			Message: "Consider additional planning, proof of concepts, and phased approaches for high-risk workloads.",
		})
	}
	if n := CountOf(complexity, string(model.LevelHigh)); n > 0 {
		advisories = append(advisories, Advisory{
			Kind:    "high-complexity",
			Title:   "High Complexity Items",
			Count:   n,
			Message: "Allocate additional resources and consider breaking down complex workloads into smaller components.",
		})
	}
	low := CountOf(risk, string(model.LevelLow))
	advisories = append(advisories, Advisory{
		Kind:    "quick-wins",
		Title:   "Quick Wins Available",
		Count:   low,
		Message: "low-risk workloads can be prioritized for early migration success.",
	})
	return advisories
}
