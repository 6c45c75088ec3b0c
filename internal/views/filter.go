package views

import (
	"strings"

	"github.com/martinsuchenak/migrateplan/internal/model"
)

// filterWorkloads keeps workloads whose name or description contains search
// (case-insensitive) and whose strategy matches. Strategy "all" matches
// everything.
func filterWorkloads(workloads []model.Workload, search, strategy string) []model.Workload {
	needle := strings.ToLower(search)
	out := []model.Workload{}
	for _, w := range workloads {
		if strategy != "all" && string(w.Strategy) != strategy {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(w.Name), needle) &&
			!strings.Contains(strings.ToLower(w.Description), needle) {
			continue
		}
		out = append(out, w)
	}
	return out
}
