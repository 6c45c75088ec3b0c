package analytics

import (
	"fmt"

	"github.com/martinsuchenak/migrateplan/internal/model"
)

// Band classifies a utilization percentage for colouring.
type Band string

const (
	BandLow    Band = "low"
	BandMedium Band = "medium"
	BandHigh   Band = "high"
)

// UtilizationStat is the display form of a data center's load.
type UtilizationStat struct {
	Percent  float64 `json:"percent"`
	BarWidth float64 `json:"bar_width"`
	Label    string  `json:"label"`
	Band     Band    `json:"band"`
}

// Utilization computes current/capacity as a percentage. The label is not
// clamped; the bar width is capped at 100.
func Utilization(dc model.DataCenter) UtilizationStat {
	pct := 0.0
	if dc.Capacity != 0 {
		pct = dc.CurrentUtilization / dc.Capacity * 100
	}
	stat := UtilizationStat{
		Percent:  pct,
		BarWidth: min(pct, 100),
		Label:    fmt.Sprintf("%.1f%%", pct),
		Band:     BandLow,
	}
	switch {
	case pct > 80:
		stat.Band = BandHigh
	case pct > 60:
		stat.Band = BandMedium
	}
	return stat
}

// DataCenterUsage pairs a data center with its utilization and the number
// of workloads that name it.
type DataCenterUsage struct {
	DataCenter  model.DataCenter `json:"data_center"`
	Utilization UtilizationStat  `json:"utilization"`
	Workloads   int              `json:"workload_count"`
}

// DataCenterUsages counts workloads per data center by name: source data
// centers match current_location, targets match target_location.
func DataCenterUsages(dcs []model.DataCenter, workloads []model.Workload) []DataCenterUsage {
	bySource := make(map[string]int)
	byTarget := make(map[string]int)
	for _, w := range workloads {
		bySource[w.CurrentLocation]++
		byTarget[w.TargetLocation]++
	}

	usages := make([]DataCenterUsage, 0, len(dcs))
	for _, dc := range dcs {
		count := bySource[dc.Name]
		if dc.Type == model.DataCenterTarget {
			count = byTarget[dc.Name]
		}
		usages = append(usages, DataCenterUsage{
			DataCenter:  dc,
			Utilization: Utilization(dc),
			Workloads:   count,
		})
	}
	return usages
}
