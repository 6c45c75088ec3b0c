package mapview

import (
	"math"

	"github.com/martinsuchenak/migrateplan/internal/analytics"
	"github.com/martinsuchenak/migrateplan/internal/model"
)

// Node is a data center placed on the canvas.
type Node struct {
	DataCenter  model.DataCenter          `json:"data_center"`
	Position    model.Coordinates         `json:"position"`
	Screen      model.Coordinates         `json:"screen"`
	Utilization analytics.UtilizationStat `json:"utilization"`
	Workloads   int                       `json:"workload_count"`
	Assigned    []model.Workload          `json:"workloads"`
}

// Arrow connects the source and target data centers of one workload.
type Arrow struct {
	WorkloadID   string            `json:"workload_id"`
	WorkloadName string            `json:"workload_name"`
	SourceID     string            `json:"source_id"`
	TargetID     string            `json:"target_id"`
	From         model.Coordinates `json:"from"`
	To           model.Coordinates `json:"to"`
	Length       float64           `json:"length"`
	Angle        float64           `json:"angle"`
}

// Layout is everything the map canvas draws.
type Layout struct {
	Viewport Viewport `json:"viewport"`
	Nodes    []Node   `json:"nodes"`
	Arrows   []Arrow  `json:"arrows"`
}

type dcKey struct {
	name string
	typ  model.DataCenterType
}

// Build places every data center and draws an arrow for each workload whose
// current location names a source data center and whose target location
// names a target data center. When names repeat, the first data center in
// dcs wins. Arrow geometry is in canvas coordinates.
func Build(dcs []model.DataCenter, workloads []model.Workload, v Viewport) Layout {
	v = v.Clamp()

	index := make(map[dcKey]model.DataCenter, len(dcs))
	for _, dc := range dcs {
		k := dcKey{dc.Name, dc.Type}
		if _, seen := index[k]; !seen {
			index[k] = dc
		}
	}

	layout := Layout{
		Viewport: v,
		Nodes:    make([]Node, 0, len(dcs)),
		Arrows:   []Arrow{},
	}
	for _, u := range analytics.DataCenterUsages(dcs, workloads) {
		layout.Nodes = append(layout.Nodes, Node{
			DataCenter:  u.DataCenter,
			Position:    u.DataCenter.Coordinates,
			Screen:      v.Project(u.DataCenter.Coordinates),
			Utilization: u.Utilization,
			Workloads:   u.Workloads,
			Assigned:    WorkloadsFor(u.DataCenter, workloads),
		})
	}

	for _, w := range workloads {
		src, ok := index[dcKey{w.CurrentLocation, model.DataCenterSource}]
		if !ok {
			continue
		}
		dst, ok := index[dcKey{w.TargetLocation, model.DataCenterTarget}]
		if !ok {
			continue
		}
		layout.Arrows = append(layout.Arrows, arrow(w, src, dst))
	}
	return layout
}

func arrow(w model.Workload, src, dst model.DataCenter) Arrow {
	dx := dst.Coordinates.X - src.Coordinates.X
	dy := dst.Coordinates.Y - src.Coordinates.Y
	return Arrow{
		WorkloadID:   w.ID,
		WorkloadName: w.Name,
		SourceID:     src.ID,
		TargetID:     dst.ID,
		From:         src.Coordinates,
		To:           dst.Coordinates,
		Length:       math.Sqrt(dx*dx + dy*dy),
		Angle:        math.Atan2(dy, dx) * 180 / math.Pi,
	}
}

// WorkloadsFor returns the workloads assigned to dc: those leaving a source
// data center or arriving at a target one.
func WorkloadsFor(dc model.DataCenter, workloads []model.Workload) []model.Workload {
	out := []model.Workload{}
	for _, w := range workloads {
		if dc.Type == model.DataCenterSource && w.CurrentLocation == dc.Name ||
			dc.Type == model.DataCenterTarget && w.TargetLocation == dc.Name {
			out = append(out, w)
		}
	}
	return out
}
