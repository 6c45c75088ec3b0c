package mapview

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"

	"github.com/martinsuchenak/migrateplan/internal/model"
)

func TestZoomBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := NewViewport()
		ops := rapid.SliceOf(rapid.Bool()).Draw(t, "ops")
		for _, in := range ops {
			if in {
				v.ZoomIn()
			} else {
				v.ZoomOut()
			}
			if v.Zoom < MinZoom || v.Zoom > MaxZoom {
				t.Fatalf("zoom %v out of bounds", v.Zoom)
			}
		}
	})
}

func TestZoomSteps(t *testing.T) {
	v := NewViewport()
	v.ZoomIn()
	if math.Abs(v.Zoom-1.2) > 1e-9 {
		t.Errorf("ZoomIn() = %v, want 1.2", v.Zoom)
	}
	for i := 0; i < 10; i++ {
		v.ZoomIn()
	}
	if v.Zoom != MaxZoom {
		t.Errorf("zoom = %v, want capped at %v", v.Zoom, MaxZoom)
	}
	for i := 0; i < 20; i++ {
		v.ZoomOut()
	}
	if v.Zoom != MinZoom {
		t.Errorf("zoom = %v, want floored at %v", v.Zoom, MinZoom)
	}

	v.PanX, v.PanY = 40, 50
	v.Reset()
	if v.Zoom != 1 || v.PanX != 0 || v.PanY != 0 {
		t.Errorf("Reset() = %+v", v)
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		in     Viewport
		action string
		want   Viewport
	}{
		{Viewport{Zoom: 1}, ActionZoomIn, Viewport{Zoom: 1.2}},
		{Viewport{Zoom: 1.2, PanX: 7}, ActionZoomOut, Viewport{Zoom: 1, PanX: 7}},
		{Viewport{Zoom: 9}, ActionZoomIn, Viewport{Zoom: MaxZoom}},
		{Viewport{Zoom: 0.1}, ActionZoomOut, Viewport{Zoom: MinZoom}},
		{Viewport{Zoom: 2, PanX: 40, PanY: -3}, ActionReset, NewViewport()},
		{Viewport{Zoom: 9, PanY: 4}, "", Viewport{Zoom: MaxZoom, PanY: 4}},
	}
	for _, tt := range tests {
		v := tt.in
		if err := v.Apply(tt.action); err != nil {
			t.Fatalf("Apply(%q) error = %v", tt.action, err)
		}
		if math.Abs(v.Zoom-tt.want.Zoom) > 1e-9 || v.PanX != tt.want.PanX || v.PanY != tt.want.PanY {
			t.Errorf("%+v.Apply(%q) = %+v, want %+v", tt.in, tt.action, v, tt.want)
		}
	}

	v := NewViewport()
	if err := v.Apply("spin"); !errors.Is(err, model.ErrInvalid) {
		t.Errorf("Apply(spin) = %v, want ErrInvalid", err)
	}
}

func TestClampAndProject(t *testing.T) {
	tests := []struct {
		in   Viewport
		zoom float64
	}{
		{Viewport{}, 1},
		{Viewport{Zoom: 10}, MaxZoom},
		{Viewport{Zoom: 0.1}, MinZoom},
		{Viewport{Zoom: 2}, 2},
	}
	for _, tt := range tests {
		if got := tt.in.Clamp().Zoom; got != tt.zoom {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in.Zoom, got, tt.zoom)
		}
	}

	v := Viewport{Zoom: 2, PanX: 5, PanY: -5}
	got := v.Project(model.Coordinates{X: 100, Y: 200})
	if got != (model.Coordinates{X: 205, Y: 395}) {
		t.Errorf("Project() = %+v", got)
	}
}

func TestBuild(t *testing.T) {
	dcs := []model.DataCenter{
		{ID: "s1", Name: "DC-East", Type: model.DataCenterSource, Capacity: 100, Coordinates: model.Coordinates{X: 100, Y: 100}},
		{ID: "t1", Name: "AWS", Type: model.DataCenterTarget, Capacity: 100, Coordinates: model.Coordinates{X: 400, Y: 500}},
		{ID: "t2", Name: "AWS", Type: model.DataCenterTarget, Capacity: 100, Coordinates: model.Coordinates{X: 900, Y: 900}},
		{ID: "s2", Name: "AWS", Type: model.DataCenterSource, Capacity: 100},
	}
	ws := []model.Workload{
		{ID: "w1", Name: "DB1", CurrentLocation: "DC-East", TargetLocation: "AWS"},
		{ID: "w2", Name: "no target", CurrentLocation: "DC-East", TargetLocation: "GCP"},
		{ID: "w3", Name: "reversed", CurrentLocation: "AWS", TargetLocation: "DC-East"},
	}

	layout := Build(dcs, ws, NewViewport())

	if len(layout.Nodes) != 4 {
		t.Fatalf("expected 4 nodes, got %d", len(layout.Nodes))
	}
	if layout.Nodes[0].Workloads != 2 {
		t.Errorf("DC-East workload count = %d, want 2", layout.Nodes[0].Workloads)
	}
	for _, n := range layout.Nodes {
		if len(n.Assigned) != n.Workloads {
			t.Errorf("%s lists %d workloads but counts %d", n.DataCenter.ID, len(n.Assigned), n.Workloads)
		}
	}
	if got := layout.Nodes[1].Assigned; len(got) != 1 || got[0].Name != "DB1" {
		t.Errorf("AWS target workloads = %+v", got)
	}
	if got := layout.Nodes[3].Assigned; len(got) != 1 || got[0].Name != "reversed" {
		t.Errorf("AWS source workloads = %+v", got)
	}

	want := []Arrow{{
		WorkloadID:   "w1",
		WorkloadName: "DB1",
		SourceID:     "s1",
		TargetID:     "t1",
		From:         model.Coordinates{X: 100, Y: 100},
		To:           model.Coordinates{X: 400, Y: 500},
		Length:       500,
		Angle:        math.Atan2(400, 300) * 180 / math.Pi,
	}}
	if diff := cmp.Diff(want, layout.Arrows); diff != "" {
		t.Errorf("arrows mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildEmpty(t *testing.T) {
	layout := Build(nil, nil, Viewport{Zoom: 9})
	if layout.Viewport.Zoom != MaxZoom {
		t.Errorf("viewport not clamped: %v", layout.Viewport.Zoom)
	}
	if layout.Nodes == nil || layout.Arrows == nil {
		t.Error("empty layout must have non-nil slices")
	}
}

func TestWorkloadsFor(t *testing.T) {
	ws := []model.Workload{
		{Name: "a", CurrentLocation: "X", TargetLocation: "Y"},
		{Name: "b", CurrentLocation: "Y", TargetLocation: "X"},
	}
	got := WorkloadsFor(model.DataCenter{Name: "X", Type: model.DataCenterTarget}, ws)
	if len(got) != 1 || got[0].Name != "b" {
		t.Errorf("WorkloadsFor() = %+v", got)
	}
	if got := WorkloadsFor(model.DataCenter{Name: "Z", Type: model.DataCenterSource}, ws); len(got) != 0 {
		t.Errorf("expected none, got %d", len(got))
	}
}
