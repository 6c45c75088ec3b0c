// Package mapview lays out data centers and migration arrows on the map
// canvas and tracks the pan/zoom viewport.
package mapview

import (
	"fmt"

	"github.com/martinsuchenak/migrateplan/internal/model"
)

const (
	MinZoom  = 0.5
	MaxZoom  = 3.0
	zoomStep = 1.2
)

// Viewport is the pan and zoom state of the map. The zero value is not the
// identity view; use NewViewport.
type Viewport struct {
	Zoom float64 `json:"zoom"`
	PanX float64 `json:"pan_x"`
	PanY float64 `json:"pan_y"`
}

// Viewport actions accepted by Apply.
const (
	ActionZoomIn  = "zoom_in"
	ActionZoomOut = "zoom_out"
	ActionReset   = "reset"
)

// NewViewport returns the identity view.
func NewViewport() Viewport {
	return Viewport{Zoom: 1}
}

// Clamp returns v with zoom limited to [MinZoom, MaxZoom]. A zero zoom is
// treated as 1.
func (v Viewport) Clamp() Viewport {
	if v.Zoom == 0 {
		v.Zoom = 1
	}
	v.Zoom = min(max(v.Zoom, MinZoom), MaxZoom)
	return v
}

func (v *Viewport) ZoomIn() {
	v.Zoom = min(v.Zoom*zoomStep, MaxZoom)
}

func (v *Viewport) ZoomOut() {
	v.Zoom = max(v.Zoom/zoomStep, MinZoom)
}

// Reset restores zoom 1 and no pan.
func (v *Viewport) Reset() {
	*v = NewViewport()
}

// Apply clamps v and then performs action. An empty action only clamps.
func (v *Viewport) Apply(action string) error {
	*v = v.Clamp()
	switch action {
	case "":
	case ActionZoomIn:
		v.ZoomIn()
	case ActionZoomOut:
		v.ZoomOut()
	case ActionReset:
		v.Reset()
	default:
		return fmt.Errorf("%w: unknown map action %q", model.ErrInvalid, action)
	}
	return nil
}

// Project maps canvas coordinates to screen coordinates.
func (v Viewport) Project(p model.Coordinates) model.Coordinates {
	return model.Coordinates{
		X: p.X*v.Zoom + v.PanX,
		Y: p.Y*v.Zoom + v.PanY,
	}
}
