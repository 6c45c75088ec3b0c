package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DataCenterType tags a data center as migration source or target.
type DataCenterType string

const (
	DataCenterSource DataCenterType = "source"
	DataCenterTarget DataCenterType = "target"
)

func (t DataCenterType) Valid() bool {
	return t == DataCenterSource || t == DataCenterTarget
}

// Coordinates place a data center on the map canvas.
type Coordinates struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DataCenter represents a named infrastructure location
type DataCenter struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	Location           string         `json:"location"`
	Capacity           float64        `json:"capacity"`
	CurrentUtilization float64        `json:"current_utilization"`
	Type               DataCenterType `json:"type"`
	Coordinates        Coordinates    `json:"coordinates"`
	UserID             string         `json:"user_id"`
	CreatedAt          time.Time      `json:"created_at"`
}

// DataCenterFilter holds list criteria for data centers
type DataCenterFilter struct {
	UserID string
	Type   DataCenterType
	Limit  int
}

// DefaultCapacity is used when a create request leaves capacity out. An
// explicit 0 is kept.
const DefaultCapacity = 100

// UnmarshalJSON decodes a data center, filling DefaultCapacity when the
// capacity field is absent.
func (dc *DataCenter) UnmarshalJSON(data []byte) error {
	type plain DataCenter
	p := plain{Capacity: DefaultCapacity}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*dc = DataCenter(p)
	return nil
}

// ApplyDefaults fills the type with source. Capacity defaults only at decode
// time, see UnmarshalJSON.
func (dc *DataCenter) ApplyDefaults() {
	if dc.Type == "" {
		dc.Type = DataCenterSource
	}
}

// Validate checks required fields. Utilization above capacity is allowed.
func (dc *DataCenter) Validate() error {
	if strings.TrimSpace(dc.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if !dc.Type.Valid() {
		return fmt.Errorf("%w: type must be source or target", ErrInvalid)
	}
	if err := checkAmount("capacity", dc.Capacity); err != nil {
		return err
	}
	if err := checkAmount("current_utilization", dc.CurrentUtilization); err != nil {
		return err
	}
	if err := CheckNumber("coordinates.x", dc.Coordinates.X, -MaxAmount, MaxAmount); err != nil {
		return err
	}
	return CheckNumber("coordinates.y", dc.Coordinates.Y, -MaxAmount, MaxAmount)
}
