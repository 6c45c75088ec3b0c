package model

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestStrategyList(t *testing.T) {
	list := StrategyList()
	if len(list) != 6 {
		t.Fatalf("got %d strategies, want 6", len(list))
	}
	for i, s := range list {
		if s.Key != StrategyOrder[i] {
			t.Errorf("list[%d] = %s, want %s", i, s.Key, StrategyOrder[i])
		}
		if s.Name == "" || s.Icon == "" || !s.Complexity.Valid() {
			t.Errorf("incomplete entry %+v", s)
		}
	}
	if Strategy("teleport").Valid() {
		t.Error("unknown strategy reported valid")
	}
}

func TestCostSavingMultiplier(t *testing.T) {
	tests := map[CostSaving]float64{
		CostSavingVeryHigh: 0.4,
		CostSavingHigh:     0.3,
		CostSavingMedium:   0.2,
		CostSavingNone:     0,
		"":                 0,
	}
	for c, want := range tests {
		if got := c.Multiplier(); got != want {
			t.Errorf("%q.Multiplier() = %v, want %v", c, got, want)
		}
	}
}

func TestWorkloadDefaults(t *testing.T) {
	w := Workload{Name: "DB1"}
	w.ApplyDefaults()
	if w.Strategy != StrategyRehost || w.Complexity != LevelMedium || w.Priority != LevelMedium ||
		w.RiskLevel != LevelMedium || w.Status != StatusPlanning || w.Dependencies == nil {
		t.Errorf("defaults = %+v", w)
	}
	if err := w.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestWorkloadValidate(t *testing.T) {
	base := func() Workload {
		w := Workload{Name: "DB1"}
		w.ApplyDefaults()
		return w
	}
	tests := []struct {
		name   string
		mutate func(*Workload)
	}{
		{"blank name", func(w *Workload) { w.Name = "  " }},
		{"strategy", func(w *Workload) { w.Strategy = "teleport" }},
		{"complexity", func(w *Workload) { w.Complexity = "extreme" }},
		{"priority", func(w *Workload) { w.Priority = "urgent" }},
		{"risk", func(w *Workload) { w.RiskLevel = "none" }},
		{"status", func(w *Workload) { w.Status = "done" }},
		{"cost", func(w *Workload) { w.EstimatedCost = -1 }},
		{"duration", func(w *Workload) { w.EstimatedDuration = -1 }},
		{"cost NaN", func(w *Workload) { w.EstimatedCost = math.NaN() }},
		{"cost Inf", func(w *Workload) { w.EstimatedCost = math.Inf(1) }},
		{"cost too large", func(w *Workload) { w.EstimatedCost = 1e308 }},
		{"duration too long", func(w *Workload) { w.EstimatedDuration = MaxDuration + 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := base()
			tt.mutate(&w)
			if err := w.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestDataCenterValidate(t *testing.T) {
	dc := DataCenter{Name: "DC1"}
	dc.ApplyDefaults()
	if dc.Type != DataCenterSource || dc.Capacity != 0 {
		t.Errorf("defaults = %+v", dc)
	}
	if err := dc.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	for _, bad := range []DataCenter{
		{Name: "", Type: DataCenterSource},
		{Name: "DC", Type: "orbital"},
		{Name: "DC", Type: DataCenterTarget, Capacity: -5},
		{Name: "DC", Type: DataCenterTarget, CurrentUtilization: -1},
		{Name: "DC", Type: DataCenterTarget, Capacity: math.Inf(1)},
		{Name: "DC", Type: DataCenterTarget, CurrentUtilization: math.NaN()},
		{Name: "DC", Type: DataCenterTarget, CurrentUtilization: 2 * MaxAmount},
		{Name: "DC", Type: DataCenterTarget, Coordinates: Coordinates{X: -1e300}},
	} {
		if err := bad.Validate(); !errors.Is(err, ErrInvalid) {
			t.Errorf("Validate(%+v) = %v, want ErrInvalid", bad, err)
		}
	}
}

func TestPlanValidate(t *testing.T) {
	tests := []struct {
		name    string
		plan    MigrationPlan
		wantErr bool
	}{
		{"minimal", MigrationPlan{Name: "Wave 1"}, false},
		{"dates", MigrationPlan{Name: "Wave 1", StartDate: "2026-01-01", EndDate: "2026-02-01"}, false},
		{"same day", MigrationPlan{Name: "Wave 1", StartDate: "2026-01-01", EndDate: "2026-01-01"}, false},
		{"backwards", MigrationPlan{Name: "Wave 1", StartDate: "2026-02-01", EndDate: "2026-01-01"}, true},
		{"bad date", MigrationPlan{Name: "Wave 1", StartDate: "01/02/2026"}, true},
		{"no name", MigrationPlan{}, true},
		{"status", MigrationPlan{Name: "Wave 1", Status: "shipped"}, true},
		{"cost", MigrationPlan{Name: "Wave 1", TotalCost: -1}, true},
		{"cost NaN", MigrationPlan{Name: "Wave 1", TotalCost: math.NaN()}, true},
		{"cost too large", MigrationPlan{Name: "Wave 1", TotalCost: 1e308}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.plan
			if p.Status == "" {
				p.ApplyDefaults()
			}
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTotalsStayFiniteAtLimit(t *testing.T) {
	w := Workload{Name: "Max", EstimatedCost: MaxAmount}
	w.ApplyDefaults()
	if err := w.Validate(); err != nil {
		t.Fatalf("Validate() at MaxAmount = %v", err)
	}
	total := 0.0
	for range 1_000_000 {
		total += w.EstimatedCost
	}
	if _, err := json.Marshal(total); err != nil {
		t.Errorf("sum of a million maximal costs does not encode: %v", err)
	}
}

func TestCheckNumber(t *testing.T) {
	tests := []struct {
		v       float64
		wantErr bool
	}{
		{0, false},
		{MaxAmount, false},
		{-1, true},
		{MaxAmount * 10, true},
		{math.NaN(), true},
		{math.Inf(-1), true},
	}
	for _, tt := range tests {
		err := CheckNumber("x", tt.v, 0, MaxAmount)
		if (err != nil) != tt.wantErr {
			t.Errorf("CheckNumber(%v) = %v, wantErr %v", tt.v, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalid) {
			t.Errorf("CheckNumber(%v) error does not wrap ErrInvalid", tt.v)
		}
	}
}

func TestDataCenterUnmarshalCapacity(t *testing.T) {
	tests := []struct {
		body string
		want float64
	}{
		{`{"name":"DC1"}`, DefaultCapacity},
		{`{"name":"DC1","capacity":0}`, 0},
		{`{"name":"DC1","capacity":250}`, 250},
	}
	for _, tt := range tests {
		var dc DataCenter
		if err := json.Unmarshal([]byte(tt.body), &dc); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", tt.body, err)
		}
		if dc.Capacity != tt.want || dc.Name != "DC1" {
			t.Errorf("Unmarshal(%s) = %+v, want capacity %v", tt.body, dc, tt.want)
		}
	}
}
