package model

import (
	"fmt"
	"strings"
	"time"
)

// Level is a low/medium/high rating used for complexity, priority and risk.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Levels lists the ratings in ascending order.
var Levels = []Level{LevelLow, LevelMedium, LevelHigh}

func (l Level) Valid() bool {
	return l == LevelLow || l == LevelMedium || l == LevelHigh
}

// WorkloadStatus is the migration progress of a workload.
type WorkloadStatus string

const (
	StatusPlanning   WorkloadStatus = "planning"
	StatusInProgress WorkloadStatus = "in-progress"
	StatusCompleted  WorkloadStatus = "completed"
	StatusOnHold     WorkloadStatus = "on-hold"
)

// WorkloadStatuses lists statuses in display order.
var WorkloadStatuses = []WorkloadStatus{StatusPlanning, StatusInProgress, StatusCompleted, StatusOnHold}

func (s WorkloadStatus) Valid() bool {
	for _, v := range WorkloadStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Workload is an application or service targeted for migration.
// CurrentLocation and TargetLocation refer to DataCenter names.
type Workload struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Description       string         `json:"description"`
	CurrentLocation   string         `json:"current_location"`
	TargetLocation    string         `json:"target_location"`
	Strategy          Strategy       `json:"strategy"`
	Complexity        Level          `json:"complexity"`
	Priority          Level          `json:"priority"`
	EstimatedCost     float64        `json:"estimated_cost"`
	EstimatedDuration int            `json:"estimated_duration"`
	Dependencies      []string       `json:"dependencies"`
	RiskLevel         Level          `json:"risk_level"`
	Status            WorkloadStatus `json:"status"`
	UserID            string         `json:"user_id"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// WorkloadFilter holds list criteria for workloads. UserID is mandatory.
type WorkloadFilter struct {
	UserID   string
	Strategy Strategy // empty means all
	Query    string   // case-insensitive match on name or description
	Limit    int      // 0 means no limit
}

// ApplyDefaults fills the values the create form starts with.
func (w *Workload) ApplyDefaults() {
	if w.Strategy == "" {
		w.Strategy = StrategyRehost
	}
	if w.Complexity == "" {
		w.Complexity = LevelMedium
	}
	if w.Priority == "" {
		w.Priority = LevelMedium
	}
	if w.RiskLevel == "" {
		w.RiskLevel = LevelMedium
	}
	if w.Status == "" {
		w.Status = StatusPlanning
	}
	if w.Dependencies == nil {
		w.Dependencies = []string{}
	}
}

// Validate checks enumerations and numeric ranges.
func (w *Workload) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if !w.Strategy.Valid() {
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalid, w.Strategy)
	}
	if !w.Complexity.Valid() {
		return fmt.Errorf("%w: complexity must be low, medium or high", ErrInvalid)
	}
	if !w.Priority.Valid() {
		return fmt.Errorf("%w: priority must be low, medium or high", ErrInvalid)
	}
	if !w.RiskLevel.Valid() {
		return fmt.Errorf("%w: risk_level must be low, medium or high", ErrInvalid)
	}
	if !w.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalid, w.Status)
	}
	if err := checkAmount("estimated_cost", w.EstimatedCost); err != nil {
		return err
	}
	if w.EstimatedDuration < 0 {
		return fmt.Errorf("%w: estimated_duration must not be negative", ErrInvalid)
	}
	if w.EstimatedDuration > MaxDuration {
		return fmt.Errorf("%w: estimated_duration must not exceed %d days", ErrInvalid, MaxDuration)
	}
	return nil
}
