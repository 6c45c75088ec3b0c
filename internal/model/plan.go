package model

import (
	"fmt"
	"strings"
	"time"
)

// PlanStatus is the approval state of a migration plan.
type PlanStatus string

const (
	PlanDraft      PlanStatus = "draft"
	PlanApproved   PlanStatus = "approved"
	PlanInProgress PlanStatus = "in-progress"
	PlanCompleted  PlanStatus = "completed"
)

func (s PlanStatus) Valid() bool {
	switch s {
	case PlanDraft, PlanApproved, PlanInProgress, PlanCompleted:
		return true
	}
	return false
}

// DateLayout is the format of plan start and end dates.
const DateLayout = "2006-01-02"

// MigrationPlan groups workloads with a schedule and cost.
// WorkloadIDs are not checked against existing workloads.
type MigrationPlan struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	WorkloadIDs []string   `json:"workload_ids"`
	StartDate   string     `json:"start_date"`
	EndDate     string     `json:"end_date"`
	TotalCost   float64    `json:"total_cost"`
	Status      PlanStatus `json:"status"`
	UserID      string     `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// PlanFilter holds list criteria for plans
type PlanFilter struct {
	UserID string
	Limit  int
}

func (p *MigrationPlan) ApplyDefaults() {
	if p.Status == "" {
		p.Status = PlanDraft
	}
	if p.WorkloadIDs == nil {
		p.WorkloadIDs = []string{}
	}
}

func (p *MigrationPlan) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if !p.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalid, p.Status)
	}
	if err := checkAmount("total_cost", p.TotalCost); err != nil {
		return err
	}
	for _, d := range []struct{ field, value string }{{"start_date", p.StartDate}, {"end_date", p.EndDate}} {
		if d.value == "" {
			continue
		}
		if _, err := time.Parse(DateLayout, d.value); err != nil {
			return fmt.Errorf("%w: %s must be YYYY-MM-DD", ErrInvalid, d.field)
		}
	}
	if p.StartDate != "" && p.EndDate != "" && p.EndDate < p.StartDate {
		return fmt.Errorf("%w: end_date is before start_date", ErrInvalid)
	}
	return nil
}
