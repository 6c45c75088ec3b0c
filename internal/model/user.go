package model

import (
	"errors"
	"time"
)

// ErrInvalid marks validation failures of user input.
var ErrInvalid = errors.New("invalid input")

// User owns workloads, data centers and plans.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TokenHash string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Snapshot is a point-in-time summary of a user's portfolio.
type Snapshot struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	TakenAt          time.Time `json:"taken_at"`
	TotalWorkloads   int       `json:"total_workloads"`
	Completed        int       `json:"completed"`
	TotalCost        float64   `json:"total_cost"`
	PotentialSavings float64   `json:"potential_savings"`
	ProgressPercent  float64   `json:"progress_percent"`
}
