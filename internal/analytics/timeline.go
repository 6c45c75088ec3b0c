package analytics

import (
	"slices"
	"time"

	"github.com/martinsuchenak/migrateplan/internal/model"
)

// TimelineEntry places a workload on the migration schedule.
type TimelineEntry struct {
	Workload model.Workload `json:"workload"`
	Start    time.Time      `json:"start"`
	End      time.Time      `json:"end"`
}

// Timeline orders workloads by creation time, oldest first. Each entry ends
// EstimatedDuration days after it starts.
func Timeline(workloads []model.Workload) []TimelineEntry {
	entries := make([]TimelineEntry, 0, len(workloads))
	for _, w := range workloads {
		entries = append(entries, TimelineEntry{
			Workload: w,
			Start:    w.CreatedAt,
			End:      w.CreatedAt.AddDate(0, 0, w.EstimatedDuration),
		})
	}
	slices.SortStableFunc(entries, func(a, b TimelineEntry) int {
		return a.Start.Compare(b.Start)
	})
	return entries
}

// UpcomingMilestones returns the first n entries that are not completed.
func UpcomingMilestones(entries []TimelineEntry, n int) []TimelineEntry {
	upcoming := []TimelineEntry{}
	for _, e := range entries {
		if len(upcoming) == n {
			break
		}
		if e.Workload.Status != model.StatusCompleted {
			upcoming = append(upcoming, e)
		}
	}
	return upcoming
}
