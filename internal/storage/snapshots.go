package storage

import (
	"context"
	"fmt"

	"github.com/martinsuchenak/migrateplan/internal/model"
)

// CreateSnapshot stores a portfolio summary. TakenAt defaults to now.
func (ss *SQLiteStorage) CreateSnapshot(ctx context.Context, s *model.Snapshot) error {
	if s.UserID == "" {
		return ErrMissingOwner
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	if s.ID == "" {
		s.ID = newID()
	}
	if s.TakenAt.IsZero() {
		s.TakenAt = ss.now().UTC()
	}

	_, err := ss.db.ExecContext(ctx, `
		INSERT INTO snapshots (id, user_id, taken_at, total_workloads, completed,
			total_cost, potential_savings, progress_percent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.UserID, encodeTime(s.TakenAt), s.TotalWorkloads, s.Completed,
		s.TotalCost, s.PotentialSavings, s.ProgressPercent)
	if err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}
	return nil
}

// ListSnapshots returns the owner's snapshots, newest first.
func (ss *SQLiteStorage) ListSnapshots(ctx context.Context, userID string, limit int) ([]model.Snapshot, error) {
	if userID == "" {
		return nil, ErrMissingOwner
	}

	ss.mu.RLock()
	defer ss.mu.RUnlock()

	rows, err := ss.db.QueryContext(ctx, `
		SELECT id, user_id, taken_at, total_workloads, completed, total_cost,
			potential_savings, progress_percent
		FROM snapshots WHERE user_id = ?
		ORDER BY taken_at DESC, id DESC`+limitClause(limit), userID)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := []model.Snapshot{}
	for rows.Next() {
		var (
			s     model.Snapshot
			taken string
		)
		if err := rows.Scan(&s.ID, &s.UserID, &taken, &s.TotalWorkloads, &s.Completed,
			&s.TotalCost, &s.PotentialSavings, &s.ProgressPercent); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		if s.TakenAt, err = decodeTime(taken); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}

// SnapshotOwners returns every user ID that owns at least one workload.
func (ss *SQLiteStorage) SnapshotOwners(ctx context.Context) ([]string, error) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	rows, err := ss.db.QueryContext(ctx, `SELECT DISTINCT user_id FROM workloads ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("querying workload owners: %w", err)
	}
	defer rows.Close()

	owners := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning owner: %w", err)
		}
		owners = append(owners, id)
	}
	return owners, rows.Err()
}
