package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/martinsuchenak/migrateplan/internal/model"
)

const workloadColumns = `id, user_id, name, description, current_location, target_location,
	strategy, complexity, priority, risk_level, estimated_cost, estimated_duration,
	dependencies, status, created_at, updated_at`

// ListWorkloads returns the owner's workloads, newest first.
func (ss *SQLiteStorage) ListWorkloads(ctx context.Context, filter *model.WorkloadFilter) ([]model.Workload, error) {
	if filter == nil || filter.UserID == "" {
		return nil, ErrMissingOwner
	}

	ss.mu.RLock()
	defer ss.mu.RUnlock()

	query := `SELECT ` + workloadColumns + ` FROM workloads WHERE user_id = ?`
	args := []any{filter.UserID}
	if filter.Strategy != "" {
		query += ` AND strategy = ?`
		args = append(args, string(filter.Strategy))
	}
	query += ` ORDER BY created_at DESC, id DESC`
	// Text matching happens in Go so that case folding covers non-ASCII names.
	if filter.Query == "" {
		query += limitClause(filter.Limit)
	}

	rows, err := ss.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying workloads: %w", err)
	}
	defer rows.Close()

	workloads := []model.Workload{}
	for rows.Next() {
		w, err := scanWorkload(rows)
		if err != nil {
			return nil, err
		}
		workloads = append(workloads, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating workloads: %w", err)
	}

	if filter.Query != "" {
		workloads = matchWorkloads(workloads, filter.Query, filter.Limit)
	}
	return workloads, nil
}

func matchWorkloads(workloads []model.Workload, query string, limit int) []model.Workload {
	needle := strings.ToLower(query)
	matched := []model.Workload{}
	for _, w := range workloads {
		if strings.Contains(strings.ToLower(w.Name), needle) ||
			strings.Contains(strings.ToLower(w.Description), needle) {
			matched = append(matched, w)
			if limit > 0 && len(matched) == limit {
				break
			}
		}
	}
	return matched
}

// GetWorkload retrieves one of the owner's workloads by ID.
func (ss *SQLiteStorage) GetWorkload(ctx context.Context, userID, id string) (*model.Workload, error) {
	if !validID(id) {
		return nil, ErrInvalidID
	}

	ss.mu.RLock()
	defer ss.mu.RUnlock()

	row := ss.db.QueryRowContext(ctx,
		`SELECT `+workloadColumns+` FROM workloads WHERE id = ? AND user_id = ?`, id, userID)
	w, err := scanWorkload(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWorkloadNotFound
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

// CreateWorkload assigns an ID and timestamps and inserts the workload.
func (ss *SQLiteStorage) CreateWorkload(ctx context.Context, w *model.Workload) error {
	if w.UserID == "" {
		return ErrMissingOwner
	}
	w.ApplyDefaults()
	if err := w.Validate(); err != nil {
		return err
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	if w.ID == "" {
		w.ID = newID()
	}
	now := ss.now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now

	deps, err := encodeStrings(w.Dependencies)
	if err != nil {
		return fmt.Errorf("encoding dependencies: %w", err)
	}

	_, err = ss.db.ExecContext(ctx, `
		INSERT INTO workloads (`+workloadColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, w.ID, w.UserID, w.Name, w.Description, w.CurrentLocation, w.TargetLocation,
		string(w.Strategy), string(w.Complexity), string(w.Priority), string(w.RiskLevel),
		w.EstimatedCost, w.EstimatedDuration, deps, string(w.Status),
		encodeTime(w.CreatedAt), encodeTime(w.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting workload: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWorkload(s scanner) (*model.Workload, error) {
	var (
		w                    model.Workload
		strategy, complexity string
		priority, risk       string
		status, deps         string
		created, updated     string
	)
	err := s.Scan(&w.ID, &w.UserID, &w.Name, &w.Description, &w.CurrentLocation, &w.TargetLocation,
		&strategy, &complexity, &priority, &risk, &w.EstimatedCost, &w.EstimatedDuration,
		&deps, &status, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning workload: %w", err)
	}

	w.Strategy = model.Strategy(strategy)
	w.Complexity = model.Level(complexity)
	w.Priority = model.Level(priority)
	w.RiskLevel = model.Level(risk)
	w.Status = model.WorkloadStatus(status)
	if w.Dependencies, err = decodeStrings(deps); err != nil {
		return nil, err
	}
	if w.CreatedAt, err = decodeTime(created); err != nil {
		return nil, err
	}
	if w.UpdatedAt, err = decodeTime(updated); err != nil {
		return nil, err
	}
	return &w, nil
}
