package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/martinsuchenak/migrateplan/internal/model"
)

const planColumns = `id, user_id, name, description, workload_ids, start_date, end_date,
	total_cost, status, created_at, updated_at`

// ListPlans returns the owner's migration plans, newest first.
func (ss *SQLiteStorage) ListPlans(ctx context.Context, filter *model.PlanFilter) ([]model.MigrationPlan, error) {
	if filter == nil || filter.UserID == "" {
		return nil, ErrMissingOwner
	}

	ss.mu.RLock()
	defer ss.mu.RUnlock()

	rows, err := ss.db.QueryContext(ctx,
		`SELECT `+planColumns+` FROM migration_plans WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`+limitClause(filter.Limit), filter.UserID)
	if err != nil {
		return nil, fmt.Errorf("querying plans: %w", err)
	}
	defer rows.Close()

	plans := []model.MigrationPlan{}
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	return plans, nil
}

// GetPlan retrieves one of the owner's plans by ID.
func (ss *SQLiteStorage) GetPlan(ctx context.Context, userID, id string) (*model.MigrationPlan, error) {
	if !validID(id) {
		return nil, ErrInvalidID
	}

	ss.mu.RLock()
	defer ss.mu.RUnlock()

	row := ss.db.QueryRowContext(ctx,
		`SELECT `+planColumns+` FROM migration_plans WHERE id = ? AND user_id = ?`, id, userID)
	p, err := scanPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreatePlan assigns an ID and timestamps and inserts the plan.
func (ss *SQLiteStorage) CreatePlan(ctx context.Context, p *model.MigrationPlan) error {
	if p.UserID == "" {
		return ErrMissingOwner
	}
	p.ApplyDefaults()
	if err := p.Validate(); err != nil {
		return err
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	if p.ID == "" {
		p.ID = newID()
	}
	now := ss.now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	ids, err := encodeStrings(p.WorkloadIDs)
	if err != nil {
		return fmt.Errorf("encoding workload ids: %w", err)
	}

	_, err = ss.db.ExecContext(ctx, `
		INSERT INTO migration_plans (`+planColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.UserID, p.Name, p.Description, ids, p.StartDate, p.EndDate,
		p.TotalCost, string(p.Status), encodeTime(p.CreatedAt), encodeTime(p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}
	return nil
}

func scanPlan(s scanner) (*model.MigrationPlan, error) {
	var (
		p                model.MigrationPlan
		ids, status      string
		created, updated string
	)
	err := s.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &ids, &p.StartDate, &p.EndDate,
		&p.TotalCost, &status, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning plan: %w", err)
	}
	p.Status = model.PlanStatus(status)
	if p.WorkloadIDs, err = decodeStrings(ids); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = decodeTime(created); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = decodeTime(updated); err != nil {
		return nil, err
	}
	return &p, nil
}
