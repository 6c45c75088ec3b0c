package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/martinsuchenak/migrateplan/internal/model"
)

const dataCenterColumns = `id, user_id, name, location, capacity, current_utilization,
	type, coord_x, coord_y, created_at`

// ListDataCenters returns the owner's data centers, newest first.
func (ss *SQLiteStorage) ListDataCenters(ctx context.Context, filter *model.DataCenterFilter) ([]model.DataCenter, error) {
	if filter == nil || filter.UserID == "" {
		return nil, ErrMissingOwner
	}

	ss.mu.RLock()
	defer ss.mu.RUnlock()

	query := `SELECT ` + dataCenterColumns + ` FROM data_centers WHERE user_id = ?`
	args := []any{filter.UserID}
	if filter.Type != "" {
		query += ` AND type = ?`
		args = append(args, string(filter.Type))
	}
	query += ` ORDER BY created_at DESC, id DESC` + limitClause(filter.Limit)

	rows, err := ss.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying data centers: %w", err)
	}
	defer rows.Close()

	dcs := []model.DataCenter{}
	for rows.Next() {
		dc, err := scanDataCenter(rows)
		if err != nil {
			return nil, err
		}
		dcs = append(dcs, *dc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating data centers: %w", err)
	}
	return dcs, nil
}

// GetDataCenter retrieves one of the owner's data centers by ID.
func (ss *SQLiteStorage) GetDataCenter(ctx context.Context, userID, id string) (*model.DataCenter, error) {
	if !validID(id) {
		return nil, ErrInvalidID
	}

	ss.mu.RLock()
	defer ss.mu.RUnlock()

	row := ss.db.QueryRowContext(ctx,
		`SELECT `+dataCenterColumns+` FROM data_centers WHERE id = ? AND user_id = ?`, id, userID)
	dc, err := scanDataCenter(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDataCenterNotFound
	}
	if err != nil {
		return nil, err
	}
	return dc, nil
}

// CreateDataCenter assigns an ID and creation time and inserts the data center.
func (ss *SQLiteStorage) CreateDataCenter(ctx context.Context, dc *model.DataCenter) error {
	if dc.UserID == "" {
		return ErrMissingOwner
	}
	dc.ApplyDefaults()
	if err := dc.Validate(); err != nil {
		return err
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	if dc.ID == "" {
		dc.ID = newID()
	}
	dc.CreatedAt = ss.now().UTC()
	if dc.Coordinates == (model.Coordinates{}) {
		dc.Coordinates = model.Coordinates{
			X: rand.Float64()*800 + 100,
			Y: rand.Float64()*400 + 100,
		}
	}

	_, err := ss.db.ExecContext(ctx, `
		INSERT INTO data_centers (`+dataCenterColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, dc.ID, dc.UserID, dc.Name, dc.Location, dc.Capacity, dc.CurrentUtilization,
		string(dc.Type), dc.Coordinates.X, dc.Coordinates.Y, encodeTime(dc.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting data center: %w", err)
	}
	return nil
}

func scanDataCenter(s scanner) (*model.DataCenter, error) {
	var (
		dc      model.DataCenter
		dcType  string
		created string
	)
	err := s.Scan(&dc.ID, &dc.UserID, &dc.Name, &dc.Location, &dc.Capacity, &dc.CurrentUtilization,
		&dcType, &dc.Coordinates.X, &dc.Coordinates.Y, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning data center: %w", err)
	}
	dc.Type = model.DataCenterType(dcType)
	if dc.CreatedAt, err = decodeTime(created); err != nil {
		return nil, err
	}
	return &dc, nil
}
