package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/martinsuchenak/migrateplan/internal/model"
)

// CreateUser inserts a user. Names are unique.
func (ss *SQLiteStorage) CreateUser(ctx context.Context, u *model.User) error {
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("%w: name is required", model.ErrInvalid)
	}
	if u.TokenHash == "" {
		return fmt.Errorf("%w: token hash is required", model.ErrInvalid)
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	var exists int
	err := ss.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE name = ?`, u.Name).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking user name: %w", err)
	}
	if exists > 0 {
		return ErrUserExists
	}

	if u.ID == "" {
		u.ID = newID()
	}
	u.CreatedAt = ss.now().UTC()

	_, err = ss.db.ExecContext(ctx,
		`INSERT INTO users (id, name, token_hash, created_at) VALUES (?, ?, ?, ?)`,
		u.ID, u.Name, u.TokenHash, encodeTime(u.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// GetUser retrieves a user, including the token hash, by ID.
func (ss *SQLiteStorage) GetUser(ctx context.Context, id string) (*model.User, error) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	var (
		u       model.User
		created string
	)
	err := ss.db.QueryRowContext(ctx,
		`SELECT id, name, token_hash, created_at FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Name, &u.TokenHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	if u.CreatedAt, err = decodeTime(created); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUsers returns all users ordered by name. Token hashes are not loaded.
func (ss *SQLiteStorage) ListUsers(ctx context.Context) ([]model.User, error) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	rows, err := ss.db.QueryContext(ctx, `SELECT id, name, created_at FROM users ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var (
			u       model.User
			created string
		)
		if err := rows.Scan(&u.ID, &u.Name, &created); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		if u.CreatedAt, err = decodeTime(created); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
