package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ore/internal/core"
)

const userColumns = `id, username, password_hash, name, email,
	hourly_rate_cents, monthly_goal_minutes, initials`

func (r *SQLiteRepository) CreateUser(ctx context.Context, u core.User) error {
	query := `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Username, u.PasswordHash, u.Name, u.Email,
		u.HourlyRate.Cents, u.MonthlyGoal.Minutes, u.Initials)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return core.ErrAlreadyExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetUserByUsername(ctx context.Context, username string) (core.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	return scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *SQLiteRepository) GetUser(ctx context.Context, id string) (core.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

// UpdateUserProfile rewrites the profile fields; username and password
// hash are managed by the auth flow and left untouched here.
func (r *SQLiteRepository) UpdateUserProfile(ctx context.Context, u core.User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET name = ?, email = ?, hourly_rate_cents = ?,
			monthly_goal_minutes = ?, initials = ?
		 WHERE id = ?`,
		u.Name, u.Email, u.HourlyRate.Cents, u.MonthlyGoal.Minutes, u.Initials, u.ID)
	if err != nil {
		return fmt.Errorf("update user profile: %w", err)
	}
	return requireRow(res, "update user profile")
}

func scanUser(row rowScanner) (core.User, error) {
	var u core.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.Email,
		&u.HourlyRate.Cents, &u.MonthlyGoal.Minutes, &u.Initials)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.User{}, core.ErrNotFound
		}
		return core.User{}, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}
