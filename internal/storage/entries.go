package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ore/internal/core"
)

const entryColumns = `id, user_id, project_id, entry_date, start_time, end_time,
	duration_minutes, hourly_rate_cents, earnings_cents, notes`

// CreateEntry inserts an entry whose derived fields were already
// computed by the service layer.
func (r *SQLiteRepository) CreateEntry(ctx context.Context, e core.TimeEntry) error {
	query := `INSERT INTO time_entries (` + entryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.UserID, e.ProjectID, e.Date.Key(), e.StartTime, e.EndTime,
		e.Duration.Minutes, e.HourlyRate.Cents, e.Earnings.Cents, e.Notes)
	if err != nil {
		return fmt.Errorf("create entry: %w", err)
	}

	slog.InfoContext(ctx, "Entry saved",
		"entry_id", e.ID,
		"user_id", e.UserID,
		"date", e.Date.Key(),
		"minutes", e.Duration.Minutes,
		"earnings_cents", e.Earnings.Cents)

	return nil
}

// UpdateEntry rewrites all user-editable and derived fields of an
// entry owned by e.UserID.
func (r *SQLiteRepository) UpdateEntry(ctx context.Context, e core.TimeEntry) error {
	query := `UPDATE time_entries
		SET project_id = ?, entry_date = ?, start_time = ?, end_time = ?,
			duration_minutes = ?, hourly_rate_cents = ?, earnings_cents = ?,
			notes = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ?`

	res, err := r.db.ExecContext(ctx, query,
		e.ProjectID, e.Date.Key(), e.StartTime, e.EndTime,
		e.Duration.Minutes, e.HourlyRate.Cents, e.Earnings.Cents, e.Notes,
		e.ID, e.UserID)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	return requireRow(res, "update entry")
}

func (r *SQLiteRepository) DeleteEntry(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM time_entries WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return requireRow(res, "delete entry")
}

func (r *SQLiteRepository) GetEntry(ctx context.Context, userID, id string) (core.TimeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entries WHERE id = ? AND user_id = ?`
	return scanEntry(r.db.QueryRowContext(ctx, query, id, userID))
}

// ListEntriesForMonth returns exactly the entries whose date falls in
// the requested month for the requested user, ordered by date and
// start time. This is the sole input of the monthly aggregation.
func (r *SQLiteRepository) ListEntriesForMonth(ctx context.Context, userID string, year, month int) ([]core.TimeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entries
		WHERE user_id = ? AND entry_date >= ? AND entry_date <= ?
		ORDER BY entry_date, start_time`

	first := core.NewDate(year, month, 1)
	last := first.AddDate(0, 1, -1)

	rows, err := r.db.QueryContext(ctx, query, userID, first.Format("2006-01-02"), last.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("list entries for month: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// ListEntriesForProject returns all entries of one project, newest first.
func (r *SQLiteRepository) ListEntriesForProject(ctx context.Context, userID, projectID string) ([]core.TimeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entries
		WHERE user_id = ? AND project_id = ?
		ORDER BY entry_date DESC, start_time DESC`

	rows, err := r.db.QueryContext(ctx, query, userID, projectID)
	if err != nil {
		return nil, fmt.Errorf("list entries for project: %w", err)
	}
	defer rows.Close()

	return collectEntries(rows)
}

// ListEntryUsers returns the ids of all users owning at least one entry.
// The worker's periodic sweep recomputes current-month reports for them.
func (r *SQLiteRepository) ListEntryUsers(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT user_id FROM time_entries`)
	if err != nil {
		return nil, fmt.Errorf("list entry users: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (core.TimeEntry, error) {
	var e core.TimeEntry
	var dateStr string
	err := row.Scan(&e.ID, &e.UserID, &e.ProjectID, &dateStr, &e.StartTime, &e.EndTime,
		&e.Duration.Minutes, &e.HourlyRate.Cents, &e.Earnings.Cents, &e.Notes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.TimeEntry{}, core.ErrNotFound
		}
		return core.TimeEntry{}, fmt.Errorf("scan entry: %w", err)
	}
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return core.TimeEntry{}, fmt.Errorf("parse entry date %q: %w", dateStr, err)
	}
	e.Date = core.Date{Time: t}
	return e, nil
}

func collectEntries(rows *sql.Rows) ([]core.TimeEntry, error) {
	var entries []core.TimeEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// requireRow translates a zero-row write into ErrNotFound.
func requireRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}
