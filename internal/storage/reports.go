package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"ore/internal/core"
)

// GetReport returns the persisted report for (userID, year, month),
// or core.ErrNotFound if the month was never aggregated.
func (r *SQLiteRepository) GetReport(ctx context.Context, userID string, year, month int) (core.MonthlyReport, error) {
	var rep core.MonthlyReport
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, year, month, worked_minutes, days_worked,
			total_earnings_cents, is_completed
		 FROM monthly_reports WHERE user_id = ? AND year = ? AND month = ?`,
		userID, year, month).
		Scan(&rep.ID, &rep.UserID, &rep.Year, &rep.Month, &rep.WorkedTime.Minutes,
			&rep.DaysWorked, &rep.TotalEarnings.Cents, &rep.IsCompleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.MonthlyReport{}, core.ErrNotFound
		}
		return core.MonthlyReport{}, fmt.Errorf("get report: %w", err)
	}
	return rep, nil
}

// UpsertReport persists a recomputed report, keyed by (user, year,
// month). A report without an id gets one; the id is returned so the
// caller sees the stored identity.
func (r *SQLiteRepository) UpsertReport(ctx context.Context, rep core.MonthlyReport) (core.MonthlyReport, error) {
	if rep.ID == "" {
		rep.ID = uuid.NewString()
	}

	query := `INSERT INTO monthly_reports
			(id, user_id, year, month, worked_minutes, days_worked, total_earnings_cents, is_completed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, year, month) DO UPDATE SET
			worked_minutes = excluded.worked_minutes,
			days_worked = excluded.days_worked,
			total_earnings_cents = excluded.total_earnings_cents,
			is_completed = excluded.is_completed,
			updated_at = CURRENT_TIMESTAMP`

	_, err := r.db.ExecContext(ctx, query,
		rep.ID, rep.UserID, rep.Year, rep.Month, rep.WorkedTime.Minutes,
		rep.DaysWorked, rep.TotalEarnings.Cents, rep.IsCompleted)
	if err != nil {
		return core.MonthlyReport{}, fmt.Errorf("upsert report: %w", err)
	}

	// The conflict branch keeps the existing row id.
	stored, err := r.GetReport(ctx, rep.UserID, rep.Year, rep.Month)
	if err != nil {
		return core.MonthlyReport{}, err
	}

	slog.InfoContext(ctx, "Report upserted",
		"user_id", rep.UserID,
		"year", rep.Year,
		"month", rep.Month,
		"minutes", rep.WorkedTime.Minutes,
		"days_worked", rep.DaysWorked)

	return stored, nil
}

// SetReportCompleted flips the completion flag of an existing report.
func (r *SQLiteRepository) SetReportCompleted(ctx context.Context, userID string, year, month int, completed bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE monthly_reports SET is_completed = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE user_id = ? AND year = ? AND month = ?`,
		completed, userID, year, month)
	if err != nil {
		return fmt.Errorf("set report completed: %w", err)
	}
	return requireRow(res, "set report completed")
}
