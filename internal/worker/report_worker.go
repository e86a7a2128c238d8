// Package worker keeps the persisted monthly_reports rows warm: it
// recomputes reports when entry writes publish a recalc message, and
// periodically sweeps the current month for every active user.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ore/internal/amqp"
	"ore/internal/core"
)

// ReportComputer recomputes and persists one monthly report.
// *services.ReportService implements it.
type ReportComputer interface {
	Monthly(ctx context.Context, userID string, year, month int) (core.MonthlyReport, error)
}

// UserLister enumerates users owning entries, for the periodic sweep.
type UserLister interface {
	ListEntryUsers(ctx context.Context) ([]string, error)
}

type ReportWorker struct {
	reports ReportComputer
	users   UserLister
}

func NewReportWorker(reports ReportComputer, users UserLister) *ReportWorker {
	return &ReportWorker{reports: reports, users: users}
}

// HandleRecalcMessage processes a single recalc request from AMQP.
// Invalid messages come back wrapped in amqp.ErrBadMessage so the
// consumer drops them instead of requeueing.
func (w *ReportWorker) HandleRecalcMessage(ctx context.Context, msg *amqp.ReportRecalcMessage) error {
	if msg.UserID == "" {
		return fmt.Errorf("recalc message without user id: %w", amqp.ErrBadMessage)
	}
	if err := core.ValidateMonth(msg.Month); err != nil {
		return fmt.Errorf("recalc message for month %d: %v: %w", msg.Month, err, amqp.ErrBadMessage)
	}

	report, err := w.reports.Monthly(ctx, msg.UserID, msg.Year, msg.Month)
	if err != nil {
		return fmt.Errorf("recompute report: %w", err)
	}

	slog.InfoContext(ctx, "Report recomputed",
		"user_id", msg.UserID,
		"year", msg.Year,
		"month", msg.Month,
		"minutes", report.WorkedTime.Minutes,
		"days_worked", report.DaysWorked)

	return nil
}

// SweepCurrentMonth recomputes the report of the month containing now
// for every user with entries. Individual failures are logged and do
// not stop the sweep.
func (w *ReportWorker) SweepCurrentMonth(ctx context.Context, now time.Time) error {
	users, err := w.users.ListEntryUsers(ctx)
	if err != nil {
		return fmt.Errorf("list users for sweep: %w", err)
	}

	year, month := now.Year(), int(now.Month())
	failed := 0
	for _, userID := range users {
		if _, err := w.reports.Monthly(ctx, userID, year, month); err != nil {
			failed++
			slog.ErrorContext(ctx, "Sweep recompute failed",
				"error", err,
				"user_id", userID,
				"year", year,
				"month", month)
		}
	}

	slog.InfoContext(ctx, "Sweep completed",
		"users", len(users),
		"failed", failed,
		"year", year,
		"month", month)

	return nil
}
