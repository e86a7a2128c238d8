package services

import (
	"context"
	"errors"
	"fmt"

	"ore/internal/core"
)

// ReportService computes monthly reports on demand. The read path is
// authoritative: every view or export recomputes from the entries, so
// consumers never see stale aggregates; the persisted row exists for
// the worker and for anything reading the table directly.
type ReportService struct {
	store ReportStore
}

func NewReportService(store ReportStore) *ReportService {
	return &ReportService{store: store}
}

// Monthly recomputes the report for (userID, year, month) from its
// entries, preserving the completion flag of any persisted report, and
// stores the result. An empty month yields an all-zero report.
func (s *ReportService) Monthly(ctx context.Context, userID string, year, month int) (core.MonthlyReport, error) {
	if err := core.ValidateMonth(month); err != nil {
		return core.MonthlyReport{}, err
	}

	entries, err := s.store.ListEntriesForMonth(ctx, userID, year, month)
	if err != nil {
		return core.MonthlyReport{}, fmt.Errorf("list month entries: %w", err)
	}

	var prev *core.MonthlyReport
	stored, err := s.store.GetReport(ctx, userID, year, month)
	switch {
	case err == nil:
		prev = &stored
	case errors.Is(err, core.ErrNotFound):
		// first aggregation for this month
	default:
		return core.MonthlyReport{}, fmt.Errorf("load previous report: %w", err)
	}

	report := core.Aggregate(userID, year, month, entries, prev)

	persisted, err := s.store.UpsertReport(ctx, report)
	if err != nil {
		return core.MonthlyReport{}, fmt.Errorf("persist report: %w", err)
	}

	return persisted, nil
}

// SetCompleted marks a month as finalized (or reopens it). Completion
// is only ever changed here, never by recomputation. Completing a
// month that was never aggregated materializes its report first.
func (s *ReportService) SetCompleted(ctx context.Context, userID string, year, month int, completed bool) (core.MonthlyReport, error) {
	if err := core.ValidateMonth(month); err != nil {
		return core.MonthlyReport{}, err
	}

	err := s.store.SetReportCompleted(ctx, userID, year, month, completed)
	if errors.Is(err, core.ErrNotFound) {
		if _, err := s.Monthly(ctx, userID, year, month); err != nil {
			return core.MonthlyReport{}, err
		}
		err = s.store.SetReportCompleted(ctx, userID, year, month, completed)
	}
	if err != nil {
		return core.MonthlyReport{}, fmt.Errorf("set completed: %w", err)
	}

	return s.store.GetReport(ctx, userID, year, month)
}
