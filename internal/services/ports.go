// Package services orchestrates the domain computations over storage
// and the async recalc channel. Handlers and the worker talk to these
// services, never to SQL or AMQP directly.
package services

import (
	"context"

	"ore/internal/core"
)

// EntryStore is the slice of storage the entry pipeline needs.
type EntryStore interface {
	CreateEntry(ctx context.Context, e core.TimeEntry) error
	UpdateEntry(ctx context.Context, e core.TimeEntry) error
	DeleteEntry(ctx context.Context, userID, id string) error
	GetEntry(ctx context.Context, userID, id string) (core.TimeEntry, error)
	ListEntriesForMonth(ctx context.Context, userID string, year, month int) ([]core.TimeEntry, error)
	GetProject(ctx context.Context, userID, id string) (core.Project, error)
}

// ReportStore is the slice of storage the report path needs.
type ReportStore interface {
	ListEntriesForMonth(ctx context.Context, userID string, year, month int) ([]core.TimeEntry, error)
	GetReport(ctx context.Context, userID string, year, month int) (core.MonthlyReport, error)
	UpsertReport(ctx context.Context, rep core.MonthlyReport) (core.MonthlyReport, error)
	SetReportCompleted(ctx context.Context, userID string, year, month int, completed bool) error
}

// RecalcPublisher publishes report-recalculation requests. The AMQP
// client implements it; entry writes survive a missing broker.
type RecalcPublisher interface {
	PublishReportRecalc(ctx context.Context, userID string, year, month int) error
}
