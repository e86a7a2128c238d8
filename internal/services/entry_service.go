package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"ore/internal/core"
)

// EntryService owns the entry write pipeline: validate, recompute the
// derived duration and earnings from the submitted inputs, persist,
// then nudge the report worker. Client-submitted duration or earnings
// values never enter this path.
type EntryService struct {
	store     EntryStore
	publisher RecalcPublisher
}

func NewEntryService(store EntryStore, publisher RecalcPublisher) *EntryService {
	return &EntryService{store: store, publisher: publisher}
}

// Create validates and persists a new entry, computing its derived
// fields. The entry's ID is assigned here.
func (s *EntryService) Create(ctx context.Context, e core.TimeEntry) (core.TimeEntry, error) {
	if err := e.Validate(); err != nil {
		return core.TimeEntry{}, err
	}
	if _, err := s.store.GetProject(ctx, e.UserID, e.ProjectID); err != nil {
		return core.TimeEntry{}, fmt.Errorf("resolve project: %w", err)
	}
	if err := e.Recalculate(); err != nil {
		return core.TimeEntry{}, err
	}

	e.ID = uuid.NewString()
	if err := s.store.CreateEntry(ctx, e); err != nil {
		return core.TimeEntry{}, fmt.Errorf("save entry: %w", err)
	}

	s.publishRecalc(ctx, e.UserID, e.Date.Year(), int(e.Date.Time.Month()))

	return e, nil
}

// Update applies the user-editable fields onto the stored entry and
// recomputes duration and earnings with the same rules as creation.
// If the entry moved between months both affected reports are nudged.
func (s *EntryService) Update(ctx context.Context, e core.TimeEntry) (core.TimeEntry, error) {
	existing, err := s.store.GetEntry(ctx, e.UserID, e.ID)
	if err != nil {
		return core.TimeEntry{}, err
	}
	if err := e.Validate(); err != nil {
		return core.TimeEntry{}, err
	}
	if e.ProjectID != existing.ProjectID {
		if _, err := s.store.GetProject(ctx, e.UserID, e.ProjectID); err != nil {
			return core.TimeEntry{}, fmt.Errorf("resolve project: %w", err)
		}
	}
	if err := e.Recalculate(); err != nil {
		return core.TimeEntry{}, err
	}

	if err := s.store.UpdateEntry(ctx, e); err != nil {
		return core.TimeEntry{}, fmt.Errorf("update entry: %w", err)
	}

	s.publishRecalc(ctx, e.UserID, e.Date.Year(), int(e.Date.Time.Month()))
	if !existing.Date.In(e.Date.Year(), int(e.Date.Time.Month())) {
		s.publishRecalc(ctx, e.UserID, existing.Date.Year(), int(existing.Date.Time.Month()))
	}

	return e, nil
}

// Delete removes an entry and nudges its month's report.
func (s *EntryService) Delete(ctx context.Context, userID, id string) error {
	existing, err := s.store.GetEntry(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteEntry(ctx, userID, id); err != nil {
		return err
	}

	s.publishRecalc(ctx, userID, existing.Date.Year(), int(existing.Date.Time.Month()))

	return nil
}

// Get returns a single entry owned by userID.
func (s *EntryService) Get(ctx context.Context, userID, id string) (core.TimeEntry, error) {
	return s.store.GetEntry(ctx, userID, id)
}

// ListMonth returns the user's entries of one calendar month.
func (s *EntryService) ListMonth(ctx context.Context, userID string, year, month int) ([]core.TimeEntry, error) {
	if err := core.ValidateMonth(month); err != nil {
		return nil, err
	}
	return s.store.ListEntriesForMonth(ctx, userID, year, month)
}

// publishRecalc is best effort: the entry is already committed and the
// report read path recomputes lazily, so a publish failure is logged
// and swallowed rather than failing the request.
func (s *EntryService) publishRecalc(ctx context.Context, userID string, year, month int) {
	if s.publisher == nil {
		slog.WarnContext(ctx, "Recalc publisher not available, skipping recalc message")
		return
	}
	if err := s.publisher.PublishReportRecalc(ctx, userID, year, month); err != nil {
		slog.ErrorContext(ctx, "Failed to publish recalc message",
			"error", err,
			"user_id", userID,
			"year", year,
			"month", month)
	}
}
