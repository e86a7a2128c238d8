package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"ore/internal/core"
)

// memStore is an in-memory stand-in for the SQLite repository,
// implementing both EntryStore and ReportStore.
type memStore struct {
	entries  map[string]core.TimeEntry
	projects map[string]core.Project
	reports  map[string]core.MonthlyReport // keyed user/year/month
}

func newMemStore() *memStore {
	return &memStore{
		entries:  make(map[string]core.TimeEntry),
		projects: make(map[string]core.Project),
		reports:  make(map[string]core.MonthlyReport),
	}
}

func reportKey(userID string, year, month int) string {
	return core.NewDate(year, month, 1).Key() + "/" + userID
}

func (m *memStore) CreateEntry(_ context.Context, e core.TimeEntry) error {
	m.entries[e.ID] = e
	return nil
}

func (m *memStore) UpdateEntry(_ context.Context, e core.TimeEntry) error {
	if _, ok := m.entries[e.ID]; !ok {
		return core.ErrNotFound
	}
	m.entries[e.ID] = e
	return nil
}

func (m *memStore) DeleteEntry(_ context.Context, userID, id string) error {
	if e, ok := m.entries[id]; !ok || e.UserID != userID {
		return core.ErrNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *memStore) GetEntry(_ context.Context, userID, id string) (core.TimeEntry, error) {
	e, ok := m.entries[id]
	if !ok || e.UserID != userID {
		return core.TimeEntry{}, core.ErrNotFound
	}
	return e, nil
}

func (m *memStore) ListEntriesForMonth(_ context.Context, userID string, year, month int) ([]core.TimeEntry, error) {
	var out []core.TimeEntry
	for _, e := range m.entries {
		if e.UserID == userID && e.Date.In(year, month) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memStore) GetProject(_ context.Context, userID, id string) (core.Project, error) {
	p, ok := m.projects[id]
	if !ok || p.UserID != userID {
		return core.Project{}, core.ErrNotFound
	}
	return p, nil
}

func (m *memStore) GetReport(_ context.Context, userID string, year, month int) (core.MonthlyReport, error) {
	r, ok := m.reports[reportKey(userID, year, month)]
	if !ok {
		return core.MonthlyReport{}, core.ErrNotFound
	}
	return r, nil
}

func (m *memStore) UpsertReport(_ context.Context, rep core.MonthlyReport) (core.MonthlyReport, error) {
	key := reportKey(rep.UserID, rep.Year, rep.Month)
	if existing, ok := m.reports[key]; ok {
		rep.ID = existing.ID
	} else if rep.ID == "" {
		rep.ID = uuid.NewString()
	}
	m.reports[key] = rep
	return rep, nil
}

func (m *memStore) SetReportCompleted(_ context.Context, userID string, year, month int, completed bool) error {
	key := reportKey(userID, year, month)
	r, ok := m.reports[key]
	if !ok {
		return core.ErrNotFound
	}
	r.IsCompleted = completed
	m.reports[key] = r
	return nil
}

type recordingPublisher struct {
	keys []string
}

func (p *recordingPublisher) PublishReportRecalc(_ context.Context, userID string, year, month int) error {
	p.keys = append(p.keys, reportKey(userID, year, month))
	return nil
}

func newEntry(userID, projectID string, day int, start, end string) core.TimeEntry {
	return core.TimeEntry{
		UserID:     userID,
		ProjectID:  projectID,
		Date:       core.NewDate(2026, 3, day),
		StartTime:  start,
		EndTime:    end,
		HourlyRate: core.Money{Cents: 2000},
	}
}

func seededStore() (*memStore, core.Project) {
	store := newMemStore()
	p := core.Project{ID: uuid.NewString(), UserID: "u1", Name: "Engine"}
	store.projects[p.ID] = p
	return store, p
}

func TestEntryCreateComputesDerivedFields(t *testing.T) {
	store, p := seededStore()
	pub := &recordingPublisher{}
	svc := NewEntryService(store, pub)

	created, err := svc.Create(context.Background(), newEntry("u1", p.ID, 12, "22:00", "06:00"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, int64(480), created.Duration.Minutes)
	require.Equal(t, int64(16000), created.Earnings.Cents)
	require.Equal(t, []string{reportKey("u1", 2026, 3)}, pub.keys)
}

func TestEntryCreateRejectsInvalid(t *testing.T) {
	store, p := seededStore()
	svc := NewEntryService(store, &recordingPublisher{})

	bad := newEntry("u1", p.ID, 12, "9:00", "17:00")
	_, err := svc.Create(context.Background(), bad)
	require.ErrorIs(t, err, core.ErrInvalidClock)
	require.Empty(t, store.entries)

	unknownProject := newEntry("u1", "nope", 12, "09:00", "17:00")
	_, err = svc.Create(context.Background(), unknownProject)
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestEntryUpdateRecomputesAndNudgesBothMonths(t *testing.T) {
	store, p := seededStore()
	pub := &recordingPublisher{}
	svc := NewEntryService(store, pub)

	created, err := svc.Create(context.Background(), newEntry("u1", p.ID, 12, "09:00", "17:00"))
	require.NoError(t, err)

	// Move the entry into April and change its rate.
	edited := created
	edited.Date = core.NewDate(2026, 4, 2)
	edited.HourlyRate = core.Money{Cents: 2500}
	edited.Earnings = core.Money{Cents: 1} // client-submitted value, must be ignored

	updated, err := svc.Update(context.Background(), edited)
	require.NoError(t, err)
	require.Equal(t, int64(480), updated.Duration.Minutes)
	require.Equal(t, int64(20000), updated.Earnings.Cents)

	require.Contains(t, pub.keys, reportKey("u1", 2026, 4))
	require.Equal(t, reportKey("u1", 2026, 3), pub.keys[len(pub.keys)-1])
}

func TestEntryDeleteNudgesMonth(t *testing.T) {
	store, p := seededStore()
	pub := &recordingPublisher{}
	svc := NewEntryService(store, pub)

	created, err := svc.Create(context.Background(), newEntry("u1", p.ID, 12, "09:00", "17:00"))
	require.NoError(t, err)

	pub.keys = nil
	require.NoError(t, svc.Delete(context.Background(), "u1", created.ID))
	require.Equal(t, []string{reportKey("u1", 2026, 3)}, pub.keys)

	require.ErrorIs(t, svc.Delete(context.Background(), "u1", created.ID), core.ErrNotFound)
}

func TestEntryCreateSurvivesMissingPublisher(t *testing.T) {
	store, p := seededStore()
	svc := NewEntryService(store, nil)

	_, err := svc.Create(context.Background(), newEntry("u1", p.ID, 12, "09:00", "17:00"))
	require.NoError(t, err)
}

func TestReportMonthly(t *testing.T) {
	store, p := seededStore()
	entrySvc := NewEntryService(store, nil)
	reportSvc := NewReportService(store)
	ctx := context.Background()

	for _, e := range []core.TimeEntry{
		newEntry("u1", p.ID, 2, "09:00", "12:00"),
		newEntry("u1", p.ID, 2, "13:00", "17:00"),
		newEntry("u1", p.ID, 5, "22:00", "06:00"),
	} {
		_, err := entrySvc.Create(ctx, e)
		require.NoError(t, err)
	}

	rep, err := reportSvc.Monthly(ctx, "u1", 2026, 3)
	require.NoError(t, err)
	require.Equal(t, 15.0, rep.HoursWorked())
	require.Equal(t, 2, rep.DaysWorked)
	require.Equal(t, 7.5, rep.DailyAverage())
	require.Equal(t, int64(30000), rep.TotalEarnings.Cents)
	require.False(t, rep.IsCompleted)

	// Empty month: all-zero report, no error.
	empty, err := reportSvc.Monthly(ctx, "u1", 2026, 7)
	require.NoError(t, err)
	require.Zero(t, empty.WorkedTime.Minutes)
	require.Zero(t, empty.DaysWorked)
	require.Zero(t, empty.DailyAverage())

	_, err = reportSvc.Monthly(ctx, "u1", 2026, 13)
	require.ErrorIs(t, err, core.ErrInvalidMonth)
}

func TestReportCompletionLifecycle(t *testing.T) {
	store, p := seededStore()
	entrySvc := NewEntryService(store, nil)
	reportSvc := NewReportService(store)
	ctx := context.Background()

	created, err := entrySvc.Create(ctx, newEntry("u1", p.ID, 12, "09:00", "17:00"))
	require.NoError(t, err)

	// Completing a never-aggregated month materializes the report.
	rep, err := reportSvc.SetCompleted(ctx, "u1", 2026, 3, true)
	require.NoError(t, err)
	require.True(t, rep.IsCompleted)
	require.Equal(t, 8.0, rep.HoursWorked())

	// Editing an entry in a completed month recomputes the numbers but
	// leaves the flag alone.
	created.EndTime = "18:00"
	_, err = entrySvc.Update(ctx, created)
	require.NoError(t, err)

	rep, err = reportSvc.Monthly(ctx, "u1", 2026, 3)
	require.NoError(t, err)
	require.Equal(t, 9.0, rep.HoursWorked())
	require.True(t, rep.IsCompleted)

	// Reopen.
	rep, err = reportSvc.SetCompleted(ctx, "u1", 2026, 3, false)
	require.NoError(t, err)
	require.False(t, rep.IsCompleted)
}
