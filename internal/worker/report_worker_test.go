package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ore/internal/amqp"
	"ore/internal/core"
)

type fakeComputer struct {
	calls []string
	fail  map[string]bool
}

func (f *fakeComputer) Monthly(_ context.Context, userID string, year, month int) (core.MonthlyReport, error) {
	key := userID
	f.calls = append(f.calls, key)
	if f.fail[key] {
		return core.MonthlyReport{}, errors.New("boom")
	}
	return core.MonthlyReport{UserID: userID, Year: year, Month: month}, nil
}

type fakeUsers struct {
	ids []string
	err error
}

func (f *fakeUsers) ListEntryUsers(context.Context) ([]string, error) {
	return f.ids, f.err
}

func TestHandleRecalcMessage(t *testing.T) {
	comp := &fakeComputer{}
	w := NewReportWorker(comp, &fakeUsers{})

	msg := amqp.NewReportRecalcMessage("u1", 2026, 3)
	require.NoError(t, w.HandleRecalcMessage(context.Background(), msg))
	require.Equal(t, []string{"u1"}, comp.calls)
}

func TestHandleRecalcMessageRejectsBadInput(t *testing.T) {
	w := NewReportWorker(&fakeComputer{}, &fakeUsers{})

	// Invalid messages are permanent failures: the consumer must see
	// ErrBadMessage so it drops them instead of redelivering forever.
	err := w.HandleRecalcMessage(context.Background(), &amqp.ReportRecalcMessage{Year: 2026, Month: 3})
	require.ErrorIs(t, err, amqp.ErrBadMessage)

	err = w.HandleRecalcMessage(context.Background(), amqp.NewReportRecalcMessage("u1", 2026, 13))
	require.ErrorIs(t, err, amqp.ErrBadMessage)
}

func TestHandleRecalcMessageComputeFailureIsTransient(t *testing.T) {
	comp := &fakeComputer{fail: map[string]bool{"u1": true}}
	w := NewReportWorker(comp, &fakeUsers{})

	err := w.HandleRecalcMessage(context.Background(), amqp.NewReportRecalcMessage("u1", 2026, 3))
	require.Error(t, err)
	require.NotErrorIs(t, err, amqp.ErrBadMessage)
}

func TestSweepCurrentMonthContinuesPastFailures(t *testing.T) {
	comp := &fakeComputer{fail: map[string]bool{"u2": true}}
	w := NewReportWorker(comp, &fakeUsers{ids: []string{"u1", "u2", "u3"}})

	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	require.NoError(t, w.SweepCurrentMonth(context.Background(), now))
	require.Equal(t, []string{"u1", "u2", "u3"}, comp.calls)
}

func TestSweepFailsWhenUserListingFails(t *testing.T) {
	w := NewReportWorker(&fakeComputer{}, &fakeUsers{err: errors.New("db down")})
	require.Error(t, w.SweepCurrentMonth(context.Background(), time.Now()))
}
