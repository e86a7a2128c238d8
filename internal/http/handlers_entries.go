package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"ore/internal/auth"
	"ore/internal/core"
)

type entryRequest struct {
	ProjectID  string      `json:"project_id"`
	Date       string      `json:"date"` // "2006-01-02"
	StartTime  string      `json:"start_time"`
	EndTime    string      `json:"end_time"`
	HourlyRate json.Number `json:"hourly_rate"` // empty: profile default on create, stored rate on update
	Notes      string      `json:"notes"`
}

// entryFromRequest builds a domain entry from the request. The bool
// reports whether the client supplied a rate; the handlers fill it in
// from the profile (create) or the stored entry (update) otherwise.
func entryFromRequest(userID string, req entryRequest) (core.TimeEntry, bool, error) {
	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return core.TimeEntry{}, false, core.ErrInvalidDate
	}

	e := core.TimeEntry{
		UserID:    userID,
		ProjectID: req.ProjectID,
		Date:      core.Date{Time: day},
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Notes:     req.Notes,
	}

	if req.HourlyRate == "" {
		return e, false, nil
	}
	cents, err := core.ParseDecimalToCents(req.HourlyRate.String())
	if err != nil {
		return core.TimeEntry{}, false, err
	}
	e.HourlyRate = core.Money{Cents: cents}
	return e, true, nil
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	year, month, err := monthFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	key := monthKey(userID, year, month)
	entries, ok := s.entriesCache.Get(key)
	if !ok {
		entries, err = s.entries.ListMonth(r.Context(), userID, year, month)
		if err != nil {
			writeError(w, r, err)
			return
		}
		s.entriesCache.Set(key, entries)
	}

	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	userID := auth.UserID(r.Context())
	e, hasRate, err := entryFromRequest(userID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !hasRate {
		u, err := s.users.GetUser(r.Context(), userID)
		if err != nil {
			writeError(w, r, fmt.Errorf("loading default rate: %w", err))
			return
		}
		e.HourlyRate = u.HourlyRate
	}

	created, err := s.entries.Create(r.Context(), e)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateMonth(created.UserID, created.Date)
	writeJSON(w, http.StatusCreated, toEntryResponse(created))
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	var req entryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	userID := auth.UserID(r.Context())
	e, hasRate, err := entryFromRequest(userID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	e.ID = r.PathValue("id")

	// The stored entry supplies the rate fallback and the old month
	// for cache invalidation (the entry may move between months).
	existing, err := s.entries.Get(r.Context(), userID, e.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	// An omitted rate keeps the entry's stored rate, it does not fall
	// back to the profile default.
	if !hasRate {
		e.HourlyRate = existing.HourlyRate
	}

	updated, err := s.entries.Update(r.Context(), e)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateMonth(updated.UserID, existing.Date)
	s.invalidateMonth(updated.UserID, updated.Date)
	writeJSON(w, http.StatusOK, toEntryResponse(updated))
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	id := r.PathValue("id")

	existing, err := s.entries.Get(r.Context(), userID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.entries.Delete(r.Context(), userID, id); err != nil {
		writeError(w, r, err)
		return
	}
	s.invalidateMonth(userID, existing.Date)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) invalidateMonth(userID string, d core.Date) {
	key := monthKey(userID, d.Year(), int(d.Time.Month()))
	s.entriesCache.Delete(key)
	s.reportCache.Delete(key)
}

func monthKey(userID string, year, month int) string {
	return fmt.Sprintf("%s/%04d-%02d", userID, year, month)
}

// monthFromQuery reads ?year= and ?month=, defaulting to the current
// month when both are absent.
func monthFromQuery(r *http.Request) (int, int, error) {
	y := r.URL.Query().Get("year")
	m := r.URL.Query().Get("month")
	if y == "" && m == "" {
		now := time.Now()
		return now.Year(), int(now.Month()), nil
	}

	year, err := strconv.Atoi(y)
	if err != nil || year < 1 {
		return 0, 0, core.ErrInvalidDate
	}
	month, err := strconv.Atoi(m)
	if err != nil {
		return 0, 0, core.ErrInvalidMonth
	}
	if err := core.ValidateMonth(month); err != nil {
		return 0, 0, err
	}
	return year, month, nil
}
