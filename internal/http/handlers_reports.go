package http

import (
	"net/http"
	"strconv"

	"ore/internal/auth"
	"ore/internal/core"
)

func monthFromPath(r *http.Request) (int, int, error) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil || year < 1 {
		return 0, 0, core.ErrInvalidDate
	}
	month, err := strconv.Atoi(r.PathValue("month"))
	if err != nil {
		return 0, 0, core.ErrInvalidMonth
	}
	if err := core.ValidateMonth(month); err != nil {
		return 0, 0, err
	}
	return year, month, nil
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	year, month, err := monthFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	key := monthKey(userID, year, month)
	report, ok := s.reportCache.Get(key)
	if !ok {
		report, err = s.reports.Monthly(r.Context(), userID, year, month)
		if err != nil {
			writeError(w, r, err)
			return
		}
		s.reportCache.Set(key, report)
	}
	writeJSON(w, http.StatusOK, toReportResponse(report))
}

func (s *Server) handleCompleteReport(w http.ResponseWriter, r *http.Request) {
	s.setReportCompleted(w, r, true)
}

func (s *Server) handleReopenReport(w http.ResponseWriter, r *http.Request) {
	s.setReportCompleted(w, r, false)
}

func (s *Server) setReportCompleted(w http.ResponseWriter, r *http.Request, completed bool) {
	userID := auth.UserID(r.Context())
	year, month, err := monthFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	report, err := s.reports.SetCompleted(r.Context(), userID, year, month, completed)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.reportCache.Delete(monthKey(userID, year, month))
	writeJSON(w, http.StatusOK, toReportResponse(report))
}
