package http

import (
	"fmt"
	"net/http"

	"ore/internal/auth"
	"ore/internal/core"
	"ore/internal/export"
)

// exportMonth loads everything a file export needs: the month's
// entries plus a project id to name lookup.
func (s *Server) exportMonth(r *http.Request) (string, int, int, []core.TimeEntry, map[string]string, error) {
	userID := auth.UserID(r.Context())
	year, month, err := monthFromQuery(r)
	if err != nil {
		return "", 0, 0, nil, nil, err
	}

	entries, err := s.entries.ListMonth(r.Context(), userID, year, month)
	if err != nil {
		return "", 0, 0, nil, nil, err
	}

	projects, err := s.projects.ListProjects(r.Context(), userID)
	if err != nil {
		return "", 0, 0, nil, nil, err
	}
	names := make(map[string]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}
	return userID, year, month, entries, names, nil
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	_, year, month, entries, names, err := s.exportMonth(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="entries-%04d-%02d.csv"`, year, month))
	if err := export.WriteEntriesCSV(w, entries, names); err != nil {
		writeError(w, r, err)
	}
}

func (s *Server) handleExportExcel(w http.ResponseWriter, r *http.Request) {
	_, year, month, entries, names, err := s.exportMonth(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="entries-%04d-%02d.xlsx"`, year, month))
	if err := export.WriteEntriesExcel(w, entries, names); err != nil {
		writeError(w, r, err)
	}
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	userID, year, month, entries, names, err := s.exportMonth(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := s.users.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	report, err := s.reports.Monthly(r.Context(), userID, year, month)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="report-%04d-%02d.pdf"`, year, month))
	if err := export.WriteReportPDF(w, user, report, entries, names); err != nil {
		writeError(w, r, err)
	}
}
