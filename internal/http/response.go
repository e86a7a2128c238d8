package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"ore/internal/core"
)

type entryResponse struct {
	ID         string  `json:"id"`
	ProjectID  string  `json:"project_id"`
	Date       string  `json:"date"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	Duration   float64 `json:"duration"`
	HourlyRate float64 `json:"hourly_rate"`
	Earnings   float64 `json:"earnings"`
	Notes      string  `json:"notes,omitempty"`
}

type reportResponse struct {
	ID            string  `json:"id"`
	Year          int     `json:"year"`
	Month         int     `json:"month"`
	HoursWorked   float64 `json:"hours_worked"`
	DaysWorked    int     `json:"days_worked"`
	DailyAverage  float64 `json:"daily_average"`
	TotalEarnings float64 `json:"total_earnings"`
	IsCompleted   bool    `json:"is_completed"`
}

type projectResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type profileResponse struct {
	ID               string  `json:"id"`
	Username         string  `json:"username"`
	Name             string  `json:"name"`
	Email            string  `json:"email,omitempty"`
	Initials         string  `json:"initials"`
	HourlyRate       float64 `json:"hourly_rate"`
	MonthlyGoalHours float64 `json:"monthly_goal_hours"`
}

func toEntryResponse(e core.TimeEntry) entryResponse {
	return entryResponse{
		ID:         e.ID,
		ProjectID:  e.ProjectID,
		Date:       e.Date.Key(),
		StartTime:  e.StartTime,
		EndTime:    e.EndTime,
		Duration:   core.Round2(e.Duration.Hours()),
		HourlyRate: e.HourlyRate.Amount(),
		Earnings:   e.Earnings.Amount(),
		Notes:      e.Notes,
	}
}

func toReportResponse(r core.MonthlyReport) reportResponse {
	return reportResponse{
		ID:            r.ID,
		Year:          r.Year,
		Month:         r.Month,
		HoursWorked:   core.Round2(r.HoursWorked()),
		DaysWorked:    r.DaysWorked,
		DailyAverage:  core.Round2(r.DailyAverage()),
		TotalEarnings: r.TotalEarnings.Amount(),
		IsCompleted:   r.IsCompleted,
	}
}

func toProjectResponse(p core.Project) projectResponse {
	return projectResponse{ID: p.ID, Name: p.Name, Color: p.Color}
}

func toProfileResponse(u core.User) profileResponse {
	return profileResponse{
		ID:               u.ID,
		Username:         u.Username,
		Name:             u.Name,
		Email:            u.Email,
		Initials:         u.Initials,
		HourlyRate:       u.HourlyRate.Amount(),
		MonthlyGoalHours: core.Round2(u.MonthlyGoal.Hours()),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed encoding response", "error", err)
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeError maps domain errors onto HTTP status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrAlreadyExists),
		errors.Is(err, core.ErrProjectInUse):
		status = http.StatusConflict
	case errors.Is(err, core.ErrInvalidClock),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidMonth),
		errors.Is(err, core.ErrEmptyProject),
		errors.Is(err, core.ErrEmptyProjectName),
		errors.Is(err, core.ErrNotesTooLong),
		errors.Is(err, core.ErrProjectNameTooLong),
		errors.Is(err, core.ErrEmptyUsername),
		errors.Is(err, core.ErrEmptyPassword):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "Request failed", "url", r.URL.Path, "error", err)
		writeJSON(w, status, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
