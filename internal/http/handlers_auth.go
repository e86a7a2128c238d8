package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"ore/internal/auth"
	"ore/internal/core"
)

type registerRequest struct {
	Username         string      `json:"username"`
	Password         string      `json:"password"`
	Name             string      `json:"name"`
	Email            string      `json:"email"`
	HourlyRate       json.Number `json:"hourly_rate"`
	MonthlyGoalHours json.Number `json:"monthly_goal_hours"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string          `json:"token"`
	User  profileResponse `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		writeError(w, r, core.ErrEmptyUsername)
		return
	}
	if req.Password == "" {
		writeError(w, r, core.ErrEmptyPassword)
		return
	}

	rate, goal, err := parseProfileNumbers(req.HourlyRate, req.MonthlyGoalHours)
	if err != nil {
		writeError(w, r, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	u := core.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		HourlyRate:   rate,
		MonthlyGoal:  goal,
	}
	u.Initials = core.InitialsFor(u.Name, u.Username)

	if err := s.users.CreateUser(r.Context(), u); err != nil {
		writeError(w, r, err)
		return
	}

	token, err := auth.GenerateToken(u.ID, s.secret, s.tokenTTL)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tokenResponse{Token: token, User: toProfileResponse(u)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	u, err := s.users.GetUserByUsername(r.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
			return
		}
		writeError(w, r, err)
		return
	}
	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	token, err := auth.GenerateToken(u.ID, s.secret, s.tokenTTL)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token, User: toProfileResponse(u)})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.GetUser(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(u))
}

type profileUpdateRequest struct {
	Name             string      `json:"name"`
	Email            string      `json:"email"`
	HourlyRate       json.Number `json:"hourly_rate"`
	MonthlyGoalHours json.Number `json:"monthly_goal_hours"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	u, err := s.users.GetUser(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}

	rate, goal, err := parseProfileNumbers(req.HourlyRate, req.MonthlyGoalHours)
	if err != nil {
		writeError(w, r, err)
		return
	}

	u.Name = strings.TrimSpace(req.Name)
	u.Email = strings.TrimSpace(req.Email)
	u.HourlyRate = rate
	u.MonthlyGoal = goal
	u.Initials = core.InitialsFor(u.Name, u.Username)

	if err := s.users.UpdateUserProfile(r.Context(), u); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(u))
}

// parseProfileNumbers converts the optional rate and goal fields.
// The goal arrives in hours and is stored as whole minutes.
func parseProfileNumbers(rate, goalHours json.Number) (core.Money, core.Duration, error) {
	var m core.Money
	if rate != "" {
		cents, err := core.ParseDecimalToCents(rate.String())
		if err != nil {
			return core.Money{}, core.Duration{}, err
		}
		m = core.Money{Cents: cents}
	}

	var d core.Duration
	if goalHours != "" {
		h, err := goalHours.Float64()
		if err != nil || h < 0 {
			return core.Money{}, core.Duration{}, core.ErrInvalidAmount
		}
		d = core.Duration{Minutes: int64(h*60 + 0.5)}
	}
	return m, d, nil
}
