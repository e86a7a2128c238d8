package http

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"ore/internal/auth"
	"ore/internal/core"
)

type projectRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.projects.ListProjects(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	p := core.Project{
		ID:     uuid.NewString(),
		UserID: auth.UserID(r.Context()),
		Name:   strings.TrimSpace(req.Name),
		Color:  req.Color,
	}
	if err := p.Validate(); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.projects.CreateProject(r.Context(), p); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProjectResponse(p))
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	userID := auth.UserID(r.Context())
	p, err := s.projects.GetProject(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	p.Name = strings.TrimSpace(req.Name)
	p.Color = req.Color
	if err := p.Validate(); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.projects.UpdateProject(r.Context(), p); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectResponse(p))
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if err := s.projects.DeleteProject(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
