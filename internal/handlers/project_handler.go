package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"agency-console/internal/models"
	"agency-console/internal/services"
)

type ProjectHandler struct {
	Service *services.ProjectService
}

func NewProjectHandler(s *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{Service: s}
}

func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Service.List(r.Context())
	if err != nil {
		readError(w, err, "Failed to load projects")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": projects})
}

func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.Service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		readError(w, err, "Failed to load project")
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req models.ProjectRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Service.Create(r.Context(), &req); err != nil {
		mutationError(w, err, "Failed to create project")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Project created"})
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var req models.ProjectRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Service.Update(r.Context(), mux.Vars(r)["id"], &req); err != nil {
		mutationError(w, err, "Failed to update project")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Project updated"})
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		mutationError(w, err, "Failed to delete project")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Project deleted"})
}
