package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"agency-console/internal/gate"
	"agency-console/internal/middleware"
	"agency-console/internal/models"
	"agency-console/internal/services"
)

type HandoverHandler struct {
	Service *services.HandoverService
}

func NewHandoverHandler(s *services.HandoverService) *HandoverHandler {
	return &HandoverHandler{Service: s}
}

// ListHandovers returns every handover to admins and only their own to
// employees and interns.
func (h *HandoverHandler) ListHandovers(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var (
		handovers []models.Handover
		err       error
	)
	if gate.StateFor(user.Role) == gate.Admin {
		handovers, err = h.Service.List(r.Context())
	} else {
		handovers, err = h.Service.ListFor(r.Context(), user.ID)
	}
	if err != nil {
		readError(w, err, "Failed to load handovers")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"handovers": handovers})
}

func (h *HandoverHandler) GetHandover(w http.ResponseWriter, r *http.Request) {
	handover, err := h.Service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		readError(w, err, "Failed to load handover")
		return
	}
	writeJSON(w, http.StatusOK, handover)
}

func (h *HandoverHandler) CreateHandover(w http.ResponseWriter, r *http.Request) {
	var req models.HandoverRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Service.Create(r.Context(), &req); err != nil {
		mutationError(w, err, "Failed to create handover")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Handover created"})
}

func (h *HandoverHandler) UpdateHandover(w http.ResponseWriter, r *http.Request) {
	var req models.HandoverRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Service.Update(r.Context(), mux.Vars(r)["id"], &req); err != nil {
		mutationError(w, err, "Failed to update handover")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Handover updated"})
}

func (h *HandoverHandler) DeleteHandover(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		mutationError(w, err, "Failed to delete handover")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Handover deleted"})
}
