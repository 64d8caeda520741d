package handlers

import (
	"net/http"

	"agency-console/internal/services"
)

type AttendanceHandler struct {
	Service *services.AttendanceService
}

func NewAttendanceHandler(s *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{Service: s}
}

func (h *AttendanceHandler) Mine(w http.ResponseWriter, r *http.Request) {
	records, err := h.Service.Mine(r.Context())
	if err != nil {
		readError(w, err, "Failed to load attendance")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"attendance": records})
}

// All is the admin view, optionally narrowed with ?userId=.
func (h *AttendanceHandler) All(w http.ResponseWriter, r *http.Request) {
	records, err := h.Service.All(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		readError(w, err, "Failed to load attendance")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"attendance": records})
}

func (h *AttendanceHandler) MarkPresent(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.MarkPresent(r.Context()); err != nil {
		mutationError(w, err, "Failed to mark attendance")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Attendance marked"})
}
