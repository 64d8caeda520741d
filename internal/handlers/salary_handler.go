package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"agency-console/internal/export"
	"agency-console/internal/gate"
	"agency-console/internal/middleware"
	"agency-console/internal/models"
	"agency-console/internal/services"
)

type SalaryHandler struct {
	Service *services.SalaryService
}

func NewSalaryHandler(s *services.SalaryService) *SalaryHandler {
	return &SalaryHandler{Service: s}
}

func (h *SalaryHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.Service.Overview(r.Context())
	if err != nil {
		readError(w, err, "Failed to load salaries")
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (h *SalaryHandler) AddPayment(w http.ResponseWriter, r *http.Request) {
	var req models.SalaryRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Service.AddPayment(r.Context(), &req); err != nil {
		mutationError(w, err, "Failed to record salary payment")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Salary payment recorded"})
}

// History lists one payee's payments. Employees and interns only ever see
// their own, whatever id the path names.
func (h *SalaryHandler) History(w http.ResponseWriter, r *http.Request) {
	payeeID := mux.Vars(r)["id"]
	if user, ok := middleware.UserFromContext(r.Context()); ok && gate.StateFor(user.Role) != gate.Admin {
		payeeID = user.ID
	}
	payments, err := h.Service.History(r.Context(), payeeID)
	if err != nil {
		readError(w, err, "Failed to load salary history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"payments": payments})
}

func (h *SalaryHandler) Export(w http.ResponseWriter, r *http.Request) {
	payments, err := h.Service.All(r.Context())
	if err != nil {
		readError(w, err, "Failed to load salaries")
		return
	}
	buf, err := export.Salaries(payments)
	if err != nil {
		readError(w, err, "Failed to export salaries")
		return
	}
	writeSpreadsheet(w, "salaries.xlsx", buf.Bytes())
}
