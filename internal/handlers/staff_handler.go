package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"agency-console/internal/models"
	"agency-console/internal/services"
)

type StaffHandler struct {
	Employees *services.EmployeeService
	Interns   *services.InternService
}

func NewStaffHandler(e *services.EmployeeService, i *services.InternService) *StaffHandler {
	return &StaffHandler{Employees: e, Interns: i}
}

func (h *StaffHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Employees.List(r.Context())
	if err != nil {
		readError(w, err, "Failed to load employees")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"employees": employees})
}

func (h *StaffHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req models.StaffRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Employees.Create(r.Context(), &req); err != nil {
		mutationError(w, err, "Failed to add employee")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Employee added"})
}

func (h *StaffHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req models.StaffRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Employees.Update(r.Context(), mux.Vars(r)["id"], &req); err != nil {
		mutationError(w, err, "Failed to update employee")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Employee updated"})
}

func (h *StaffHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.Employees.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		mutationError(w, err, "Failed to delete employee")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Employee deleted"})
}

func (h *StaffHandler) ListInterns(w http.ResponseWriter, r *http.Request) {
	interns, err := h.Interns.List(r.Context())
	if err != nil {
		readError(w, err, "Failed to load interns")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"interns": interns})
}

func (h *StaffHandler) CreateIntern(w http.ResponseWriter, r *http.Request) {
	var req models.StaffRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Interns.Create(r.Context(), &req); err != nil {
		mutationError(w, err, "Failed to add intern")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Intern added"})
}

func (h *StaffHandler) UpdateIntern(w http.ResponseWriter, r *http.Request) {
	var req models.StaffRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Interns.Update(r.Context(), mux.Vars(r)["id"], &req); err != nil {
		mutationError(w, err, "Failed to update intern")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Intern updated"})
}

func (h *StaffHandler) DeleteIntern(w http.ResponseWriter, r *http.Request) {
	if err := h.Interns.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		mutationError(w, err, "Failed to delete intern")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Intern deleted"})
}
