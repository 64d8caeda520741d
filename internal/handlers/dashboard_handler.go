package handlers

import (
	"net/http"

	"agency-console/internal/middleware"
	"agency-console/internal/services"
)

type DashboardHandler struct {
	Service  *services.DashboardService
	Profiles *services.ProfileService
}

func NewDashboardHandler(s *services.DashboardService, p *services.ProfileService) *DashboardHandler {
	return &DashboardHandler{Service: s, Profiles: p}
}

// Admin never fails: unavailable collections are counted as empty.
func (h *DashboardHandler) Admin(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.Admin(r.Context()))
}

func (h *DashboardHandler) Staff(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, h.Service.Staff(r.Context(), user))
}

func (h *DashboardHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())
	profile, err := h.Profiles.Me(r.Context(), user)
	if err != nil {
		readError(w, err, "Failed to load profile")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
