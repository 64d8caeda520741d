package handlers

import (
	"net/http"
	"time"

	"agency-console/internal/gate"
	"agency-console/internal/models"
	"agency-console/internal/services"
	"agency-console/internal/session"
)

type AuthHandler struct {
	Service *services.AuthService
	Session *session.Store
}

func NewAuthHandler(s *services.AuthService, store *session.Store) *AuthHandler {
	return &AuthHandler{Service: s, Session: store}
}

// Login signs in and sends the browser to the role's landing screen.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	user, err := h.Service.Login(r.Context(), &req)
	if err != nil {
		mutationError(w, err, "Login failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user":     user,
		"shell":    gate.ShellFor(gate.StateFor(user.Role)).Name,
		"redirect": "/",
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Logout(r.Context()); err != nil {
		mutationError(w, err, "Logout failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"redirect": gate.LoginPath})
}

// Me reports the current session. Anonymous callers get authenticated=false
// rather than an error.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := h.Session.Current()
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	body := map[string]any{
		"authenticated": true,
		"user":          user,
		"shell":         gate.ShellFor(gate.StateFor(user.Role)),
	}
	if exp, ok := session.TokenExpiry(h.Session.Token()); ok {
		body["expiresAt"] = exp.Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, body)
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Service.ForgotPassword(r.Context(), &req); err != nil {
		mutationError(w, err, "Failed to send OTP")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "OTP sent to your email", "redirect": "/verify-otp"})
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OTP string `json:"otp"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := h.Service.VerifyOTP(r.Context(), req.OTP); err != nil {
		mutationError(w, err, "Invalid or expired OTP")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "OTP verified", "redirect": "/reset-password"})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		NewPassword string `json:"newPassword"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := h.Service.ResetPassword(r.Context(), req.NewPassword); err != nil {
		mutationError(w, err, "Failed to reset password")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Password updated. Please sign in.", "redirect": gate.LoginPath})
}
