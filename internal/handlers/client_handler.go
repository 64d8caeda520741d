package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"agency-console/internal/models"
	"agency-console/internal/services"
)

type ClientHandler struct {
	Service *services.ClientService
}

func NewClientHandler(s *services.ClientService) *ClientHandler {
	return &ClientHandler{Service: s}
}

func (h *ClientHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Service.List(r.Context())
	if err != nil {
		readError(w, err, "Failed to load clients")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"clients": clients})
}

func (h *ClientHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req models.ClientRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Service.Create(r.Context(), &req); err != nil {
		mutationError(w, err, "Failed to add client")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Client added"})
}

func (h *ClientHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	var req models.ClientRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Service.Update(r.Context(), mux.Vars(r)["id"], &req); err != nil {
		mutationError(w, err, "Failed to update client")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Client updated"})
}

func (h *ClientHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		mutationError(w, err, "Failed to delete client")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Client deleted"})
}
