package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"agency-console/internal/models"
	"agency-console/internal/services"
)

type NoticeHandler struct {
	Notices        *services.NoticeService
	Communications *services.CommunicationService
}

func NewNoticeHandler(n *services.NoticeService, c *services.CommunicationService) *NoticeHandler {
	return &NoticeHandler{Notices: n, Communications: c}
}

func (h *NoticeHandler) ListNotices(w http.ResponseWriter, r *http.Request) {
	notices, err := h.Notices.List(r.Context())
	if err != nil {
		readError(w, err, "Failed to load notices")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notices": notices})
}

func (h *NoticeHandler) CreateNotice(w http.ResponseWriter, r *http.Request) {
	var req models.NoticeRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Notices.Create(r.Context(), &req); err != nil {
		mutationError(w, err, "Failed to publish notice")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Notice published"})
}

func (h *NoticeHandler) DeleteNotice(w http.ResponseWriter, r *http.Request) {
	if err := h.Notices.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		mutationError(w, err, "Failed to delete notice")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Notice deleted"})
}

func (h *NoticeHandler) ListCommunications(w http.ResponseWriter, r *http.Request) {
	items, err := h.Communications.List(r.Context())
	if err != nil {
		readError(w, err, "Failed to load communications")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"communications": items})
}

func (h *NoticeHandler) CreateCommunication(w http.ResponseWriter, r *http.Request) {
	var req models.CommunicationRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Communications.Create(r.Context(), &req); err != nil {
		mutationError(w, err, "Failed to submit")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Submitted"})
}

func (h *NoticeHandler) ReplyCommunication(w http.ResponseWriter, r *http.Request) {
	var req models.ReplyRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Communications.Reply(r.Context(), mux.Vars(r)["id"], &req); err != nil {
		mutationError(w, err, "Failed to send reply")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Reply sent", "status": req.Status})
}

func (h *NoticeHandler) DeleteCommunication(w http.ResponseWriter, r *http.Request) {
	if err := h.Communications.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		mutationError(w, err, "Failed to delete")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Deleted"})
}
