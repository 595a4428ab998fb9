package http

import (
	"net/http"

	"meetingroom-backend/internal/service"

	"github.com/gorilla/mux"
)

type NotificationHandler struct {
	notes service.NotificationService
}

func NewNotificationHandler(notes service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notes: notes}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := parseInt32(q.Get("page"), 1)
	limit := parseInt32(q.Get("limit"), 10)

	notes, total, err := h.notes.List(r.Context(), UserIDFromContext(r.Context()), page, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":  notes,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notes.MarkAsRead(r.Context(), mux.Vars(r)["id"], UserIDFromContext(r.Context())); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
