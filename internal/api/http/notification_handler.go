package http

import (
	"net/http"

	"agrohire-backend/internal/service"

	"github.com/gorilla/mux"
)

type NotificationHandler struct {
	notificationSvc service.NotificationService
}

func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing user identity"})
		return
	}

	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)

	items, total, err := h.notificationSvc.GetNotifications(r.Context(), userID, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: items, Total: total})
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing user identity"})
		return
	}
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid notification id"})
		return
	}

	if err := h.notificationSvc.MarkAsRead(r.Context(), userID, id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
