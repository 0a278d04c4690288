package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"agrohire-backend/internal/apperror"
	"agrohire-backend/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// respondError maps AppError codes onto HTTP statuses; anything else is
// a 500 with a generic message.
func respondError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		respondJSON(w, appErr.Code, errorResponse{Error: appErr.Message})
		return
	}
	logger.Error("Unhandled request error", "error", err)
	respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

// parseDate accepts a plain date or a full RFC 3339 timestamp.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func pathID(vars map[string]string, key string) (int32, bool) {
	id, err := strconv.ParseInt(vars[key], 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}

func queryInt32(r *http.Request, key string, def int32) int32 {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return def
	}
	return int32(n)
}

// requestUserID reads the authenticated user forwarded by the gateway.
func requestUserID(r *http.Request) (int32, bool) {
	v := r.Header.Get("X-User-ID")
	id, err := strconv.ParseInt(v, 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}
