package http

import (
	"encoding/json"
	"net/http"

	"agrohire-backend/internal/domain"
	"agrohire-backend/internal/service"

	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingSvc service.BookingService
}

func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

type createBookingRequest struct {
	EquipmentID int32  `json:"equipment_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	RateType    string `json:"rate_type"`
	Notes       string `json:"notes"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing user identity"})
		return
	}

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid start_date"})
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid end_date"})
		return
	}

	booking, err := h.bookingSvc.CreateBooking(r.Context(), userID, req.EquipmentID, start, end, domain.RateType(req.RateType), req.Notes)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing user identity"})
		return
	}

	status := r.URL.Query().Get("status")
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)

	items, total, err := h.bookingSvc.ListUserBookings(r.Context(), userID, status, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: items, Total: total})
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid booking id"})
		return
	}

	booking, err := h.bookingSvc.GetBooking(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

type rescheduleRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (h *BookingHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing user identity"})
		return
	}
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid booking id"})
		return
	}

	var req rescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid start_date"})
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid end_date"})
		return
	}

	booking, err := h.bookingSvc.Reschedule(r.Context(), userID, id, start, end)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

type transitionRequest struct {
	Notes  string `json:"notes"`
	Reason string `json:"reason"`
}

// transition factors the shared shape of the status-change endpoints.
func (h *BookingHandler) transition(w http.ResponseWriter, r *http.Request, fn func(userID, bookingID int32, note string) (*domain.Booking, error)) {
	userID, ok := requestUserID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing user identity"})
		return
	}
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid booking id"})
		return
	}

	var req transitionRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	note := req.Notes
	if note == "" {
		note = req.Reason
	}

	booking, err := fn(userID, id, note)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(userID, bookingID int32, note string) (*domain.Booking, error) {
		return h.bookingSvc.ConfirmBooking(r.Context(), userID, bookingID, note)
	})
}

func (h *BookingHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(userID, bookingID int32, note string) (*domain.Booking, error) {
		return h.bookingSvc.RejectBooking(r.Context(), userID, bookingID, note)
	})
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(userID, bookingID int32, note string) (*domain.Booking, error) {
		return h.bookingSvc.CancelBooking(r.Context(), userID, bookingID, note)
	})
}

func (h *BookingHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(userID, bookingID int32, _ string) (*domain.Booking, error) {
		return h.bookingSvc.StartBooking(r.Context(), userID, bookingID)
	})
}

func (h *BookingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, func(userID, bookingID int32, _ string) (*domain.Booking, error) {
		return h.bookingSvc.CompleteBooking(r.Context(), userID, bookingID)
	})
}
