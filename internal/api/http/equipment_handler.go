package http

import (
	"encoding/json"
	"net/http"
	"time"

	"agrohire-backend/internal/domain"
	"agrohire-backend/internal/service"

	"github.com/gorilla/mux"
)

// EquipmentHandler serves the equipment catalogue plus the availability
// and price-test endpoints attached to a single item.
type EquipmentHandler struct {
	equipmentSvc service.EquipmentService
	bookingSvc   service.BookingService
	pricingSvc   service.PricingService
}

func NewEquipmentHandler(equipmentSvc service.EquipmentService, bookingSvc service.BookingService, pricingSvc service.PricingService) *EquipmentHandler {
	return &EquipmentHandler{
		equipmentSvc: equipmentSvc,
		bookingSvc:   bookingSvc,
		pricingSvc:   pricingSvc,
	}
}

type listResponse struct {
	Items any   `json:"items"`
	Total int32 `json:"total"`
}

func (h *EquipmentHandler) Search(w http.ResponseWriter, r *http.Request) {
	typeID := queryInt32(r, "type_id", 0)
	city := r.URL.Query().Get("city")
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)

	items, total, err := h.equipmentSvc.SearchEquipment(r.Context(), typeID, city, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: items, Total: total})
}

func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := requestUserID(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing user identity"})
		return
	}

	var eq domain.Equipment
	if err := json.NewDecoder(r.Body).Decode(&eq); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	eq.OwnerID = ownerID

	if err := h.equipmentSvc.AddEquipment(r.Context(), &eq); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, eq)
}

func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid equipment id"})
		return
	}

	eq, err := h.equipmentSvc.GetEquipment(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, eq)
}

func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid equipment id"})
		return
	}

	var eq domain.Equipment
	if err := json.NewDecoder(r.Body).Decode(&eq); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	eq.ID = id

	if err := h.equipmentSvc.UpdateEquipment(r.Context(), &eq); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, eq)
}

// PriceTest computes today's effective daily rate without booking
// anything. An optional date query overrides the evaluation day.
func (h *EquipmentHandler) PriceTest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid equipment id"})
		return
	}

	date := time.Now().UTC()
	if v := r.URL.Query().Get("date"); v != "" {
		parsed, err := parseDate(v)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid date"})
			return
		}
		date = parsed
	}

	quote, err := h.pricingSvc.Quote(r.Context(), id, date)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, quote)
}

type availabilityResponse struct {
	EquipmentID int32     `json:"equipment_id"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Available   bool      `json:"available"`
}

func (h *EquipmentHandler) Availability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid equipment id"})
		return
	}

	start, err := parseDate(r.URL.Query().Get("start_date"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid start_date"})
		return
	}
	end, err := parseDate(r.URL.Query().Get("end_date"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid end_date"})
		return
	}

	available, err := h.bookingSvc.IsAvailable(r.Context(), id, start, end, 0)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, availabilityResponse{
		EquipmentID: id,
		StartDate:   start,
		EndDate:     end,
		Available:   available,
	})
}

func (h *EquipmentHandler) Bookings(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(mux.Vars(r), "id")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid equipment id"})
		return
	}

	status := r.URL.Query().Get("status")
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)

	items, total, err := h.bookingSvc.ListEquipmentBookings(r.Context(), id, status, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listResponse{Items: items, Total: total})
}

func (h *EquipmentHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.equipmentSvc.ListEquipmentTypes(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, types)
}

func (h *EquipmentHandler) CreateType(w http.ResponseWriter, r *http.Request) {
	var et domain.EquipmentType
	if err := json.NewDecoder(r.Body).Decode(&et); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.equipmentSvc.AddEquipmentType(r.Context(), &et); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, et)
}
