package http

import (
	"encoding/json"
	"net/http"

	"agrohire-backend/internal/domain"
	"agrohire-backend/internal/service"
)

type PricingHandler struct {
	pricingSvc service.PricingService
}

func NewPricingHandler(pricingSvc service.PricingService) *PricingHandler {
	return &PricingHandler{pricingSvc: pricingSvc}
}

func (h *PricingHandler) CreateRule(w http.ResponseWriter, r *http.Request) {
	var rule domain.PricingRule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.pricingSvc.CreateRule(r.Context(), &rule); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rule)
}

func (h *PricingHandler) CreateSeasonal(w http.ResponseWriter, r *http.Request) {
	var sp domain.SeasonalPricing
	if err := json.NewDecoder(r.Body).Decode(&sp); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.pricingSvc.CreateSeasonalPricing(r.Context(), &sp); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, sp)
}

func (h *PricingHandler) CreateDemand(w http.ResponseWriter, r *http.Request) {
	var d domain.DemandPricing
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.pricingSvc.CreateDemandPricing(r.Context(), &d); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, d)
}
