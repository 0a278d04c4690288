package service

import (
	"net/http"

	"agrohire-backend/internal/apperror"
)

var (
	ErrEquipmentNotFound = apperror.New(http.StatusNotFound, "equipment not found")
	ErrBookingNotFound   = apperror.New(http.StatusNotFound, "booking not found")
	ErrNotifNotFound     = apperror.New(http.StatusNotFound, "notification not found")
	ErrBookingConflict   = apperror.New(http.StatusConflict, "equipment is already booked for the requested dates")
	ErrInvalidTimeRange  = apperror.New(http.StatusBadRequest, "end date must be after start date")
	ErrInvalidRateType   = apperror.New(http.StatusBadRequest, "invalid rate type")
	ErrNotBookingOwner   = apperror.New(http.StatusForbidden, "only the equipment owner may perform this action")
	ErrNotBookingUser    = apperror.New(http.StatusForbidden, "only the booking's customer may perform this action")
	ErrInvalidTransition = apperror.New(http.StatusConflict, "booking status does not allow this action")
)
