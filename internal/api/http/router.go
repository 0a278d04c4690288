package http

import (
	"agrohire-backend/internal/service"

	"github.com/gorilla/mux"
)

// NewRouter wires every handler onto the /api/v1 tree.
func NewRouter(
	equipmentSvc service.EquipmentService,
	bookingSvc service.BookingService,
	pricingSvc service.PricingService,
	notificationSvc service.NotificationService,
) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	eh := NewEquipmentHandler(equipmentSvc, bookingSvc, pricingSvc)
	api.HandleFunc("/equipment", eh.Search).Methods("GET")
	api.HandleFunc("/equipment", eh.Create).Methods("POST")
	api.HandleFunc("/equipment/{id}", eh.Get).Methods("GET")
	api.HandleFunc("/equipment/{id}", eh.Update).Methods("PUT")
	api.HandleFunc("/equipment/{id}/price-test", eh.PriceTest).Methods("GET")
	api.HandleFunc("/equipment/{id}/availability", eh.Availability).Methods("GET")
	api.HandleFunc("/equipment/{id}/bookings", eh.Bookings).Methods("GET")
	api.HandleFunc("/equipment-types", eh.ListTypes).Methods("GET")
	api.HandleFunc("/equipment-types", eh.CreateType).Methods("POST")

	bh := NewBookingHandler(bookingSvc)
	api.HandleFunc("/bookings", bh.Create).Methods("POST")
	api.HandleFunc("/bookings", bh.ListMine).Methods("GET")
	api.HandleFunc("/bookings/{id}", bh.Get).Methods("GET")
	api.HandleFunc("/bookings/{id}/dates", bh.Reschedule).Methods("PUT")
	api.HandleFunc("/bookings/{id}/confirm", bh.Confirm).Methods("POST")
	api.HandleFunc("/bookings/{id}/reject", bh.Reject).Methods("POST")
	api.HandleFunc("/bookings/{id}/cancel", bh.Cancel).Methods("POST")
	api.HandleFunc("/bookings/{id}/start", bh.Start).Methods("POST")
	api.HandleFunc("/bookings/{id}/complete", bh.Complete).Methods("POST")

	ph := NewPricingHandler(pricingSvc)
	api.HandleFunc("/pricing/rules", ph.CreateRule).Methods("POST")
	api.HandleFunc("/pricing/seasonal", ph.CreateSeasonal).Methods("POST")
	api.HandleFunc("/pricing/demand", ph.CreateDemand).Methods("POST")

	nh := NewNotificationHandler(notificationSvc)
	api.HandleFunc("/notifications", nh.List).Methods("GET")
	api.HandleFunc("/notifications/{id}/read", nh.MarkAsRead).Methods("POST")

	return r
}
