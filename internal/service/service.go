package service

import (
	"context"
	"time"

	"agrohire-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// PriceResolution is the full outcome of a price computation: the base
// rate, the final rate after every adjustment, and which components
// contributed.
type PriceResolution struct {
	Equipment     *domain.Equipment
	RateType      domain.RateType
	BaseRate      decimal.Decimal
	FinalRate     decimal.Decimal
	Multiplier    decimal.Decimal
	DemandLevel   domain.DemandLevel
	RuleApplied   *domain.PricingRule
	SeasonApplied *domain.SeasonalPricing
}

// PriceQuote is the response shape of the price-test endpoint.
type PriceQuote struct {
	EquipmentName   string          `json:"equipment_name"`
	OriginalPrice   decimal.Decimal `json:"original_price"`
	NewPrice        decimal.Decimal `json:"new_price"`
	Multiplier      decimal.Decimal `json:"multiplier"`
	PriceHasChanged bool            `json:"price_has_changed"`
	RuleApplied     *string         `json:"rule_applied"`
}

// PricingReport summarizes one day of recorded price adjustments.
type PricingReport struct {
	Date              time.Time       `json:"date"`
	EquipmentCount    int32           `json:"equipment_count"`
	AverageMultiplier decimal.Decimal `json:"average_multiplier"`
}

type PricingService interface {
	// EffectivePrice resolves the rate for one equipment item on a date,
	// applying seasonal, demand and rule adjustments. at and loc narrow
	// time-of-day and geofence rule constraints; nil leaves them
	// unconstrained.
	EffectivePrice(ctx context.Context, equipmentID int32, rt domain.RateType, date time.Time, at *time.Time, loc *domain.Location) (*PriceResolution, error)
	// Quote runs EffectivePrice for the daily rate and packages the
	// result for the price-test endpoint.
	Quote(ctx context.Context, equipmentID int32, date time.Time) (*PriceQuote, error)
	// UpdateDynamicPricing recomputes the daily rate for every active
	// equipment item and records it in the pricing history. Returns the
	// number of items updated.
	UpdateDynamicPricing(ctx context.Context, now time.Time) (int32, error)
	// CleanupHistory deletes history rows older than the retention
	// window and returns the number removed.
	CleanupHistory(ctx context.Context, now time.Time) (int64, error)
	GenerateReport(ctx context.Context, date time.Time) (*PricingReport, error)

	CreateRule(ctx context.Context, rule *domain.PricingRule) error
	CreateSeasonalPricing(ctx context.Context, s *domain.SeasonalPricing) error
	CreateDemandPricing(ctx context.Context, d *domain.DemandPricing) error
}

type BookingService interface {
	// IsAvailable reports whether the interval is free of blocking
	// bookings, excluding excludeBookingID when non-zero.
	IsAvailable(ctx context.Context, equipmentID int32, start, end time.Time, excludeBookingID int32) (bool, error)
	// CreateBooking prices the interval, then inserts the booking with
	// the conflict check in one transaction.
	CreateBooking(ctx context.Context, userID, equipmentID int32, start, end time.Time, rt domain.RateType, notes string) (*domain.Booking, error)
	// Reschedule moves a pending or confirmed booking to new dates,
	// re-pricing and re-validating availability.
	Reschedule(ctx context.Context, userID, bookingID int32, start, end time.Time) (*domain.Booking, error)
	GetBooking(ctx context.Context, bookingID int32) (*domain.Booking, error)
	ConfirmBooking(ctx context.Context, ownerID, bookingID int32, ownerNotes string) (*domain.Booking, error)
	RejectBooking(ctx context.Context, ownerID, bookingID int32, reason string) (*domain.Booking, error)
	CancelBooking(ctx context.Context, userID, bookingID int32, reason string) (*domain.Booking, error)
	StartBooking(ctx context.Context, ownerID, bookingID int32) (*domain.Booking, error)
	CompleteBooking(ctx context.Context, ownerID, bookingID int32) (*domain.Booking, error)
	ListUserBookings(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListEquipmentBookings(ctx context.Context, equipmentID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
}

type EquipmentService interface {
	AddEquipment(ctx context.Context, eq *domain.Equipment) error
	GetEquipment(ctx context.Context, id int32) (*domain.Equipment, error)
	UpdateEquipment(ctx context.Context, eq *domain.Equipment) error
	SearchEquipment(ctx context.Context, typeID int32, city string, page, pageSize int32) ([]domain.Equipment, int32, error)
	ListEquipmentTypes(ctx context.Context) ([]domain.EquipmentType, error)
	AddEquipmentType(ctx context.Context, et *domain.EquipmentType) error
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type EmailService interface {
	SendBookingRequestNotification(ctx context.Context, ownerEmail, customerName, equipmentName, bookingNumber string) error
	SendBookingConfirmationNotification(ctx context.Context, customerEmail, equipmentName, bookingNumber, ownerNotes string) error
	SendBookingRejectionNotification(ctx context.Context, customerEmail, equipmentName, bookingNumber, reason string) error
	SendBookingCancellationNotification(ctx context.Context, ownerEmail, customerName, equipmentName, bookingNumber, reason string) error
	SendBookingCompletionNotification(ctx context.Context, customerEmail, equipmentName, bookingNumber string, totalAmount decimal.Decimal) error
}
