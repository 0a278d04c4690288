package repository

import (
	"context"
	"errors"
	"time"

	"agrohire-backend/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when a referenced row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a booking insert or reschedule loses
	// the overlap check inside its transaction.
	ErrConflict = errors.New("booking interval conflicts with an existing booking")
)

type EquipmentTypeRepository interface {
	Create(ctx context.Context, et *domain.EquipmentType) error
	GetByID(ctx context.Context, id int32) (*domain.EquipmentType, error)
	List(ctx context.Context) ([]domain.EquipmentType, error)
}

type EquipmentRepository interface {
	Create(ctx context.Context, eq *domain.Equipment) error
	GetByID(ctx context.Context, id int32) (*domain.Equipment, error)
	Update(ctx context.Context, eq *domain.Equipment) error
	ListActive(ctx context.Context) ([]domain.Equipment, error)
	Search(ctx context.Context, typeID int32, city string, page, pageSize int32) ([]domain.Equipment, int32, error)
}

type BookingRepository interface {
	// CreateIfAvailable runs the overlap check and the insert inside one
	// SERIALIZABLE transaction and returns ErrConflict when a blocking
	// booking overlaps the requested interval.
	CreateIfAvailable(ctx context.Context, b *domain.Booking) error
	// UpdateDatesIfAvailable re-validates availability for new dates,
	// excluding the booking's own row, inside one SERIALIZABLE
	// transaction.
	UpdateDatesIfAvailable(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
	// ListBlocking returns the bookings that count for conflict
	// detection (confirmed or in progress) for one equipment item,
	// excluding excludeID when non-zero.
	ListBlocking(ctx context.Context, equipmentID, excludeID int32) ([]domain.Booking, error)
	// CountByTypeInWindow counts blocking bookings for equipment of the
	// given type whose start date falls within [from, to].
	CountByTypeInWindow(ctx context.Context, typeID int32, from, to time.Time) (int32, error)
	ListByUser(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListByEquipment(ctx context.Context, equipmentID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error)
}

type PricingRuleRepository interface {
	Create(ctx context.Context, r *domain.PricingRule) error
	// ListCandidates returns active rules scoped to the equipment, its
	// type, or globally, ordered by priority descending then newest
	// first (the deterministic tie-break).
	ListCandidates(ctx context.Context, equipmentID, typeID int32) ([]domain.PricingRule, error)
}

type SeasonalPricingRepository interface {
	Create(ctx context.Context, s *domain.SeasonalPricing) error
	// FindForDate returns the seasonal row in force for the type and
	// date (inclusive boundaries, newest first on overlap), or nil when
	// no row matches. Absence is not an error.
	FindForDate(ctx context.Context, typeID int32, date time.Time) (*domain.SeasonalPricing, error)
}

type DemandPricingRepository interface {
	Create(ctx context.Context, d *domain.DemandPricing) error
	// GetActiveByType returns the active demand config for the type, or
	// nil when none is configured.
	GetActiveByType(ctx context.Context, typeID int32) (*domain.DemandPricing, error)
}

type PricingHistoryRepository interface {
	// Upsert writes the daily ledger row keyed (equipment, effective
	// date), overwriting any existing row for that key.
	Upsert(ctx context.Context, h *domain.PricingHistory) error
	GetByEquipmentAndDate(ctx context.Context, equipmentID int32, date time.Time) (*domain.PricingHistory, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	// DailyAverage returns the mean multiplier and row count recorded
	// for the date, for reporting.
	DailyAverage(ctx context.Context, date time.Time) (decimal.Decimal, int32, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.User, error)
}
