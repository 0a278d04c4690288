package postgres

import (
	"database/sql"

	"agrohire-backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
)

// psql builds queries with Postgres positional placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Store bundles every Postgres-backed repository behind one handle.
type Store struct {
	db *sql.DB

	EquipmentTypes  repository.EquipmentTypeRepository
	Equipment       repository.EquipmentRepository
	Bookings        repository.BookingRepository
	PricingRules    repository.PricingRuleRepository
	SeasonalPricing repository.SeasonalPricingRepository
	DemandPricing   repository.DemandPricingRepository
	PricingHistory  repository.PricingHistoryRepository
	Notifications   repository.NotificationRepository
	Users           repository.UserRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:              db,
		EquipmentTypes:  NewEquipmentTypeRepository(db),
		Equipment:       NewEquipmentRepository(db),
		Bookings:        NewBookingRepository(db),
		PricingRules:    NewPricingRuleRepository(db),
		SeasonalPricing: NewSeasonalPricingRepository(db),
		DemandPricing:   NewDemandPricingRepository(db),
		PricingHistory:  NewPricingHistoryRepository(db),
		Notifications:   NewNotificationRepository(db),
		Users:           NewUserRepository(db),
	}
}

func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Close() error {
	return s.db.Close()
}
