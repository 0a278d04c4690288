package unit

import (
	"context"
	"time"

	"agrohire-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockEquipmentRepo
type MockEquipmentRepo struct {
	mock.Mock
}

func (m *MockEquipmentRepo) Create(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentRepo) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) Update(ctx context.Context, eq *domain.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}
func (m *MockEquipmentRepo) ListActive(ctx context.Context) ([]domain.Equipment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Equipment), args.Error(1)
}
func (m *MockEquipmentRepo) Search(ctx context.Context, typeID int32, city string, page, pageSize int32) ([]domain.Equipment, int32, error) {
	args := m.Called(ctx, typeID, city, page, pageSize)
	return args.Get(0).([]domain.Equipment), args.Get(1).(int32), args.Error(2)
}

// MockEquipmentTypeRepo
type MockEquipmentTypeRepo struct {
	mock.Mock
}

func (m *MockEquipmentTypeRepo) Create(ctx context.Context, et *domain.EquipmentType) error {
	args := m.Called(ctx, et)
	return args.Error(0)
}
func (m *MockEquipmentTypeRepo) GetByID(ctx context.Context, id int32) (*domain.EquipmentType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EquipmentType), args.Error(1)
}
func (m *MockEquipmentTypeRepo) List(ctx context.Context) ([]domain.EquipmentType, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.EquipmentType), args.Error(1)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) CreateIfAvailable(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) UpdateDatesIfAvailable(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) Update(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) ListBlocking(ctx context.Context, equipmentID, excludeID int32) ([]domain.Booking, error) {
	args := m.Called(ctx, equipmentID, excludeID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) CountByTypeInWindow(ctx context.Context, typeID int32, from, to time.Time) (int32, error) {
	args := m.Called(ctx, typeID, from, to)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockBookingRepo) ListByUser(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, userID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListByEquipment(ctx context.Context, equipmentID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, equipmentID, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}

// MockPricingRuleRepo
type MockPricingRuleRepo struct {
	mock.Mock
}

func (m *MockPricingRuleRepo) Create(ctx context.Context, r *domain.PricingRule) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockPricingRuleRepo) ListCandidates(ctx context.Context, equipmentID, typeID int32) ([]domain.PricingRule, error) {
	args := m.Called(ctx, equipmentID, typeID)
	return args.Get(0).([]domain.PricingRule), args.Error(1)
}

// MockSeasonalPricingRepo
type MockSeasonalPricingRepo struct {
	mock.Mock
}

func (m *MockSeasonalPricingRepo) Create(ctx context.Context, s *domain.SeasonalPricing) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockSeasonalPricingRepo) FindForDate(ctx context.Context, typeID int32, date time.Time) (*domain.SeasonalPricing, error) {
	args := m.Called(ctx, typeID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SeasonalPricing), args.Error(1)
}

// MockDemandPricingRepo
type MockDemandPricingRepo struct {
	mock.Mock
}

func (m *MockDemandPricingRepo) Create(ctx context.Context, d *domain.DemandPricing) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockDemandPricingRepo) GetActiveByType(ctx context.Context, typeID int32) (*domain.DemandPricing, error) {
	args := m.Called(ctx, typeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DemandPricing), args.Error(1)
}

// MockPricingHistoryRepo
type MockPricingHistoryRepo struct {
	mock.Mock
}

func (m *MockPricingHistoryRepo) Upsert(ctx context.Context, h *domain.PricingHistory) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}
func (m *MockPricingHistoryRepo) GetByEquipmentAndDate(ctx context.Context, equipmentID int32, date time.Time) (*domain.PricingHistory, error) {
	args := m.Called(ctx, equipmentID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PricingHistory), args.Error(1)
}
func (m *MockPricingHistoryRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockPricingHistoryRepo) DailyAverage(ctx context.Context, date time.Time) (decimal.Decimal, int32, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(decimal.Decimal), args.Get(1).(int32), args.Error(2)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingRequestNotification(ctx context.Context, ownerEmail, customerName, equipmentName, bookingNumber string) error {
	args := m.Called(ctx, ownerEmail, customerName, equipmentName, bookingNumber)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingConfirmationNotification(ctx context.Context, customerEmail, equipmentName, bookingNumber, ownerNotes string) error {
	args := m.Called(ctx, customerEmail, equipmentName, bookingNumber, ownerNotes)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingRejectionNotification(ctx context.Context, customerEmail, equipmentName, bookingNumber, reason string) error {
	args := m.Called(ctx, customerEmail, equipmentName, bookingNumber, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingCancellationNotification(ctx context.Context, ownerEmail, customerName, equipmentName, bookingNumber, reason string) error {
	args := m.Called(ctx, ownerEmail, customerName, equipmentName, bookingNumber, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingCompletionNotification(ctx context.Context, customerEmail, equipmentName, bookingNumber string, totalAmount decimal.Decimal) error {
	args := m.Called(ctx, customerEmail, equipmentName, bookingNumber, totalAmount)
	return args.Error(0)
}
