package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"agrohire-backend/internal/domain"
	"agrohire-backend/internal/logger"
	"agrohire-backend/internal/repository"
	"agrohire-backend/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type bookingService struct {
	bookingRepo   repository.BookingRepository
	equipmentRepo repository.EquipmentRepository
	userRepo      repository.UserRepository
	noteRepo      repository.NotificationRepository
	pricingSvc    PricingService
	emailSvc      EmailService
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	equipmentRepo repository.EquipmentRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	pricingSvc PricingService,
	emailSvc EmailService,
) BookingService {
	return &bookingService{
		bookingRepo:   bookingRepo,
		equipmentRepo: equipmentRepo,
		userRepo:      userRepo,
		noteRepo:      noteRepo,
		pricingSvc:    pricingSvc,
		emailSvc:      emailSvc,
	}
}

// newBookingNumber builds a reference like AGH-20260831-3F7A2C.
func newBookingNumber(start time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return fmt.Sprintf("AGH-%s-%s", start.Format("20060102"), suffix)
}

func (s *bookingService) IsAvailable(ctx context.Context, equipmentID int32, start, end time.Time, excludeBookingID int32) (bool, error) {
	if !end.After(start) {
		return false, ErrInvalidTimeRange
	}

	existing, err := s.bookingRepo.ListBlocking(ctx, equipmentID, excludeBookingID)
	if err != nil {
		return false, err
	}
	for i := range existing {
		if existing[i].Blocking() && existing[i].OverlapsRange(start, end) {
			return false, nil
		}
	}
	return true, nil
}

// priceBooking resolves the effective rate for the start date and
// multiplies by the rounded-up number of billing units.
func (s *bookingService) priceBooking(ctx context.Context, equipmentID int32, start, end time.Time, rt domain.RateType) (decimal.Decimal, error) {
	units, err := utils.BillableUnits(start, end, rt)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDateRange) {
			return decimal.Zero, ErrInvalidTimeRange
		}
		return decimal.Zero, ErrInvalidRateType
	}

	res, err := s.pricingSvc.EffectivePrice(ctx, equipmentID, rt, start, &start, nil)
	if err != nil {
		return decimal.Zero, err
	}
	return res.FinalRate.Mul(decimal.NewFromInt(units)).Round(2), nil
}

func (s *bookingService) CreateBooking(ctx context.Context, userID, equipmentID int32, start, end time.Time, rt domain.RateType, notes string) (*domain.Booking, error) {
	if !end.After(start) {
		return nil, ErrInvalidTimeRange
	}

	eq, err := s.equipmentRepo.GetByID(ctx, equipmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}

	hours := utils.DurationHours(start, end)
	if rt == "" {
		rt = utils.RateTypeForDuration(hours)
	}
	if !domain.ValidRateType(rt) {
		return nil, ErrInvalidRateType
	}

	total, err := s.priceBooking(ctx, equipmentID, start, end, rt)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		BookingNumber: newBookingNumber(start),
		UserID:        userID,
		EquipmentID:   equipmentID,
		StartDate:     start,
		EndDate:       end,
		DurationHours: hours,
		RateType:      rt,
		TotalAmount:   total,
		Status:        domain.BookingStatusPending,
		CustomerNotes: notes,
	}

	if err := s.bookingRepo.CreateIfAvailable(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrBookingConflict
		}
		return nil, err
	}

	s.notifyBookingRequested(ctx, booking, eq)

	return booking, nil
}

func (s *bookingService) Reschedule(ctx context.Context, userID, bookingID int32, start, end time.Time) (*domain.Booking, error) {
	if !end.After(start) {
		return nil, ErrInvalidTimeRange
	}

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrNotBookingUser
	}
	if booking.Status != domain.BookingStatusPending && booking.Status != domain.BookingStatusConfirmed {
		return nil, ErrInvalidTransition
	}

	hours := utils.DurationHours(start, end)
	rt := booking.RateType
	if rt != domain.RateTypeHourly {
		rt = utils.RateTypeForDuration(hours)
	}

	total, err := s.priceBooking(ctx, booking.EquipmentID, start, end, rt)
	if err != nil {
		return nil, err
	}

	booking.StartDate = start
	booking.EndDate = end
	booking.DurationHours = hours
	booking.RateType = rt
	booking.TotalAmount = total

	if err := s.bookingRepo.UpdateDatesIfAvailable(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrBookingConflict
		}
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID int32) (*domain.Booking, error) {
	return s.getBooking(ctx, bookingID)
}

func (s *bookingService) getBooking(ctx context.Context, bookingID int32) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

// getWithEquipment loads the booking and verifies the caller owns the
// equipment it refers to.
func (s *bookingService) getWithEquipment(ctx context.Context, ownerID, bookingID int32) (*domain.Booking, *domain.Equipment, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	eq, err := s.equipmentRepo.GetByID(ctx, booking.EquipmentID)
	if err != nil {
		return nil, nil, err
	}
	if eq.OwnerID != ownerID {
		return nil, nil, ErrNotBookingOwner
	}
	return booking, eq, nil
}

func (s *bookingService) ConfirmBooking(ctx context.Context, ownerID, bookingID int32, ownerNotes string) (*domain.Booking, error) {
	booking, eq, err := s.getWithEquipment(ctx, ownerID, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusPending {
		return nil, ErrInvalidTransition
	}

	booking.Status = domain.BookingStatusConfirmed
	booking.OwnerNotes = ownerNotes
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	if customer, err := s.userRepo.GetByID(ctx, booking.UserID); err == nil {
		s.notify(ctx, customer.ID, "Booking Confirmed",
			fmt.Sprintf("Your booking %s for %s has been confirmed", booking.BookingNumber, eq.Name), booking)
		if err := s.emailSvc.SendBookingConfirmationNotification(ctx, customer.Email, eq.Name, booking.BookingNumber, ownerNotes); err != nil {
			logger.WarnContext(ctx, "confirmation email failed", "booking_id", booking.ID, "error", err)
		}
	}
	return booking, nil
}

func (s *bookingService) RejectBooking(ctx context.Context, ownerID, bookingID int32, reason string) (*domain.Booking, error) {
	booking, eq, err := s.getWithEquipment(ctx, ownerID, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusPending {
		return nil, ErrInvalidTransition
	}

	booking.Status = domain.BookingStatusRejected
	booking.OwnerNotes = reason
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	if customer, err := s.userRepo.GetByID(ctx, booking.UserID); err == nil {
		s.notify(ctx, customer.ID, "Booking Rejected",
			fmt.Sprintf("Your booking %s for %s was rejected", booking.BookingNumber, eq.Name), booking)
		if err := s.emailSvc.SendBookingRejectionNotification(ctx, customer.Email, eq.Name, booking.BookingNumber, reason); err != nil {
			logger.WarnContext(ctx, "rejection email failed", "booking_id", booking.ID, "error", err)
		}
	}
	return booking, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, userID, bookingID int32, reason string) (*domain.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, ErrNotBookingUser
	}
	if !booking.CanCancel() {
		return nil, ErrInvalidTransition
	}

	booking.Status = domain.BookingStatusCancelled
	if reason != "" {
		booking.CustomerNotes = reason
	}
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	eq, err := s.equipmentRepo.GetByID(ctx, booking.EquipmentID)
	if err == nil {
		if customer, err := s.userRepo.GetByID(ctx, userID); err == nil {
			s.notify(ctx, eq.OwnerID, "Booking Cancelled",
				fmt.Sprintf("%s cancelled booking %s for %s", customer.Name, booking.BookingNumber, eq.Name), booking)
			if owner, err := s.userRepo.GetByID(ctx, eq.OwnerID); err == nil {
				if err := s.emailSvc.SendBookingCancellationNotification(ctx, owner.Email, customer.Name, eq.Name, booking.BookingNumber, reason); err != nil {
					logger.WarnContext(ctx, "cancellation email failed", "booking_id", booking.ID, "error", err)
				}
			}
		}
	}
	return booking, nil
}

func (s *bookingService) StartBooking(ctx context.Context, ownerID, bookingID int32) (*domain.Booking, error) {
	booking, _, err := s.getWithEquipment(ctx, ownerID, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusConfirmed {
		return nil, ErrInvalidTransition
	}

	booking.Status = domain.BookingStatusInProgress
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *bookingService) CompleteBooking(ctx context.Context, ownerID, bookingID int32) (*domain.Booking, error) {
	booking, eq, err := s.getWithEquipment(ctx, ownerID, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != domain.BookingStatusInProgress {
		return nil, ErrInvalidTransition
	}

	booking.Status = domain.BookingStatusCompleted
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	if customer, err := s.userRepo.GetByID(ctx, booking.UserID); err == nil {
		s.notify(ctx, customer.ID, "Booking Completed",
			fmt.Sprintf("Booking %s for %s is complete", booking.BookingNumber, eq.Name), booking)
		if err := s.emailSvc.SendBookingCompletionNotification(ctx, customer.Email, eq.Name, booking.BookingNumber, booking.TotalAmount); err != nil {
			logger.WarnContext(ctx, "completion email failed", "booking_id", booking.ID, "error", err)
		}
	}
	return booking, nil
}

func (s *bookingService) ListUserBookings(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	page, pageSize = clampPage(page, pageSize)
	return s.bookingRepo.ListByUser(ctx, userID, status, page, pageSize)
}

func (s *bookingService) ListEquipmentBookings(ctx context.Context, equipmentID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	page, pageSize = clampPage(page, pageSize)
	return s.bookingRepo.ListByEquipment(ctx, equipmentID, status, page, pageSize)
}

func clampPage(page, pageSize int32) (int32, int32) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

// notifyBookingRequested tells the owner a new request arrived. Both the
// in-app notification and the email are best-effort.
func (s *bookingService) notifyBookingRequested(ctx context.Context, booking *domain.Booking, eq *domain.Equipment) {
	customer, err := s.userRepo.GetByID(ctx, booking.UserID)
	if err != nil {
		return
	}
	s.notify(ctx, eq.OwnerID, "New Booking Request",
		fmt.Sprintf("%s requested to book %s (%s)", customer.Name, eq.Name, booking.BookingNumber), booking)

	owner, err := s.userRepo.GetByID(ctx, eq.OwnerID)
	if err != nil {
		return
	}
	if err := s.emailSvc.SendBookingRequestNotification(ctx, owner.Email, customer.Name, eq.Name, booking.BookingNumber); err != nil {
		logger.WarnContext(ctx, "booking request email failed", "booking_id", booking.ID, "error", err)
	}
}

func (s *bookingService) notify(ctx context.Context, userID int32, subject, body string, booking *domain.Booking) {
	n := &domain.Notification{
		UserID:  userID,
		Subject: subject,
		Body:    body,
		Attributes: map[string]string{
			"type":       "BOOKING",
			"booking_id": fmt.Sprintf("%d", booking.ID),
			"status":     string(booking.Status),
		},
	}
	if err := s.noteRepo.Create(ctx, n); err != nil {
		logger.WarnContext(ctx, "notification create failed", "user_id", userID, "error", err)
	}
}
