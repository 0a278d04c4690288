package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
	BookingStatusRejected   BookingStatus = "rejected"
)

// BlockingStatuses are the statuses that make a booking count for
// conflict detection and demand counting.
var BlockingStatuses = []BookingStatus{BookingStatusConfirmed, BookingStatusInProgress}

type Booking struct {
	ID            int32           `json:"id"`
	BookingNumber string          `json:"booking_number"`
	UserID        int32           `json:"user_id"`
	EquipmentID   int32           `json:"equipment_id"`
	Equipment     *Equipment      `json:"equipment,omitempty"`
	StartDate     time.Time       `json:"start_date"`
	EndDate       time.Time       `json:"end_date"`
	DurationHours int32           `json:"duration_hours"`
	RateType      RateType        `json:"rate_type"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        BookingStatus   `json:"status"`
	CustomerNotes string          `json:"customer_notes"`
	OwnerNotes    string          `json:"owner_notes"`
	CreatedOn     time.Time       `json:"created_on"`
	UpdatedOn     time.Time       `json:"updated_on"`
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Intervals that merely touch at an endpoint
// do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// OverlapsRange reports whether this booking's interval conflicts with
// the given proposed interval.
func (b *Booking) OverlapsRange(start, end time.Time) bool {
	return Overlaps(b.StartDate, b.EndDate, start, end)
}

// Blocking reports whether the booking counts for conflict detection.
func (b *Booking) Blocking() bool {
	for _, s := range BlockingStatuses {
		if b.Status == s {
			return true
		}
	}
	return false
}

// CanCancel reports whether the requester may still cancel the booking.
func (b *Booking) CanCancel() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}
