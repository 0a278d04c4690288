package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"agrohire-backend/internal/domain"
	"agrohire-backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
)

type BookingRepositoryImpl struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepositoryImpl {
	return &BookingRepositoryImpl{db: db}
}

const bookingColumns = `id, booking_number, user_id, equipment_id, start_date, end_date,
	duration_hours, rate_type, total_amount, status, customer_notes, owner_notes,
	created_on, updated_on`

// overlapExistsQuery finds a blocking booking whose interval intersects
// the proposed one. Touching endpoints do not count as overlap, so the
// comparisons are strict.
const overlapExistsQuery = `
	SELECT EXISTS (
		SELECT 1 FROM bookings
		WHERE equipment_id = $1
		  AND status IN ('confirmed', 'in_progress')
		  AND start_date < $3
		  AND end_date > $2
		  AND id <> $4
	)`

func scanBooking(row interface{ Scan(...any) error }) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID, &b.BookingNumber, &b.UserID, &b.EquipmentID,
		&b.StartDate, &b.EndDate, &b.DurationHours, &b.RateType,
		&b.TotalAmount, &b.Status, &b.CustomerNotes, &b.OwnerNotes,
		&b.CreatedOn, &b.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateIfAvailable checks for conflicting bookings and inserts in the
// same SERIALIZABLE transaction, so two concurrent requests for the same
// interval cannot both succeed.
func (r *BookingRepositoryImpl) CreateIfAvailable(ctx context.Context, b *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to begin booking transaction: %w", err)
	}
	defer tx.Rollback()

	var conflict bool
	if err := tx.QueryRowContext(ctx, overlapExistsQuery,
		b.EquipmentID, b.StartDate, b.EndDate, int32(0),
	).Scan(&conflict); err != nil {
		return fmt.Errorf("failed to check booking availability: %w", err)
	}
	if conflict {
		return repository.ErrConflict
	}

	insert := `
		INSERT INTO bookings (booking_number, user_id, equipment_id, start_date, end_date,
			duration_hours, rate_type, total_amount, status, customer_notes, owner_notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_on, updated_on`

	err = tx.QueryRowContext(ctx, insert,
		b.BookingNumber, b.UserID, b.EquipmentID, b.StartDate, b.EndDate,
		b.DurationHours, b.RateType, b.TotalAmount, b.Status, b.CustomerNotes, b.OwnerNotes,
	).Scan(&b.ID, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit booking transaction: %w", err)
	}
	return nil
}

// UpdateDatesIfAvailable moves a booking to new dates, re-validating
// availability against every other blocking booking in the same
// SERIALIZABLE transaction. The booking's own row is excluded from the
// overlap check.
func (r *BookingRepositoryImpl) UpdateDatesIfAvailable(ctx context.Context, b *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to begin reschedule transaction: %w", err)
	}
	defer tx.Rollback()

	var conflict bool
	if err := tx.QueryRowContext(ctx, overlapExistsQuery,
		b.EquipmentID, b.StartDate, b.EndDate, b.ID,
	).Scan(&conflict); err != nil {
		return fmt.Errorf("failed to check reschedule availability: %w", err)
	}
	if conflict {
		return repository.ErrConflict
	}

	update := `
		UPDATE bookings
		SET start_date = $2, end_date = $3, duration_hours = $4, rate_type = $5,
			total_amount = $6, updated_on = NOW()
		WHERE id = $1
		RETURNING updated_on`

	err = tx.QueryRowContext(ctx, update,
		b.ID, b.StartDate, b.EndDate, b.DurationHours, b.RateType, b.TotalAmount,
	).Scan(&b.UpdatedOn)
	if err == sql.ErrNoRows {
		return repository.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update booking dates: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reschedule transaction: %w", err)
	}
	return nil
}

func (r *BookingRepositoryImpl) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking %d: %w", id, err)
	}
	return b, nil
}

func (r *BookingRepositoryImpl) Update(ctx context.Context, b *domain.Booking) error {
	query := `
		UPDATE bookings
		SET status = $2, customer_notes = $3, owner_notes = $4, updated_on = NOW()
		WHERE id = $1
		RETURNING updated_on`

	err := r.db.QueryRowContext(ctx, query, b.ID, b.Status, b.CustomerNotes, b.OwnerNotes).Scan(&b.UpdatedOn)
	if err == sql.ErrNoRows {
		return repository.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update booking %d: %w", b.ID, err)
	}
	return nil
}

func (r *BookingRepositoryImpl) ListBlocking(ctx context.Context, equipmentID, excludeID int32) ([]domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE equipment_id = $1
		  AND status IN ('confirmed', 'in_progress')
		  AND id <> $2
		ORDER BY start_date`

	rows, err := r.db.QueryContext(ctx, query, equipmentID, excludeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list blocking bookings: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *BookingRepositoryImpl) CountByTypeInWindow(ctx context.Context, typeID int32, from, to time.Time) (int32, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings b
		JOIN equipment e ON e.id = b.equipment_id
		WHERE e.equipment_type_id = $1
		  AND b.status IN ('confirmed', 'in_progress')
		  AND b.start_date >= $2
		  AND b.start_date <= $3`

	var count int32
	if err := r.db.QueryRowContext(ctx, query, typeID, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count bookings for type %d: %w", typeID, err)
	}
	return count, nil
}

func (r *BookingRepositoryImpl) ListByUser(ctx context.Context, userID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, sq.Eq{"user_id": userID}, status, page, pageSize)
}

func (r *BookingRepositoryImpl) ListByEquipment(ctx context.Context, equipmentID int32, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, sq.Eq{"equipment_id": equipmentID}, status, page, pageSize)
}

func (r *BookingRepositoryImpl) list(ctx context.Context, owner sq.Eq, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	base := psql.Select().From("bookings").Where(owner)
	if status != "" {
		base = base.Where(sq.Eq{"status": status})
	}

	countQuery, countArgs, err := base.Column("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build booking count query: %w", err)
	}
	var total int32
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	query, args, err := base.Column(bookingColumns).
		OrderBy("created_on DESC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build booking list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	items, err := collectBookings(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func collectBookings(rows *sql.Rows) ([]domain.Booking, error) {
	var items []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		items = append(items, *b)
	}
	return items, rows.Err()
}
