package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"agrohire-backend/internal/domain"
	"agrohire-backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
)

type EquipmentTypeRepositoryImpl struct {
	db *sql.DB
}

func NewEquipmentTypeRepository(db *sql.DB) *EquipmentTypeRepositoryImpl {
	return &EquipmentTypeRepositoryImpl{db: db}
}

func (r *EquipmentTypeRepositoryImpl) Create(ctx context.Context, et *domain.EquipmentType) error {
	query := `
		INSERT INTO equipment_types (name, description, category, base_daily_rate, base_hourly_rate)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_on, updated_on`

	err := r.db.QueryRowContext(ctx, query,
		et.Name, et.Description, et.Category, et.BaseDailyRate, et.BaseHourlyRate,
	).Scan(&et.ID, &et.CreatedOn, &et.UpdatedOn)
	if err != nil {
		return fmt.Errorf("failed to create equipment type: %w", err)
	}
	return nil
}

func (r *EquipmentTypeRepositoryImpl) GetByID(ctx context.Context, id int32) (*domain.EquipmentType, error) {
	query := `
		SELECT id, name, description, category, base_daily_rate, base_hourly_rate, created_on, updated_on
		FROM equipment_types
		WHERE id = $1`

	var et domain.EquipmentType
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&et.ID, &et.Name, &et.Description, &et.Category,
		&et.BaseDailyRate, &et.BaseHourlyRate, &et.CreatedOn, &et.UpdatedOn,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get equipment type %d: %w", id, err)
	}
	return &et, nil
}

func (r *EquipmentTypeRepositoryImpl) List(ctx context.Context) ([]domain.EquipmentType, error) {
	query := `
		SELECT id, name, description, category, base_daily_rate, base_hourly_rate, created_on, updated_on
		FROM equipment_types
		ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment types: %w", err)
	}
	defer rows.Close()

	var types []domain.EquipmentType
	for rows.Next() {
		var et domain.EquipmentType
		if err := rows.Scan(
			&et.ID, &et.Name, &et.Description, &et.Category,
			&et.BaseDailyRate, &et.BaseHourlyRate, &et.CreatedOn, &et.UpdatedOn,
		); err != nil {
			return nil, fmt.Errorf("failed to scan equipment type: %w", err)
		}
		types = append(types, et)
	}
	return types, rows.Err()
}

type EquipmentRepositoryImpl struct {
	db *sql.DB
}

func NewEquipmentRepository(db *sql.DB) *EquipmentRepositoryImpl {
	return &EquipmentRepositoryImpl{db: db}
}

const equipmentColumns = `id, name, equipment_type_id, owner_id, description, city, country, status,
	daily_rate, hourly_rate, weekly_rate, monthly_rate, is_active, created_on, updated_on`

func scanEquipment(row interface{ Scan(...any) error }) (*domain.Equipment, error) {
	var eq domain.Equipment
	var weekly, monthly decimal.NullDecimal
	err := row.Scan(
		&eq.ID, &eq.Name, &eq.EquipmentTypeID, &eq.OwnerID, &eq.Description,
		&eq.City, &eq.Country, &eq.Status,
		&eq.DailyRate, &eq.HourlyRate, &weekly, &monthly,
		&eq.IsActive, &eq.CreatedOn, &eq.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	if weekly.Valid {
		eq.WeeklyRate = &weekly.Decimal
	}
	if monthly.Valid {
		eq.MonthlyRate = &monthly.Decimal
	}
	return &eq, nil
}

func (r *EquipmentRepositoryImpl) Create(ctx context.Context, eq *domain.Equipment) error {
	query := `
		INSERT INTO equipment (name, equipment_type_id, owner_id, description, city, country, status,
			daily_rate, hourly_rate, weekly_rate, monthly_rate, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_on, updated_on`

	err := r.db.QueryRowContext(ctx, query,
		eq.Name, eq.EquipmentTypeID, eq.OwnerID, eq.Description, eq.City, eq.Country, eq.Status,
		eq.DailyRate, eq.HourlyRate, nullDecimal(eq.WeeklyRate), nullDecimal(eq.MonthlyRate), eq.IsActive,
	).Scan(&eq.ID, &eq.CreatedOn, &eq.UpdatedOn)
	if err != nil {
		return fmt.Errorf("failed to create equipment: %w", err)
	}
	return nil
}

func (r *EquipmentRepositoryImpl) GetByID(ctx context.Context, id int32) (*domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1`

	eq, err := scanEquipment(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get equipment %d: %w", id, err)
	}
	return eq, nil
}

func (r *EquipmentRepositoryImpl) Update(ctx context.Context, eq *domain.Equipment) error {
	query := `
		UPDATE equipment
		SET name = $2, equipment_type_id = $3, description = $4, city = $5, country = $6,
			status = $7, daily_rate = $8, hourly_rate = $9, weekly_rate = $10, monthly_rate = $11,
			is_active = $12, updated_on = NOW()
		WHERE id = $1
		RETURNING updated_on`

	err := r.db.QueryRowContext(ctx, query,
		eq.ID, eq.Name, eq.EquipmentTypeID, eq.Description, eq.City, eq.Country,
		eq.Status, eq.DailyRate, eq.HourlyRate, nullDecimal(eq.WeeklyRate), nullDecimal(eq.MonthlyRate),
		eq.IsActive,
	).Scan(&eq.UpdatedOn)
	if err == sql.ErrNoRows {
		return repository.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update equipment %d: %w", eq.ID, err)
	}
	return nil
}

func (r *EquipmentRepositoryImpl) ListActive(ctx context.Context) ([]domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE is_active = TRUE ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active equipment: %w", err)
	}
	defer rows.Close()

	return collectEquipment(rows)
}

// Search filters by type and city, both optional, newest first.
func (r *EquipmentRepositoryImpl) Search(ctx context.Context, typeID int32, city string, page, pageSize int32) ([]domain.Equipment, int32, error) {
	base := psql.Select().From("equipment").Where(sq.Eq{"is_active": true})
	if typeID > 0 {
		base = base.Where(sq.Eq{"equipment_type_id": typeID})
	}
	if city != "" {
		base = base.Where("LOWER(city) = LOWER(?)", city)
	}

	countQuery, countArgs, err := base.Column("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build equipment count query: %w", err)
	}
	var total int32
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count equipment: %w", err)
	}

	query, args, err := base.Column(equipmentColumns).
		OrderBy("created_on DESC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build equipment search query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search equipment: %w", err)
	}
	defer rows.Close()

	items, err := collectEquipment(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func collectEquipment(rows *sql.Rows) ([]domain.Equipment, error) {
	var items []domain.Equipment
	for rows.Next() {
		eq, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan equipment: %w", err)
		}
		items = append(items, *eq)
	}
	return items, rows.Err()
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
