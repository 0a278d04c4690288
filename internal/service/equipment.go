package service

import (
	"context"
	"errors"
	"net/http"

	"agrohire-backend/internal/apperror"
	"agrohire-backend/internal/domain"
	"agrohire-backend/internal/repository"
)

type equipmentService struct {
	equipmentRepo repository.EquipmentRepository
	typeRepo      repository.EquipmentTypeRepository
}

func NewEquipmentService(equipmentRepo repository.EquipmentRepository, typeRepo repository.EquipmentTypeRepository) EquipmentService {
	return &equipmentService{equipmentRepo: equipmentRepo, typeRepo: typeRepo}
}

func (s *equipmentService) AddEquipment(ctx context.Context, eq *domain.Equipment) error {
	if err := eq.Validate(); err != nil {
		return apperror.Wrap(err, http.StatusBadRequest, err.Error())
	}
	if eq.Status == "" {
		eq.Status = domain.EquipmentStatusAvailable
	}
	eq.IsActive = true
	return s.equipmentRepo.Create(ctx, eq)
}

// GetEquipment returns the equipment with its type populated.
func (s *equipmentService) GetEquipment(ctx context.Context, id int32) (*domain.Equipment, error) {
	eq, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}
	if eq.EquipmentTypeID != 0 {
		if et, err := s.typeRepo.GetByID(ctx, eq.EquipmentTypeID); err == nil {
			eq.EquipmentType = et
		}
	}
	return eq, nil
}

func (s *equipmentService) UpdateEquipment(ctx context.Context, eq *domain.Equipment) error {
	if err := eq.Validate(); err != nil {
		return apperror.Wrap(err, http.StatusBadRequest, err.Error())
	}
	err := s.equipmentRepo.Update(ctx, eq)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrEquipmentNotFound
	}
	return err
}

func (s *equipmentService) SearchEquipment(ctx context.Context, typeID int32, city string, page, pageSize int32) ([]domain.Equipment, int32, error) {
	page, pageSize = clampPage(page, pageSize)
	return s.equipmentRepo.Search(ctx, typeID, city, page, pageSize)
}

func (s *equipmentService) ListEquipmentTypes(ctx context.Context) ([]domain.EquipmentType, error) {
	return s.typeRepo.List(ctx)
}

func (s *equipmentService) AddEquipmentType(ctx context.Context, et *domain.EquipmentType) error {
	if !et.BaseDailyRate.IsPositive() || !et.BaseHourlyRate.IsPositive() {
		return apperror.Wrap(domain.ErrInvalidRate, http.StatusBadRequest, domain.ErrInvalidRate.Error())
	}
	return s.typeRepo.Create(ctx, et)
}
