package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shipment-tracker/internal/domain/rider"
	"shipment-tracker/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RiderRepository struct {
	db *DB
}

func NewRiderRepository(db *DB) *RiderRepository {
	return &RiderRepository{db: db}
}

func (r *RiderRepository) Create(ctx context.Context, rd *rider.Rider) error {
	rd.ID = uuid.New()
	rd.CreatedAt = time.Now()
	rd.UpdatedAt = time.Now()

	dbModel := toRiderModel(rd)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create rider: %w", err)
	}

	rd.ID = dbModel.ID

	return nil
}

func (r *RiderRepository) GetByID(ctx context.Context, riderID uuid.UUID) (*rider.Rider, error) {
	var dbModel models.RiderModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", riderID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, rider.ErrRiderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get rider: %w", err)
	}

	return toRiderEntity(&dbModel), nil
}

func (r *RiderRepository) Update(ctx context.Context, rd *rider.Rider) error {
	rd.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.RiderModel{}).
		Where("id = ?", rd.ID).
		Updates(map[string]interface{}{
			"name":         rd.Name,
			"phone":        rd.Phone,
			"email":        rd.Email,
			"vehicle_type": rd.VehicleType,
			"vehicle_reg":  rd.VehicleReg,
			"is_active":    rd.IsActive,
			"updated_at":   rd.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update rider: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return rider.ErrRiderNotFound
	}

	return nil
}

func (r *RiderRepository) Delete(ctx context.Context, riderID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", riderID).
		Delete(&models.RiderModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete rider: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return rider.ErrRiderNotFound
	}

	return nil
}

func (r *RiderRepository) List(ctx context.Context, activeOnly bool, page, pageSize int) ([]*rider.Rider, int64, error) {
	var dbModels []models.RiderModel
	var total int64

	db := r.db.DB.WithContext(ctx).Model(&models.RiderModel{})
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count riders: %w", err)
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	err := db.Order("name ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&dbModels).Error

	if err != nil {
		return nil, 0, fmt.Errorf("failed to list riders: %w", err)
	}

	riders := make([]*rider.Rider, len(dbModels))
	for i := range dbModels {
		riders[i] = toRiderEntity(&dbModels[i])
	}

	return riders, total, nil
}

func toRiderModel(rd *rider.Rider) *models.RiderModel {
	return &models.RiderModel{
		ID:          rd.ID,
		Name:        rd.Name,
		Phone:       rd.Phone,
		Email:       rd.Email,
		VehicleType: rd.VehicleType,
		VehicleReg:  rd.VehicleReg,
		IsActive:    rd.IsActive,
		CreatedAt:   rd.CreatedAt,
		UpdatedAt:   rd.UpdatedAt,
	}
}

func toRiderEntity(m *models.RiderModel) *rider.Rider {
	return &rider.Rider{
		ID:          m.ID,
		Name:        m.Name,
		Phone:       m.Phone,
		Email:       m.Email,
		VehicleType: m.VehicleType,
		VehicleReg:  m.VehicleReg,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
