package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shipment-tracker/internal/domain/shipment"
	"shipment-tracker/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShipmentRepository struct {
	db *DB
}

func NewShipmentRepository(db *DB) *ShipmentRepository {
	return &ShipmentRepository{db: db}
}

func (r *ShipmentRepository) Create(ctx context.Context, s *shipment.Shipment) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()
	if s.CurrentStatus == "" {
		s.CurrentStatus = shipment.StatusPending
	}
	if s.Carrier == "" {
		s.Carrier = shipment.CarrierCustom
	}

	dbModel, err := toShipmentModel(s)
	if err != nil {
		return err
	}

	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if isUniqueViolation(err) {
			if strings.Contains(err.Error(), "tracking_number") {
				return shipment.ErrDuplicateTracking
			}
			return shipment.ErrShipmentAlreadyExists
		}
		return fmt.Errorf("failed to create shipment: %w", err)
	}

	s.ID = dbModel.ID
	s.CreatedAt = dbModel.CreatedAt
	s.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *ShipmentRepository) GetByID(ctx context.Context, shipmentID uuid.UUID) (*shipment.Shipment, error) {
	var dbModel models.ShipmentModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", shipmentID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shipment.ErrShipmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shipment: %w", err)
	}

	return toShipmentEntity(&dbModel)
}

func (r *ShipmentRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*shipment.Shipment, error) {
	var dbModel models.ShipmentModel
	err := r.db.DB.WithContext(ctx).
		Where("tracking_number = ?", trackingNumber).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shipment.ErrShipmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shipment by tracking number: %w", err)
	}

	return toShipmentEntity(&dbModel)
}

func (r *ShipmentRepository) GetByOrder(ctx context.Context, orderID int64, orderSource string) (*shipment.Shipment, error) {
	var dbModel models.ShipmentModel
	err := r.db.DB.WithContext(ctx).
		Where("order_id = ? AND order_source = ?", orderID, orderSource).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shipment.ErrShipmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shipment by order: %w", err)
	}

	return toShipmentEntity(&dbModel)
}

func (r *ShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	s.UpdatedAt = time.Now()

	shippingAddress, err := models.MarshalJSONB(s.ShippingAddress)
	if err != nil {
		return err
	}
	deliveryAddress, err := models.MarshalJSONB(s.DeliveryAddress)
	if err != nil {
		return err
	}
	packageInfo, err := models.MarshalJSONB(s.PackageInfo)
	if err != nil {
		return err
	}
	meta, err := models.MarshalJSONB(s.Meta)
	if err != nil {
		return err
	}

	result := r.db.DB.WithContext(ctx).
		Model(&models.ShipmentModel{}).
		Where("id = ?", s.ID).
		Updates(map[string]interface{}{
			"tracking_number":    s.TrackingNumber,
			"current_status":     string(s.CurrentStatus),
			"carrier":            string(s.Carrier),
			"carrier_service":    s.CarrierService,
			"tracking_url":       s.TrackingURL,
			"shipping_address":   shippingAddress,
			"delivery_address":   deliveryAddress,
			"package_info":       packageInfo,
			"estimated_delivery": s.EstimatedDelivery,
			"shipped_at":         s.ShippedAt,
			"delivered_at":       s.DeliveredAt,
			"weight_total":       s.WeightTotal,
			"shipping_cost":      s.ShippingCost,
			"currency":           s.Currency,
			"rider_id":           s.RiderID,
			"meta":               meta,
			"updated_at":         s.UpdatedAt,
		})

	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return shipment.ErrDuplicateTracking
		}
		return fmt.Errorf("failed to update shipment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shipment.ErrShipmentNotFound
	}

	return nil
}

func (r *ShipmentRepository) Delete(ctx context.Context, shipmentID uuid.UUID) error {
	// Events are removed by the ON DELETE CASCADE constraint.
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", shipmentID).
		Delete(&models.ShipmentModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete shipment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shipment.ErrShipmentNotFound
	}

	return nil
}

func (r *ShipmentRepository) List(ctx context.Context, filter *shipment.Filter) ([]*shipment.Shipment, int64, error) {
	var dbModels []models.ShipmentModel
	var total int64

	db := r.db.DB.WithContext(ctx).Model(&models.ShipmentModel{})

	if filter.Status != nil {
		db = db.Where("current_status = ?", string(*filter.Status))
	}
	if filter.Carrier != nil {
		db = db.Where("carrier = ?", string(*filter.Carrier))
	}
	if filter.RiderID != nil {
		db = db.Where("rider_id = ?", *filter.RiderID)
	}
	if filter.OrderSource != nil {
		db = db.Where("order_source = ?", *filter.OrderSource)
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at >= ?", filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at <= ?", filter.CreatedBefore)
	}
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		db = db.Where("tracking_number ILIKE ? OR CAST(order_id AS TEXT) LIKE ? OR carrier_service ILIKE ?",
			search, search, search)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count shipments: %w", err)
	}

	sortBy := "created_at"
	if filter.SortBy != "" {
		sortBy = filter.SortBy
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	err := db.Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Limit(pageSize).
		Offset(offset).
		Find(&dbModels).Error

	if err != nil {
		return nil, 0, fmt.Errorf("failed to list shipments: %w", err)
	}

	shipments := make([]*shipment.Shipment, len(dbModels))
	for i := range dbModels {
		entity, err := toShipmentEntity(&dbModels[i])
		if err != nil {
			return nil, 0, err
		}
		shipments[i] = entity
	}

	return shipments, total, nil
}

func (r *ShipmentRepository) TrackingNumberExists(ctx context.Context, trackingNumber string) (bool, error) {
	var count int64
	err := r.db.DB.WithContext(ctx).
		Model(&models.ShipmentModel{}).
		Where("tracking_number = ?", trackingNumber).
		Count(&count).Error

	if err != nil {
		return false, fmt.Errorf("failed to check tracking number: %w", err)
	}

	return count > 0, nil
}

func (r *ShipmentRepository) GetStatistics(ctx context.Context) (*shipment.Statistics, error) {
	stats := &shipment.Statistics{
		ByStatus: make(map[string]int),
	}

	var statusCounts []struct {
		CurrentStatus string
		Count         int
	}
	err := r.db.DB.WithContext(ctx).Raw(`
		SELECT current_status, COUNT(*) as count
		FROM shipments
		GROUP BY current_status
	`).Scan(&statusCounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get status counts: %w", err)
	}

	for _, sc := range statusCounts {
		stats.TotalShipments += sc.Count
		stats.ByStatus[sc.CurrentStatus] = sc.Count
	}

	err = r.db.DB.WithContext(ctx).Raw(`
		SELECT COUNT(*) as count
		FROM shipments
		WHERE current_status IN ('processing', 'shipped', 'in_transit', 'out_for_delivery')
	`).Scan(&stats.ActiveCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get active shipments: %w", err)
	}

	err = r.db.DB.WithContext(ctx).Raw(`
		SELECT COUNT(*) as count
		FROM shipments
		WHERE current_status = 'delivered' AND DATE(delivered_at) = CURRENT_DATE
	`).Scan(&stats.DeliveredToday).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get delivered today: %w", err)
	}

	return stats, nil
}

func (r *ShipmentRepository) CreateEvent(ctx context.Context, event *shipment.TrackingEvent) error {
	event.ID = uuid.New()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	dbModel, err := toEventModel(event)
	if err != nil {
		return err
	}

	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create tracking event: %w", err)
	}

	event.ID = dbModel.ID
	event.CreatedAt = dbModel.CreatedAt

	return nil
}

func (r *ShipmentRepository) ListEvents(ctx context.Context, shipmentID uuid.UUID) ([]*shipment.TrackingEvent, error) {
	var dbModels []models.TrackingEventModel
	err := r.db.DB.WithContext(ctx).
		Where("shipment_id = ?", shipmentID).
		Order("event_date DESC, created_at DESC").
		Find(&dbModels).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list tracking events: %w", err)
	}

	events := make([]*shipment.TrackingEvent, len(dbModels))
	for i := range dbModels {
		event, err := toEventEntity(&dbModels[i])
		if err != nil {
			return nil, err
		}
		events[i] = event
	}

	return events, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key")
}

// Helper functions to convert between domain entities and database models
func toShipmentModel(s *shipment.Shipment) (*models.ShipmentModel, error) {
	shippingAddress, err := models.MarshalJSONB(s.ShippingAddress)
	if err != nil {
		return nil, err
	}
	deliveryAddress, err := models.MarshalJSONB(s.DeliveryAddress)
	if err != nil {
		return nil, err
	}
	packageInfo, err := models.MarshalJSONB(s.PackageInfo)
	if err != nil {
		return nil, err
	}
	meta, err := models.MarshalJSONB(s.Meta)
	if err != nil {
		return nil, err
	}

	return &models.ShipmentModel{
		ID:                s.ID,
		OrderID:           s.OrderID,
		OrderSource:       s.OrderSource,
		TrackingNumber:    s.TrackingNumber,
		CurrentStatus:     string(s.CurrentStatus),
		Carrier:           string(s.Carrier),
		CarrierService:    s.CarrierService,
		TrackingURL:       s.TrackingURL,
		ShippingAddress:   shippingAddress,
		DeliveryAddress:   deliveryAddress,
		PackageInfo:       packageInfo,
		EstimatedDelivery: s.EstimatedDelivery,
		ShippedAt:         s.ShippedAt,
		DeliveredAt:       s.DeliveredAt,
		WeightTotal:       s.WeightTotal,
		ShippingCost:      s.ShippingCost,
		Currency:          s.Currency,
		RiderID:           s.RiderID,
		Meta:              meta,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}, nil
}

func toShipmentEntity(m *models.ShipmentModel) (*shipment.Shipment, error) {
	s := &shipment.Shipment{
		ID:                m.ID,
		OrderID:           m.OrderID,
		OrderSource:       m.OrderSource,
		TrackingNumber:    m.TrackingNumber,
		CurrentStatus:     shipment.Status(m.CurrentStatus),
		Carrier:           shipment.Carrier(m.Carrier),
		CarrierService:    m.CarrierService,
		TrackingURL:       m.TrackingURL,
		EstimatedDelivery: m.EstimatedDelivery,
		ShippedAt:         m.ShippedAt,
		DeliveredAt:       m.DeliveredAt,
		WeightTotal:       m.WeightTotal,
		ShippingCost:      m.ShippingCost,
		Currency:          m.Currency,
		RiderID:           m.RiderID,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}

	if len(m.ShippingAddress) > 0 {
		s.ShippingAddress = &shipment.Address{}
		if err := models.UnmarshalJSONB(m.ShippingAddress, s.ShippingAddress); err != nil {
			return nil, fmt.Errorf("failed to decode shipping address: %w", err)
		}
	}
	if len(m.DeliveryAddress) > 0 {
		s.DeliveryAddress = &shipment.Address{}
		if err := models.UnmarshalJSONB(m.DeliveryAddress, s.DeliveryAddress); err != nil {
			return nil, fmt.Errorf("failed to decode delivery address: %w", err)
		}
	}
	if len(m.PackageInfo) > 0 {
		s.PackageInfo = &shipment.PackageInfo{}
		if err := models.UnmarshalJSONB(m.PackageInfo, s.PackageInfo); err != nil {
			return nil, fmt.Errorf("failed to decode package info: %w", err)
		}
	}
	if len(m.Meta) > 0 {
		if err := models.UnmarshalJSONB(m.Meta, &s.Meta); err != nil {
			return nil, fmt.Errorf("failed to decode meta: %w", err)
		}
	}

	return s, nil
}

func toEventModel(e *shipment.TrackingEvent) (*models.TrackingEventModel, error) {
	carrierData, err := models.MarshalJSONB(e.CarrierData)
	if err != nil {
		return nil, err
	}

	return &models.TrackingEventModel{
		ID:               e.ID,
		ShipmentID:       e.ShipmentID,
		EventStatus:      string(e.EventStatus),
		EventDescription: e.EventDescription,
		EventLocation:    e.EventLocation,
		EventDate:        e.EventDate,
		CarrierData:      carrierData,
		IsMilestone:      e.IsMilestone,
		CreatedAt:        e.CreatedAt,
	}, nil
}

func toEventEntity(m *models.TrackingEventModel) (*shipment.TrackingEvent, error) {
	e := &shipment.TrackingEvent{
		ID:               m.ID,
		ShipmentID:       m.ShipmentID,
		EventStatus:      shipment.Status(m.EventStatus),
		EventDescription: m.EventDescription,
		EventLocation:    m.EventLocation,
		EventDate:        m.EventDate,
		IsMilestone:      m.IsMilestone,
		CreatedAt:        m.CreatedAt,
	}

	if len(m.CarrierData) > 0 {
		if err := models.UnmarshalJSONB(m.CarrierData, &e.CarrierData); err != nil {
			return nil, fmt.Errorf("failed to decode carrier data: %w", err)
		}
	}

	return e, nil
}
