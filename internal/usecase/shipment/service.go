package shipment

import (
	"context"
	"errors"
	"time"

	domainRider "shipment-tracker/internal/domain/rider"
	domainShipment "shipment-tracker/internal/domain/shipment"
	"shipment-tracker/internal/logger"
	"shipment-tracker/internal/notification"
	appErrors "shipment-tracker/pkg/errors"
	"shipment-tracker/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventPublisher fans appended events out to subscribers (MQTT). Best effort.
type EventPublisher interface {
	PublishEvent(s *domainShipment.Shipment, e *domainShipment.TrackingEvent) error
}

// Service implements shipment use cases
type Service struct {
	repo      domainShipment.Repository
	riderRepo domainRider.Repository
	policy    domainShipment.TransitionPolicy
	notifier  notification.Notifier
	publisher EventPublisher
	numbers   *TrackingNumberGenerator
}

// NewService creates a new shipment service. notifier and publisher may be
// nil; those side paths are then skipped.
func NewService(
	repo domainShipment.Repository,
	riderRepo domainRider.Repository,
	policy domainShipment.TransitionPolicy,
	notifier notification.Notifier,
	publisher EventPublisher,
) *Service {
	if policy == nil {
		policy = domainShipment.PermissivePolicy{}
	}
	return &Service{
		repo:      repo,
		riderRepo: riderRepo,
		policy:    policy,
		notifier:  notifier,
		publisher: publisher,
		numbers:   NewTrackingNumberGenerator(repo),
	}
}

// Create registers a manually entered shipment. A tracking number is minted
// with the manual prefix when none is supplied.
func (s *Service) Create(ctx context.Context, req *CreateShipmentRequest) (*ShipmentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	source := req.OrderSource
	if source == "" {
		source = "manual"
	}

	if existing, err := s.repo.GetByOrder(ctx, req.OrderID, source); err == nil && existing != nil {
		return nil, domainShipment.ErrShipmentAlreadyExists
	} else if err != nil && !errors.Is(err, domainShipment.ErrShipmentNotFound) {
		return nil, err
	}

	trackingNumber := req.TrackingNumber
	if trackingNumber == nil {
		generated, err := s.numbers.Generate(ctx, NumberManual)
		if err != nil {
			return nil, err
		}
		trackingNumber = &generated
	}

	deliveryAddress := req.DeliveryAddress
	if deliveryAddress == nil && req.ShippingAddress != nil {
		snapshot := *req.ShippingAddress
		deliveryAddress = &snapshot
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	estimated := req.EstimatedDelivery
	if estimated == nil {
		e := EstimateDelivery(time.Now())
		estimated = &e
	}

	shipment := &domainShipment.Shipment{
		OrderID:           req.OrderID,
		OrderSource:       source,
		TrackingNumber:    trackingNumber,
		CurrentStatus:     domainShipment.StatusPending,
		Carrier:           domainShipment.CarrierOrCustom(req.Carrier),
		CarrierService:    req.CarrierService,
		TrackingURL:       req.TrackingURL,
		ShippingAddress:   req.ShippingAddress,
		DeliveryAddress:   deliveryAddress,
		PackageInfo:       packageInfoFromItems(req.Items),
		EstimatedDelivery: estimated,
		ShippingCost:      req.ShippingCost,
		Currency:          currency,
		RiderID:           req.RiderID,
		Meta:              req.Meta,
	}
	shipment.WeightTotal = totalWeight(shipment.PackageInfo)

	if err := s.repo.Create(ctx, shipment); err != nil {
		return nil, err
	}

	event := domainShipment.NewTrackingEvent(shipment.ID, shipment.CurrentStatus, domainShipment.EventData{
		Description: "Shipment created",
	}, time.Now())
	if err := s.repo.CreateEvent(ctx, event); err != nil {
		logger.Error("Failed to record creation event",
			zap.String("shipment_id", shipment.ID.String()),
			zap.Error(err),
		)
	}

	logger.Info("Shipment created",
		zap.String("shipment_id", shipment.ID.String()),
		zap.Int64("order_id", shipment.OrderID),
		zap.String("order_source", shipment.OrderSource),
		zap.String("event", "shipment_created"),
	)

	return ToShipmentResponse(shipment), nil
}

func (s *Service) Get(ctx context.Context, shipmentID uuid.UUID) (*ShipmentDetailResponse, error) {
	shipment, err := s.repo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	events, err := s.repo.ListEvents(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	return &ShipmentDetailResponse{
		ShipmentResponse: ToShipmentResponse(shipment),
		Events:           ToEventResponses(events),
	}, nil
}

func (s *Service) List(ctx context.Context, filter *ShipmentFilterRequest) (*ShipmentListResponse, error) {
	if err := utils.ValidateStruct(filter); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid query parameters", err)
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.PageSize > 100 {
		filter.PageSize = 100
	}

	shipments, total, err := s.repo.List(ctx, filter.ToDomainFilter())
	if err != nil {
		return nil, err
	}

	responses := make([]ShipmentResponse, len(shipments))
	for i, shipment := range shipments {
		responses[i] = *ToShipmentResponse(shipment)
	}

	totalPages := int(total) / filter.PageSize
	if int(total)%filter.PageSize > 0 {
		totalPages++
	}

	return &ShipmentListResponse{
		Shipments:  responses,
		Total:      total,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}

// Update edits descriptive fields. It never touches CurrentStatus and never
// appends events; that is UpdateStatus's job.
func (s *Service) Update(ctx context.Context, shipmentID uuid.UUID, req *UpdateShipmentRequest) (*ShipmentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	shipment, err := s.repo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	if req.TrackingNumber != nil {
		shipment.TrackingNumber = req.TrackingNumber
	}
	if req.Carrier != nil {
		shipment.Carrier = domainShipment.CarrierOrCustom(*req.Carrier)
	}
	if req.CarrierService != nil {
		shipment.CarrierService = *req.CarrierService
	}
	if req.TrackingURL != nil {
		shipment.TrackingURL = *req.TrackingURL
	}
	if req.DeliveryAddress != nil {
		shipment.DeliveryAddress = req.DeliveryAddress
	}
	if req.EstimatedDelivery != nil {
		shipment.EstimatedDelivery = req.EstimatedDelivery
	}
	if req.ShippingCost != nil {
		shipment.ShippingCost = *req.ShippingCost
	}
	if req.Currency != nil {
		shipment.Currency = *req.Currency
	}
	if req.RiderID != nil {
		if _, err := s.riderRepo.GetByID(ctx, *req.RiderID); err != nil {
			return nil, err
		}
		shipment.RiderID = req.RiderID
	}
	for key, value := range req.Meta {
		if shipment.Meta == nil {
			shipment.Meta = make(map[string]string)
		}
		shipment.Meta[key] = value
	}

	if err := s.repo.Update(ctx, shipment); err != nil {
		return nil, err
	}

	return ToShipmentResponse(shipment), nil
}

func (s *Service) Delete(ctx context.Context, shipmentID uuid.UUID) error {
	if err := s.repo.Delete(ctx, shipmentID); err != nil {
		return err
	}

	logger.Info("Shipment deleted",
		zap.String("shipment_id", shipmentID.String()),
		zap.String("event", "shipment_deleted"),
	)

	return nil
}

// UpdateStatus is the single legitimate path for changing a shipment's
// status. It applies the timestamp side effects, persists, and appends a
// tracking event only when the status actually changed.
func (s *Service) UpdateStatus(ctx context.Context, shipmentID uuid.UUID, req *UpdateStatusRequest) (*ShipmentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	newStatus := domainShipment.Status(req.Status)
	if !newStatus.Valid() {
		return nil, appErrors.NewAppError("INVALID_STATUS", "Unknown shipment status: "+req.Status, nil)
	}

	shipment, err := s.repo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.Validate(shipment.CurrentStatus, newStatus); err != nil {
		return nil, appErrors.NewAppError("INVALID_TRANSITION", err.Error(), err)
	}

	changed, err := shipment.ApplyStatus(newStatus, time.Now())
	if err != nil {
		return nil, appErrors.NewAppError("INVALID_STATUS", err.Error(), err)
	}

	if err := s.repo.Update(ctx, shipment); err != nil {
		return nil, err
	}

	if changed {
		event := domainShipment.NewTrackingEvent(shipment.ID, newStatus, domainShipment.EventData{
			Description: utils.SanitizeText(req.Description),
			Location:    sanitizeLocation(req.Location),
			Date:        req.Date,
			IsMilestone: req.IsMilestone,
		}, time.Now())

		// The status change is already persisted; an event-append failure is
		// logged, not rolled back.
		if err := s.repo.CreateEvent(ctx, event); err != nil {
			logger.Error("Failed to append tracking event",
				zap.String("shipment_id", shipment.ID.String()),
				zap.String("status", string(newStatus)),
				zap.Error(err),
			)
		} else {
			s.publish(shipment, event)
		}

		s.notify(ctx, shipment, newStatus)
	}

	logger.Info("Shipment status updated",
		zap.String("shipment_id", shipment.ID.String()),
		zap.String("status", string(newStatus)),
		zap.Bool("changed", changed),
		zap.String("event", "status_updated"),
	)

	return ToShipmentResponse(shipment), nil
}

// AddEvent appends a manual annotation to the ledger without touching the
// shipment's current status.
func (s *Service) AddEvent(ctx context.Context, shipmentID uuid.UUID, req *CreateEventRequest) (*TrackingEventResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	status := domainShipment.Status(req.Status)
	if !status.Valid() {
		return nil, appErrors.NewAppError("INVALID_STATUS", "Unknown shipment status: "+req.Status, nil)
	}

	shipment, err := s.repo.GetByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	event := domainShipment.NewTrackingEvent(shipment.ID, status, domainShipment.EventData{
		Description: utils.SanitizeText(req.Description),
		Location:    sanitizeLocation(req.Location),
		Date:        req.Date,
		IsMilestone: req.IsMilestone,
	}, time.Now())

	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return nil, err
	}

	s.publish(shipment, event)

	response := ToEventResponse(event)
	return &response, nil
}

func (s *Service) ListEvents(ctx context.Context, shipmentID uuid.UUID) ([]TrackingEventResponse, error) {
	if _, err := s.repo.GetByID(ctx, shipmentID); err != nil {
		return nil, err
	}

	events, err := s.repo.ListEvents(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	return ToEventResponses(events), nil
}

// Track serves the public tracking widget by tracking number.
func (s *Service) Track(ctx context.Context, trackingNumber string) (*TrackResponse, error) {
	shipment, err := s.repo.GetByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}

	events, err := s.repo.ListEvents(ctx, shipment.ID)
	if err != nil {
		return nil, err
	}

	response := &TrackResponse{
		TrackingNumber:    trackingNumber,
		CurrentStatus:     shipment.CurrentStatus,
		StatusLabel:       shipment.CurrentStatus.Label(),
		Carrier:           shipment.Carrier,
		EstimatedDelivery: shipment.EstimatedDelivery,
		ShippedAt:         shipment.ShippedAt,
		DeliveredAt:       shipment.DeliveredAt,
		Events:            ToEventResponses(events),
	}

	if shipment.RiderID != nil {
		if rider, err := s.riderRepo.GetByID(ctx, *shipment.RiderID); err == nil {
			response.RiderName = rider.Name
		}
	}

	return response, nil
}

func (s *Service) GetStatistics(ctx context.Context) (*StatisticsResponse, error) {
	stats, err := s.repo.GetStatistics(ctx)
	if err != nil {
		return nil, err
	}

	return &StatisticsResponse{
		TotalShipments: stats.TotalShipments,
		ByStatus:       stats.ByStatus,
		ActiveCount:    stats.ActiveCount,
		DeliveredToday: stats.DeliveredToday,
	}, nil
}

func (s *Service) publish(shipment *domainShipment.Shipment, event *domainShipment.TrackingEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishEvent(shipment, event); err != nil {
		logger.Warn("Failed to publish tracking event",
			zap.String("shipment_id", shipment.ID.String()),
			zap.Error(err),
		)
	}
}

func (s *Service) notify(ctx context.Context, shipment *domainShipment.Shipment, status domainShipment.Status) {
	if s.notifier == nil {
		return
	}

	var kind notification.Kind
	switch status {
	case domainShipment.StatusProcessing:
		kind = notification.KindProcessing
	case domainShipment.StatusDelivered:
		kind = notification.KindDelivered
	default:
		return
	}

	if err := s.notifier.Notify(ctx, shipment, kind); err != nil {
		logger.Warn("Failed to send shipment notification",
			zap.String("shipment_id", shipment.ID.String()),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
	}
}

func sanitizeLocation(location *string) *string {
	if location == nil {
		return nil
	}
	cleaned := utils.SanitizeString(*location)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

func packageInfoFromItems(items []PackageItemRequest) *domainShipment.PackageInfo {
	if len(items) == 0 {
		return nil
	}

	info := &domainShipment.PackageInfo{
		Items:      make([]domainShipment.PackageItem, len(items)),
		TotalItems: len(items),
	}
	for i, item := range items {
		info.Items[i] = domainShipment.PackageItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Weight:   item.Weight,
		}
		info.TotalQuantity += item.Quantity
	}

	return info
}

func totalWeight(info *domainShipment.PackageInfo) float64 {
	if info == nil {
		return 0
	}
	var total float64
	for _, item := range info.Items {
		total += item.Weight * float64(item.Quantity)
	}
	return total
}
