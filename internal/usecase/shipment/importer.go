package shipment

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainOrder "shipment-tracker/internal/domain/order"
	domainShipment "shipment-tracker/internal/domain/shipment"
	"shipment-tracker/internal/logger"
	appErrors "shipment-tracker/pkg/errors"

	"go.uber.org/zap"
)

const initialEventLocation = "Fulfillment Center"

// Importer turns commerce orders into shipments and keeps the two systems'
// shipping statuses in sync. All order access goes through the gateway port.
type Importer struct {
	repo    domainShipment.Repository
	gateway domainOrder.Gateway
	svc     *Service
	numbers *TrackingNumberGenerator
}

func NewImporter(repo domainShipment.Repository, gateway domainOrder.Gateway, svc *Service) *Importer {
	return &Importer{
		repo:    repo,
		gateway: gateway,
		svc:     svc,
		numbers: NewTrackingNumberGenerator(repo),
	}
}

// IsEligible reports whether the order qualifies for shipment creation and,
// when it does not, the first failed criterion.
func (im *Importer) IsEligible(o *domainOrder.Order) (bool, string) {
	if o.FulfillmentType != domainOrder.FulfillmentPhysical {
		return false, "order is not a physical fulfillment"
	}
	if o.PaymentStatus != domainOrder.PaymentPaid && o.PaymentStatus != domainOrder.PaymentPartiallyPaid {
		return false, "order is not paid"
	}
	if o.Status != domainOrder.StatusProcessing && o.Status != domainOrder.StatusCompleted {
		return false, "order is not in a fulfillable state"
	}
	if o.ShippingAddress == nil {
		return false, "order has no shipping address"
	}
	return true, ""
}

// CreateFromOrder builds and persists a shipment from an eligible order
// snapshot. The initial status comes from the order's shipping status and an
// unconditional creation event is appended to the ledger.
func (im *Importer) CreateFromOrder(ctx context.Context, o *domainOrder.Order) (*domainShipment.Shipment, error) {
	if eligible, reason := im.IsEligible(o); !eligible {
		return nil, fmt.Errorf("%w: %s", domainShipment.ErrOrderNotEligible, reason)
	}

	source := im.gateway.Source()

	if existing, err := im.repo.GetByOrder(ctx, o.ID, source); err == nil && existing != nil {
		return nil, domainShipment.ErrShipmentAlreadyExists
	} else if err != nil && !errors.Is(err, domainShipment.ErrShipmentNotFound) {
		return nil, err
	}

	trackingNumber, err := im.numbers.Generate(ctx, NumberAuto)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	estimated := EstimateDelivery(now)

	deliveryAddress := *o.ShippingAddress

	packageInfo := &domainShipment.PackageInfo{
		Items:      make([]domainShipment.PackageItem, len(o.Items)),
		TotalItems: len(o.Items),
	}
	var weightTotal float64
	for i, item := range o.Items {
		packageInfo.Items[i] = domainShipment.PackageItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Weight:   item.Weight,
		}
		packageInfo.TotalQuantity += item.Quantity
		weightTotal += item.Weight * float64(item.Quantity)
	}

	currency := o.Currency
	if currency == "" {
		currency = "USD"
	}

	meta := map[string]string{}
	if o.CustomerEmail != "" {
		meta["customer_email"] = o.CustomerEmail
	}
	if o.CustomerID != 0 {
		meta["customer_id"] = fmt.Sprintf("%d", o.CustomerID)
	}
	if o.Note != "" {
		meta["order_note"] = o.Note
	}

	shipment := &domainShipment.Shipment{
		OrderID:           o.ID,
		OrderSource:       source,
		TrackingNumber:    &trackingNumber,
		CurrentStatus:     domainShipment.FromOrderShippingStatus(o.ShippingStatus),
		Carrier:           domainShipment.CarrierCustom,
		ShippingAddress:   o.ShippingAddress,
		DeliveryAddress:   &deliveryAddress,
		PackageInfo:       packageInfo,
		EstimatedDelivery: &estimated,
		WeightTotal:       weightTotal,
		ShippingCost:      o.ShippingTotal,
		Currency:          currency,
		Meta:              meta,
	}

	if err := im.repo.Create(ctx, shipment); err != nil {
		return nil, err
	}

	location := initialEventLocation
	event := domainShipment.NewTrackingEvent(shipment.ID, shipment.CurrentStatus, domainShipment.EventData{
		Description: fmt.Sprintf("Shipment created from order #%d", o.ID),
		Location:    &location,
	}, now)
	if err := im.repo.CreateEvent(ctx, event); err != nil {
		logger.Error("Failed to record creation event",
			zap.String("shipment_id", shipment.ID.String()),
			zap.Error(err),
		)
	}

	logger.Info("Shipment created from order",
		zap.Int64("order_id", o.ID),
		zap.String("order_source", source),
		zap.String("tracking_number", trackingNumber),
		zap.String("event", "shipment_imported"),
	)

	return shipment, nil
}

// ImportOrder fetches a single order from the gateway and creates its
// shipment.
func (im *Importer) ImportOrder(ctx context.Context, orderID int64) (*ShipmentResponse, error) {
	if !im.gateway.Available() {
		return nil, appErrors.ErrIntegrationInactive
	}

	o, err := im.gateway.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	shipment, err := im.CreateFromOrder(ctx, o)
	if err != nil {
		return nil, err
	}

	return ToShipmentResponse(shipment), nil
}

// BulkImport walks the gateway's importable orders and creates shipments for
// the eligible ones, reporting a per-order outcome. Skips are expected, not
// errors.
func (im *Importer) BulkImport(ctx context.Context, limit int) (*BulkImportResponse, error) {
	if !im.gateway.Available() {
		return nil, appErrors.ErrIntegrationInactive
	}

	if limit <= 0 {
		limit = 100
	}

	orders, err := im.gateway.ListImportable(ctx, limit)
	if err != nil {
		return nil, err
	}

	response := &BulkImportResponse{Results: make([]ImportResult, 0, len(orders))}
	for _, o := range orders {
		result := ImportResult{OrderID: o.ID}

		shipment, err := im.CreateFromOrder(ctx, o)
		switch {
		case err == nil:
			result.Outcome = "created"
			id := shipment.ID.String()
			result.ShipmentID = &id
			result.TrackingNumber = shipment.TrackingNumber
			response.Created++
		case errors.Is(err, domainShipment.ErrShipmentAlreadyExists):
			result.Outcome = "skipped"
			result.Reason = "shipment already exists"
			response.Skipped++
		case errors.Is(err, domainShipment.ErrOrderNotEligible):
			result.Outcome = "skipped"
			result.Reason = err.Error()
			response.Skipped++
		default:
			return nil, err
		}

		response.Results = append(response.Results, result)
	}

	logger.Info("Bulk import finished",
		zap.Int("created", response.Created),
		zap.Int("skipped", response.Skipped),
		zap.String("event", "bulk_import"),
	)

	return response, nil
}

// SyncToOrder pushes the shipment's current status back to the commerce
// system, collapsed onto the order's shipping status vocabulary. Shipments
// from other sources are left alone.
func (im *Importer) SyncToOrder(ctx context.Context, s *domainShipment.Shipment) error {
	if !im.gateway.Available() {
		return appErrors.ErrIntegrationInactive
	}
	if s.OrderSource != im.gateway.Source() {
		return nil
	}

	shippingStatus := domainShipment.ToOrderShippingStatus(s.CurrentStatus)
	if err := im.gateway.UpdateShippingStatus(ctx, s.OrderID, shippingStatus); err != nil {
		return err
	}

	logger.Info("Order shipping status synced",
		zap.Int64("order_id", s.OrderID),
		zap.String("shipping_status", shippingStatus),
		zap.String("event", "order_synced"),
	)

	return nil
}

// SyncFromOrder pulls the order's current state and applies the derived
// shipment status through the usual update path. Terminal order states
// (cancelled, refunded, failed) win over the shipping status mapping.
func (im *Importer) SyncFromOrder(ctx context.Context, s *domainShipment.Shipment) (bool, error) {
	if !im.gateway.Available() {
		return false, appErrors.ErrIntegrationInactive
	}
	if s.OrderSource != im.gateway.Source() {
		return false, nil
	}

	o, err := im.gateway.GetOrder(ctx, s.OrderID)
	if err != nil {
		return false, err
	}

	candidate := domainShipment.FromOrderShippingStatus(o.ShippingStatus)
	if derived, ok := domainShipment.FromOrderStatus(o.Status); ok {
		if derived == domainShipment.StatusCancelled || derived == domainShipment.StatusFailed {
			candidate = derived
		}
	}

	if candidate == s.CurrentStatus {
		return false, nil
	}

	_, err = im.svc.UpdateStatus(ctx, s.ID, &UpdateStatusRequest{
		Status:      string(candidate),
		Description: fmt.Sprintf("Status synced from order #%d", s.OrderID),
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

// RefreshFromOrders sweeps non-terminal shipments belonging to this gateway
// and pulls order-side changes. Used by the background sync job.
func (im *Importer) RefreshFromOrders(ctx context.Context) (int, error) {
	if !im.gateway.Available() {
		return 0, appErrors.ErrIntegrationInactive
	}

	source := im.gateway.Source()
	updated := 0

	for page := 1; ; page++ {
		shipments, _, err := im.repo.List(ctx, &domainShipment.Filter{
			OrderSource: &source,
			Page:        page,
			PageSize:    100,
			SortBy:      "created_at",
			SortOrder:   "asc",
		})
		if err != nil {
			return updated, err
		}
		if len(shipments) == 0 {
			break
		}

		for _, s := range shipments {
			switch s.CurrentStatus {
			case domainShipment.StatusDelivered, domainShipment.StatusCancelled,
				domainShipment.StatusReturned, domainShipment.StatusFailed:
				continue
			}

			changed, err := im.SyncFromOrder(ctx, s)
			if err != nil {
				logger.Warn("Failed to sync shipment from order",
					zap.String("shipment_id", s.ID.String()),
					zap.Int64("order_id", s.OrderID),
					zap.Error(err),
				)
				continue
			}
			if changed {
				updated++
			}
		}

		if len(shipments) < 100 {
			break
		}
	}

	return updated, nil
}
