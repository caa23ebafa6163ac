package handler

import (
	"errors"
	"net/http"

	domainOrder "shipment-tracker/internal/domain/order"
	domainRider "shipment-tracker/internal/domain/rider"
	domainShipment "shipment-tracker/internal/domain/shipment"
	"shipment-tracker/internal/usecase/shipment"
	appErrors "shipment-tracker/pkg/errors"
	"shipment-tracker/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ShipmentHandler struct {
	service  *shipment.Service
	importer *shipment.Importer
}

func NewShipmentHandler(service *shipment.Service, importer *shipment.Importer) *ShipmentHandler {
	return &ShipmentHandler{service: service, importer: importer}
}

func (h *ShipmentHandler) RegisterRoutes(router *gin.RouterGroup) {
	shipments := router.Group("/shipments")
	{
		shipments.GET("", h.ListShipments)
		shipments.GET("/statistics", h.GetStatistics)
		shipments.POST("", h.CreateShipment)
		shipments.GET("/:id", h.GetShipment)
		shipments.PUT("/:id", h.UpdateShipment)
		shipments.DELETE("/:id", h.DeleteShipment)
		shipments.POST("/:id/status", h.UpdateStatus)
		shipments.GET("/:id/events", h.ListEvents)
		shipments.POST("/:id/events", h.AddEvent)
		shipments.POST("/:id/sync", h.SyncToOrder)
	}
}

func (h *ShipmentHandler) CreateShipment(c *gin.Context) {
	var req shipment.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		utils.ErrorResponse(c, statusFromError(err), err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Shipment created successfully", result)
}

func (h *ShipmentHandler) GetShipment(c *gin.Context) {
	shipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid shipment ID")
		return
	}

	result, err := h.service.Get(c.Request.Context(), shipmentID)
	if err != nil {
		utils.ErrorResponse(c, statusFromError(err), err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shipment retrieved successfully", result)
}

func (h *ShipmentHandler) ListShipments(c *gin.Context) {
	var filter shipment.ShipmentFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	result, err := h.service.List(c.Request.Context(), &filter)
	if err != nil {
		utils.ErrorResponse(c, statusFromError(err), err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shipments retrieved successfully", result)
}

func (h *ShipmentHandler) UpdateShipment(c *gin.Context) {
	shipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid shipment ID")
		return
	}

	var req shipment.UpdateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Update(c.Request.Context(), shipmentID, &req)
	if err != nil {
		utils.ErrorResponse(c, statusFromError(err), err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shipment updated successfully", result)
}

func (h *ShipmentHandler) DeleteShipment(c *gin.Context) {
	shipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid shipment ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), shipmentID); err != nil {
		utils.ErrorResponse(c, statusFromError(err), err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shipment deleted successfully", nil)
}

// UpdateStatus changes the shipment status through the single legitimate
// path. Set sync_to_order in the body to also push the new status back to
// the order.
func (h *ShipmentHandler) UpdateStatus(c *gin.Context) {
	shipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid shipment ID")
		return
	}

	var req shipment.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.UpdateStatus(c.Request.Context(), shipmentID, &req)
	if err != nil {
		utils.ErrorResponse(c, statusFromError(err), err.Error())
		return
	}

	if req.SyncToOrder {
		if err := h.syncShipment(c, shipmentID); err != nil {
			utils.ErrorResponse(c, statusFromError(err), err.Error())
			return
		}
	}

	utils.SuccessResponse(c, http.StatusOK, "Status updated successfully", result)
}

func (h *ShipmentHandler) ListEvents(c *gin.Context) {
	shipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid shipment ID")
		return
	}

	result, err := h.service.ListEvents(c.Request.Context(), shipmentID)
	if err != nil {
		utils.ErrorResponse(c, statusFromError(err), err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Events retrieved successfully", result)
}

func (h *ShipmentHandler) AddEvent(c *gin.Context) {
	shipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid shipment ID")
		return
	}

	var req shipment.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.AddEvent(c.Request.Context(), shipmentID, &req)
	if err != nil {
		utils.ErrorResponse(c, statusFromError(err), err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Event recorded successfully", result)
}

func (h *ShipmentHandler) SyncToOrder(c *gin.Context) {
	shipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid shipment ID")
		return
	}

	if err := h.syncShipment(c, shipmentID); err != nil {
		utils.ErrorResponse(c, statusFromError(err), err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Order synced successfully", nil)
}

func (h *ShipmentHandler) GetStatistics(c *gin.Context) {
	result, err := h.service.GetStatistics(c.Request.Context())
	if err != nil {
		utils.ErrorResponse(c, statusFromError(err), err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Statistics retrieved successfully", result)
}

func (h *ShipmentHandler) syncShipment(c *gin.Context, shipmentID uuid.UUID) error {
	detail, err := h.service.Get(c.Request.Context(), shipmentID)
	if err != nil {
		return err
	}

	s := &domainShipment.Shipment{
		ID:            detail.ID,
		OrderID:       detail.OrderID,
		OrderSource:   detail.OrderSource,
		CurrentStatus: detail.CurrentStatus,
	}

	return h.importer.SyncToOrder(c.Request.Context(), s)
}

func statusFromError(err error) int {
	var appErr *appErrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "VALIDATION_ERROR", "INVALID_STATUS", "INVALID_TRANSITION":
			return http.StatusBadRequest
		}
	}

	switch {
	case errors.Is(err, domainShipment.ErrShipmentNotFound),
		errors.Is(err, domainRider.ErrRiderNotFound),
		errors.Is(err, domainOrder.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainShipment.ErrShipmentAlreadyExists),
		errors.Is(err, domainShipment.ErrDuplicateTracking):
		return http.StatusConflict
	case errors.Is(err, domainShipment.ErrOrderNotEligible),
		errors.Is(err, domainShipment.ErrInvalidStatus),
		errors.Is(err, domainShipment.ErrMissingAddress):
		return http.StatusUnprocessableEntity
	case errors.Is(err, appErrors.ErrIntegrationInactive):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
