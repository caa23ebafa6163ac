package handler

import (
	"net/http"
	"strings"

	"shipment-tracker/internal/usecase/shipment"
	"shipment-tracker/pkg/utils"

	"github.com/gin-gonic/gin"
)

// TrackingHandler serves the unauthenticated tracking lookup used by the
// storefront widget.
type TrackingHandler struct {
	service *shipment.Service
}

func NewTrackingHandler(service *shipment.Service) *TrackingHandler {
	return &TrackingHandler{service: service}
}

func (h *TrackingHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/track/:trackingNumber", h.Track)
}

func (h *TrackingHandler) Track(c *gin.Context) {
	trackingNumber := strings.ToUpper(strings.TrimSpace(c.Param("trackingNumber")))
	if trackingNumber == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Tracking number is required")
		return
	}

	result, err := h.service.Track(c.Request.Context(), trackingNumber)
	if err != nil {
		utils.ErrorResponse(c, statusFromError(err), err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Shipment retrieved successfully", result)
}
