package handler

import (
	"net/http"

	"shipment-tracker/internal/usecase/rider"
	"shipment-tracker/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RiderHandler struct {
	service *rider.Service
}

func NewRiderHandler(service *rider.Service) *RiderHandler {
	return &RiderHandler{service: service}
}

func (h *RiderHandler) RegisterRoutes(router *gin.RouterGroup) {
	riders := router.Group("/riders")
	{
		riders.GET("", h.ListRiders)
		riders.POST("", h.CreateRider)
		riders.GET("/:id", h.GetRider)
		riders.PUT("/:id", h.UpdateRider)
		riders.DELETE("/:id", h.DeleteRider)
	}
}

func (h *RiderHandler) CreateRider(c *gin.Context) {
	var req rider.CreateRiderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		utils.ErrorResponse(c, statusFromError(err), err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Rider created successfully", result)
}

func (h *RiderHandler) GetRider(c *gin.Context) {
	riderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid rider ID")
		return
	}

	result, err := h.service.Get(c.Request.Context(), riderID)
	if err != nil {
		utils.ErrorResponse(c, statusFromError(err), err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Rider retrieved successfully", result)
}

func (h *RiderHandler) ListRiders(c *gin.Context) {
	var req rider.RiderFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	result, err := h.service.List(c.Request.Context(), &req)
	if err != nil {
		utils.ErrorResponse(c, statusFromError(err), err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Riders retrieved successfully", result)
}

func (h *RiderHandler) UpdateRider(c *gin.Context) {
	riderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid rider ID")
		return
	}

	var req rider.UpdateRiderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Update(c.Request.Context(), riderID, &req)
	if err != nil {
		utils.ErrorResponse(c, statusFromError(err), err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Rider updated successfully", result)
}

func (h *RiderHandler) DeleteRider(c *gin.Context) {
	riderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid rider ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), riderID); err != nil {
		utils.ErrorResponse(c, statusFromError(err), err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Rider deleted successfully", nil)
}
