package handler

import (
	"net/http"
	"strconv"

	"shipment-tracker/internal/usecase/shipment"
	"shipment-tracker/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ImportHandler exposes order import endpoints backed by the commerce
// gateway.
type ImportHandler struct {
	importer *shipment.Importer
}

func NewImportHandler(importer *shipment.Importer) *ImportHandler {
	return &ImportHandler{importer: importer}
}

func (h *ImportHandler) RegisterRoutes(router *gin.RouterGroup) {
	imports := router.Group("/import")
	{
		imports.POST("/orders", h.BulkImport)
		imports.POST("/orders/:orderID", h.ImportOrder)
	}
}

func (h *ImportHandler) ImportOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("orderID"), 10, 64)
	if err != nil || orderID <= 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid order ID")
		return
	}

	result, err := h.importer.ImportOrder(c.Request.Context(), orderID)
	if err != nil {
		utils.ErrorResponse(c, statusFromError(err), err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Order imported successfully", result)
}

func (h *ImportHandler) BulkImport(c *gin.Context) {
	var req shipment.BulkImportRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.importer.BulkImport(c.Request.Context(), req.Limit)
	if err != nil {
		utils.ErrorResponse(c, statusFromError(err), err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Import finished", result)
}
