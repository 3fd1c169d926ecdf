package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/kliniku/ledgercore/internal/core/ports/services"
	"github.com/kliniku/ledgercore/internal/dto"
	"github.com/kliniku/ledgercore/internal/middleware"
)

// reportingHandler handles HTTP requests for derived snapshots.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers routes for derived financial snapshots.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)
	rg.GET("/customers/:customerID/snapshot", h.getCustomerSnapshot)
}

func (h *reportingHandler) getCustomerSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	snapshot, err := h.reportingService.GetCustomerSnapshot(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, logger, err, "Failed to build customer snapshot")
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerSnapshotResponse(snapshot))
}
