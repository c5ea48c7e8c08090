package handler

import (
	appcrm "github.com/crm/backend/internal/application/crm"
	"github.com/gin-gonic/gin"
)

// ReportHandler exposes the aggregate business report over HTTP
type ReportHandler struct {
	BaseHandler
	service *appcrm.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *appcrm.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/crm/report", h.Report)
}

// Report handles GET /crm/report
func (h *ReportHandler) Report(c *gin.Context) {
	report, err := h.service.Generate(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}
