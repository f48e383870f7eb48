// File: controllers/report_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sports-scheduler/services"
)

// ReportController serves the admin activity report.
type ReportController struct {
	Reports *services.ReportService
}

// NewReportController creates a ReportController.
func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{Reports: reports}
}

// Summary returns session counts over an optional ?from=&to= date range.
// Admin only, enforced by middleware.
func (rc *ReportController) Summary(c *gin.Context) {
	report, err := rc.Reports.Summary(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
