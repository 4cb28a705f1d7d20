package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shegacafe/cafe-app/middlewares"
	"github.com/shegacafe/cafe-app/services"
	"github.com/shegacafe/cafe-app/utils"
)

type ReportController struct {
	Reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{Reports: reports}
}

func (rc *ReportController) SalesReport(c *gin.Context) {
	report, err := rc.Reports.Sales(c.Request.Context(), middlewares.GetCaller(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Sales report", report)
}

func (rc *ReportController) UnpaidReport(c *gin.Context) {
	report, err := rc.Reports.Unpaid(c.Request.Context(), middlewares.GetCaller(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Unpaid orders report", report)
}

// SalesReportPDF -> GET /admin/reports/sales.pdf
func (rc *ReportController) SalesReportPDF(c *gin.Context) {
	report, err := rc.Reports.Sales(c.Request.Context(), middlewares.GetCaller(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := services.WriteSalesPDF(&buf, *report); err != nil {
		respondServiceError(c, err)
		return
	}
	filename := fmt.Sprintf("sales-report-%s.pdf", report.GeneratedAt.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (rc *ReportController) Dashboard(c *gin.Context) {
	d, err := rc.Reports.Dashboard(c.Request.Context(), middlewares.GetCaller(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dashboard", d)
}
