package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves the dashboard and the yearly sales report
type ReportHandler struct {
	BaseHandler
	dashboard DashboardService
	reports   ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(dashboard DashboardService, reports ReportService) *ReportHandler {
	return &ReportHandler{dashboard: dashboard, reports: reports}
}

// yearParam parses the :year path parameter. Range checks are left to the
// services.
func (h *ReportHandler) yearParam(c *gin.Context) (int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		h.BadRequest(c, "Tahun tidak valid")
		return 0, false
	}
	return year, true
}

// Dashboard godoc
// @ID           getDashboard
// @Summary      Yearly dashboard
// @Description  Revenue, spending, sale count and average sale for each month of the year
// @Tags         reports
// @Produce      json
// @Param        year path int true "Year" example(2026)
// @Success      200 {object} APIResponse[[]report.MonthlySummaryResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /dashboard/{year} [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	year, ok := h.yearParam(c)
	if !ok {
		return
	}
	months, err := h.dashboard.Yearly(c.Request.Context(), year)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, months)
}

// SalesWorkbook godoc
// @ID           downloadSalesReport
// @Summary      Download the sales report
// @Description  XLSX workbook with the monthly summary and every sale of the year
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        year path int true "Year" example(2026)
// @Success      200 {file} binary
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /reports/sales/{year} [get]
func (h *ReportHandler) SalesWorkbook(c *gin.Context) {
	year, ok := h.yearParam(c)
	if !ok {
		return
	}
	wb, err := h.reports.SalesWorkbook(c.Request.Context(), year)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+wb.Filename+`"`)
	c.Data(http.StatusOK, wb.ContentType, wb.Data)
}

// ArchiveSalesReport godoc
// @ID           archiveSalesReport
// @Summary      Archive the sales report
// @Description  Upload the yearly workbook to object storage and return a time-limited download link
// @Tags         reports
// @Produce      json
// @Param        year path int true "Year" example(2026)
// @Success      201 {object} APIResponse[report.ArchiveResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /reports/sales/{year}/archive [post]
func (h *ReportHandler) ArchiveSalesReport(c *gin.Context) {
	year, ok := h.yearParam(c)
	if !ok {
		return
	}
	resp, err := h.reports.ArchiveSalesReport(c.Request.Context(), year)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}
