package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/zaylabs/dryclean-api/internal/application/service"
	"github.com/zaylabs/dryclean-api/internal/presentation/http/dto/request"
	"github.com/zaylabs/dryclean-api/internal/presentation/http/dto/response"
)

// ReportHandler handles sales reports
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Bookings summarises bookings per delivery type
// @Summary Booking report
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Param start_date query string false "From date (YYYY-MM-DD), defaults to the start of the month"
// @Param end_date query string false "To date (YYYY-MM-DD), defaults to the end of the month"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /reports/bookings [get]
func (h *ReportHandler) Bookings(c *gin.Context) {
	var req request.ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	report, err := h.reportService.BookingReport(c.Request.Context(), &service.BookingReportInput{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Report generated successfully", response.NewReportResponse(report))
}
