package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zaylabs/dryclean-api/internal/application/service"
	"github.com/zaylabs/dryclean-api/internal/domain/repository"
	"github.com/zaylabs/dryclean-api/internal/presentation/http/dto/request"
	"github.com/zaylabs/dryclean-api/internal/presentation/http/dto/response"
	"github.com/zaylabs/dryclean-api/pkg/pagination"
)

// BookingHandler handles booking-related HTTP requests
type BookingHandler struct {
	bookingService *service.BookingService
	printerService *service.PrinterService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *service.BookingService, printerService *service.PrinterService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		printerService: printerService,
	}
}

func toLines(items []request.BookingLineRequest) []service.BookingLineInput {
	lines := make([]service.BookingLineInput, 0, len(items))
	for _, item := range items {
		lines = append(lines, service.BookingLineInput{ItemID: item.ID, Units: item.Units})
	}
	return lines
}

// POS returns the data the counter screen needs
// @Summary Point of sale context
// @Tags bookings
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /bookings/pos [get]
func (h *BookingHandler) POS(c *gin.Context) {
	pos, err := h.bookingService.GetPOSContext(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "POS data retrieved successfully", response.NewPOSResponse(pos))
}

// Quote prices a booking without storing it
// @Summary Quote a booking
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body request.QuoteRequest true "Booking lines"
// @Success 200 {object} response.APIResponse
// @Failure 412 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /bookings/quote [post]
func (h *BookingHandler) Quote(c *gin.Context) {
	var req request.QuoteRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.bookingService.Quote(c.Request.Context(), &service.QuoteInput{
		Items:        toLines(req.Items),
		DeliveryType: req.DeliveryType,
		HangerUnits:  req.HangerUnits,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote calculated successfully", response.NewQuoteResponse(out))
}

// Create stores a booking and allocates its receipt number
// @Summary Create booking
// @Tags bookings
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key"
// @Param request body request.CreateBookingRequest true "Booking"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Failure 412 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "Unauthenticated")
		return
	}

	var req request.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), &service.CreateBookingInput{
		UserID:        *userID,
		CustomerPhone: req.CustomerPhone,
		Items:         toLines(req.Items),
		DeliveryType:  req.DeliveryType,
		HangerUnits:   req.HangerUnits,
		Notes:         req.Notes,
		Issues:        req.Issues,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Booking created successfully", booking)
}

// List returns the bookings visible to the caller
// @Summary List bookings
// @Tags bookings
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Receipt number or phone"
// @Param status query string false "Booking status"
// @Param delivery_type query string false "Delivery type"
// @Param start_date query string false "From date (YYYY-MM-DD)"
// @Param end_date query string false "To date (YYYY-MM-DD)"
// @Success 200 {object} response.APIResponse
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	var req request.BookingFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.BookingFilterParams{
		Pagination: &pagination.PaginationParams{Page: req.Page, PerPage: req.PerPage},
		Search:     req.Search,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}
	params.Pagination.Validate()
	if req.Status != "" {
		status := req.Status
		params.Status = &status
	}
	if req.DeliveryType != "" {
		dt := req.DeliveryType
		params.DeliveryType = &dt
	}

	result, err := h.bookingService.ListBookings(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Bookings retrieved successfully", result)
}

// Get returns a booking with its lines
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Booking retrieved successfully", booking)
}

// UpdateStatus moves a booking along its lifecycle
// @Summary Update booking status
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body request.UpdateBookingStatusRequest true "Status"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /bookings/{id}/status [put]
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req request.UpdateBookingStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	booking, err := h.bookingService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Booking status updated successfully", booking)
}

// Print sends the booking ticket to the shop printer. The receipt is
// returned even when the printer is unreachable so it can be reprinted.
func (h *BookingHandler) Print(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	receipt, err := h.printerService.PrintBooking(c.Request.Context(), id)
	if err != nil {
		if receipt != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"receipt": receipt,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Booking receipt printed successfully", gin.H{
		"receipt": receipt,
	})
}
