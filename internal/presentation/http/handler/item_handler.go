package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zaylabs/dryclean-api/internal/application/service"
	"github.com/zaylabs/dryclean-api/internal/domain/enum"
	"github.com/zaylabs/dryclean-api/internal/domain/repository"
	"github.com/zaylabs/dryclean-api/internal/presentation/http/dto/request"
	"github.com/zaylabs/dryclean-api/internal/presentation/http/dto/response"
)

// ItemHandler handles catalog item HTTP requests
type ItemHandler struct {
	itemService *service.ItemService
}

// NewItemHandler creates a new item handler
func NewItemHandler(itemService *service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

func dateOrNil(d *request.Date) *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// List handles listing catalog items
// @Summary List items
// @Tags items
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Code or name"
// @Param status query string false "Active or Disable"
// @Success 200 {object} response.APIResponse
// @Router /items [get]
func (h *ItemHandler) List(c *gin.Context) {
	params := &repository.ItemFilterParams{
		Pagination: pageParams(c),
		Search:     c.Query("search"),
	}
	if s := c.Query("status"); s != "" {
		status := enum.ItemStatus(s)
		params.Status = &status
	}

	result, err := h.itemService.ListItems(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Items retrieved successfully", result)
}

// Get handles getting a single item
func (h *ItemHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	item, err := h.itemService.GetItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item retrieved successfully", item)
}

// Create handles creating a catalog item
// @Summary Create item
// @Tags items
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateItemRequest true "Item"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /items [post]
func (h *ItemHandler) Create(c *gin.Context) {
	var req request.CreateItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), &service.CreateItemInput{
		Code:          req.Code,
		Name:          req.Name,
		UnitsPerPiece: req.UnitsPerPiece,
		UnitPrice:     req.UnitPrice,
		Status:        req.Status,
		Image:         req.Image,
		DateAdded:     dateOrNil(req.DateAdded),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Item created successfully", item)
}

// Update handles a partial item update
func (h *ItemHandler) Update(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req request.UpdateItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.itemService.UpdateItem(c.Request.Context(), &service.UpdateItemInput{
		ID:            id,
		Code:          req.Code,
		Name:          req.Name,
		UnitsPerPiece: req.UnitsPerPiece,
		UnitPrice:     req.UnitPrice,
		Status:        req.Status,
		Image:         req.Image,
		DateAdded:     dateOrNil(req.DateAdded),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item updated successfully", item)
}

// Delete handles deleting an item
func (h *ItemHandler) Delete(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	if err := h.itemService.DeleteItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item deleted successfully", nil)
}
