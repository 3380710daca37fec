package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zaylabs/dryclean-api/internal/application/service"
	"github.com/zaylabs/dryclean-api/internal/presentation/http/dto/request"
	"github.com/zaylabs/dryclean-api/internal/presentation/http/dto/response"
)

// BranchHandler handles branch HTTP requests
type BranchHandler struct {
	branchService *service.BranchService
}

// NewBranchHandler creates a new branch handler
func NewBranchHandler(branchService *service.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

func branchInput(req *request.BranchRequest) *service.BranchInput {
	return &service.BranchInput{
		BranchName: req.BranchName,
		BranchCode: req.BranchCode,
		Address:    req.Address,
		Mobile:     req.Mobile,
	}
}

// List handles listing branches
// @Summary List branches
// @Tags branches
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Name or code"
// @Success 200 {object} response.APIResponse
// @Router /branches [get]
func (h *BranchHandler) List(c *gin.Context) {
	result, err := h.branchService.ListBranches(c.Request.Context(), pageParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Branches retrieved successfully", result)
}

func (h *BranchHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	branch, err := h.branchService.GetBranch(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branch retrieved successfully", branch)
}

func (h *BranchHandler) Create(c *gin.Context) {
	var req request.BranchRequest
	if !bindJSON(c, &req) {
		return
	}

	branch, err := h.branchService.CreateBranch(c.Request.Context(), branchInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Branch created successfully", branch)
}

func (h *BranchHandler) Update(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req request.BranchRequest
	if !bindJSON(c, &req) {
		return
	}

	branch, err := h.branchService.UpdateBranch(c.Request.Context(), id, branchInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branch updated successfully", branch)
}

func (h *BranchHandler) Delete(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	if err := h.branchService.DeleteBranch(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Branch deleted successfully", nil)
}
