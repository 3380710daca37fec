package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/zaylabs/dryclean-api/internal/application/service"
	"github.com/zaylabs/dryclean-api/internal/presentation/http/dto/request"
	"github.com/zaylabs/dryclean-api/internal/presentation/http/dto/response"
)

// ProblemHandler handles garment issue labels
type ProblemHandler struct {
	problemService *service.ProblemService
}

// NewProblemHandler creates a new problem handler
func NewProblemHandler(problemService *service.ProblemService) *ProblemHandler {
	return &ProblemHandler{problemService: problemService}
}

func (h *ProblemHandler) List(c *gin.Context) {
	problems, err := h.problemService.ListProblems(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Problems retrieved successfully", problems)
}

func (h *ProblemHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	problem, err := h.problemService.GetProblem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Problem retrieved successfully", problem)
}

func (h *ProblemHandler) Create(c *gin.Context) {
	var req request.ProblemRequest
	if !bindJSON(c, &req) {
		return
	}

	problem, err := h.problemService.CreateProblem(c.Request.Context(), req.Label)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Problem created successfully", problem)
}

func (h *ProblemHandler) Update(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req request.ProblemRequest
	if !bindJSON(c, &req) {
		return
	}

	problem, err := h.problemService.UpdateProblem(c.Request.Context(), id, req.Label)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Problem updated successfully", problem)
}

func (h *ProblemHandler) Delete(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	if err := h.problemService.DeleteProblem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Problem deleted successfully", nil)
}
