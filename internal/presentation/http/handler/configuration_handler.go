package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/zaylabs/dryclean-api/internal/application/service"
	"github.com/zaylabs/dryclean-api/internal/presentation/http/dto/request"
	"github.com/zaylabs/dryclean-api/internal/presentation/http/dto/response"
)

// ConfigurationHandler handles the pricing configuration
type ConfigurationHandler struct {
	configService *service.ConfigurationService
}

// NewConfigurationHandler creates a new configuration handler
func NewConfigurationHandler(configService *service.ConfigurationService) *ConfigurationHandler {
	return &ConfigurationHandler{configService: configService}
}

// Get returns the pricing configuration
// @Summary Get configuration
// @Tags configuration
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /configuration [get]
func (h *ConfigurationHandler) Get(c *gin.Context) {
	cfg, err := h.configService.GetConfiguration(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Configuration retrieved successfully", cfg)
}

// Save creates or replaces the pricing configuration
// @Summary Save configuration
// @Tags configuration
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.ConfigurationRequest true "Configuration"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /configuration [put]
func (h *ConfigurationHandler) Save(c *gin.Context) {
	var req request.ConfigurationRequest
	if !bindJSON(c, &req) {
		return
	}

	cfg, err := h.configService.SaveConfiguration(c.Request.Context(), &service.ConfigurationInput{
		SalesTax:                req.SalesTax,
		NumberOfDaysForNormal:   req.NumberOfDaysForNormal,
		NumberOfDaysForUrgent:   req.NumberOfDaysForUrgent,
		ChargesForNormalUrgent:  req.ChargesForNormalUrgent,
		ChargesForSameDayUrgent: req.ChargesForSameDayUrgent,
		Hangers:                 req.Hangers,
		NTNNumber:               req.NTNNumber,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Configuration saved successfully", cfg)
}

// Delete removes the configuration; bookings are refused until it is saved again
func (h *ConfigurationHandler) Delete(c *gin.Context) {
	if err := h.configService.DeleteConfiguration(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Configuration deleted successfully", nil)
}
