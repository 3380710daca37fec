package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/zaylabs/dryclean-api/internal/application/service"
	"github.com/zaylabs/dryclean-api/internal/presentation/http/dto/request"
	"github.com/zaylabs/dryclean-api/internal/presentation/http/dto/response"
)

// SettingHandler handles the branding settings
type SettingHandler struct {
	settingService *service.SettingService
}

// NewSettingHandler creates a new setting handler
func NewSettingHandler(settingService *service.SettingService) *SettingHandler {
	return &SettingHandler{settingService: settingService}
}

// Get returns the branding settings, creating the defaults on first use
// @Summary Get settings
// @Tags settings
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /settings [get]
func (h *SettingHandler) Get(c *gin.Context) {
	setting, err := h.settingService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", setting)
}

// Save overwrites the branding settings
// @Summary Save settings
// @Tags settings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.SettingRequest true "Settings"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /settings [put]
func (h *SettingHandler) Save(c *gin.Context) {
	var req request.SettingRequest
	if !bindJSON(c, &req) {
		return
	}

	setting, err := h.settingService.SaveSettings(c.Request.Context(), &service.SettingInput{
		AppName:     req.AppName,
		Description: req.Description,
		Color:       req.Color,
		Logo:        req.Logo,
		Favicon:     req.Favicon,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings saved successfully", setting)
}
