package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/zaylabs/dryclean-api/internal/application/service"
	"github.com/zaylabs/dryclean-api/internal/presentation/http/dto/request"
	"github.com/zaylabs/dryclean-api/internal/presentation/http/dto/response"
)

// LocationHandler handles pickup and drop-off locations
type LocationHandler struct {
	locationService *service.LocationService
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(locationService *service.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

func locationInput(req *request.LocationRequest) *service.LocationInput {
	return &service.LocationInput{Name: req.Name, Latitude: req.Latitude, Longitude: req.Longitude}
}

func (h *LocationHandler) List(c *gin.Context) {
	locations, err := h.locationService.ListLocations(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Locations retrieved successfully", locations)
}

func (h *LocationHandler) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	location, err := h.locationService.GetLocation(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Location retrieved successfully", location)
}

func (h *LocationHandler) Create(c *gin.Context) {
	var req request.LocationRequest
	if !bindJSON(c, &req) {
		return
	}

	location, err := h.locationService.CreateLocation(c.Request.Context(), locationInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Location created successfully", location)
}

func (h *LocationHandler) Update(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var req request.LocationRequest
	if !bindJSON(c, &req) {
		return
	}

	location, err := h.locationService.UpdateLocation(c.Request.Context(), id, locationInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Location updated successfully", location)
}

func (h *LocationHandler) Delete(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	if err := h.locationService.DeleteLocation(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Location deleted successfully", nil)
}
