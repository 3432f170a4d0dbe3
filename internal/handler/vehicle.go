package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"loadlink/internal/domain"
	"loadlink/internal/service"
)

// VehicleHandler handles HTTP requests for vehicles.
type VehicleHandler struct {
	vehicleService *service.VehicleService
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(vehicleService *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

// CreateVehicleRequest is the HTTP request body for registering a vehicle.
type CreateVehicleRequest struct {
	Type         string `json:"type" binding:"required"` // truck, van, trailer, container
	CapacityKg   int    `json:"capacity_kg" binding:"required"`
	LicensePlate string `json:"license_plate" binding:"required"`
	RCNumber     string `json:"rc_number" binding:"required"`
	IsActive     bool   `json:"is_active"`
}

// UpdateVehicleRequest is the HTTP request body for updating a vehicle.
type UpdateVehicleRequest struct {
	Type         *string `json:"type,omitempty"`
	CapacityKg   *int    `json:"capacity_kg,omitempty"`
	LicensePlate *string `json:"license_plate,omitempty"`
	RCNumber     *string `json:"rc_number,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

// VehicleResponse is the HTTP representation of a vehicle.
type VehicleResponse struct {
	ID           string `json:"id"`
	CarrierID    string `json:"carrier_id"`
	Type         string `json:"type"`
	CapacityKg   int    `json:"capacity_kg"`
	LicensePlate string `json:"license_plate"`
	RCNumber     string `json:"rc_number"`
	IsActive     bool   `json:"is_active"`
}

func toVehicleResponse(vehicle *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:           vehicle.ID,
		CarrierID:    vehicle.CarrierID,
		Type:         string(vehicle.Type),
		CapacityKg:   vehicle.CapacityKg,
		LicensePlate: vehicle.LicensePlate,
		RCNumber:     vehicle.RCNumber,
		IsActive:     vehicle.IsActive,
	}
}

// Create handles POST /vehicles
func (h *VehicleHandler) Create(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	vehicle, err := h.vehicleService.Create(c.Request.Context(), principal, service.CreateVehicleRequest{
		Type:         req.Type,
		CapacityKg:   req.CapacityKg,
		LicensePlate: req.LicensePlate,
		RCNumber:     req.RCNumber,
		IsActive:     req.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toVehicleResponse(vehicle))
}

// Get handles GET /vehicles/:id
func (h *VehicleHandler) Get(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	vehicle, err := h.vehicleService.Get(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toVehicleResponse(vehicle))
}

// List handles GET /vehicles
func (h *VehicleHandler) List(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	vehicles, err := h.vehicleService.ListMine(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		response = append(response, toVehicleResponse(v))
	}

	respondJSON(c, http.StatusOK, response)
}

// Update handles PUT /vehicles/:id
func (h *VehicleHandler) Update(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	var req UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	vehicle, err := h.vehicleService.Update(c.Request.Context(), principal, c.Param("id"), service.UpdateVehicleRequest{
		Type:         req.Type,
		CapacityKg:   req.CapacityKg,
		LicensePlate: req.LicensePlate,
		RCNumber:     req.RCNumber,
		IsActive:     req.IsActive,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toVehicleResponse(vehicle))
}

// Delete handles DELETE /vehicles/:id
func (h *VehicleHandler) Delete(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	if err := h.vehicleService.Delete(c.Request.Context(), principal, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
