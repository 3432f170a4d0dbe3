package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"loadlink/internal/domain"
	"loadlink/internal/service"
)

// TripHandler handles HTTP requests for trips.
type TripHandler struct {
	tripService *service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// CreateTripRequest is the HTTP request body for creating a trip.
type CreateTripRequest struct {
	VehicleID     string    `json:"vehicle_id" binding:"required"`
	Origin        string    `json:"origin" binding:"required"`
	Destination   string    `json:"destination" binding:"required"`
	DepartureDate time.Time `json:"departure_date" binding:"required"`
	ArrivalDate   time.Time `json:"arrival_date" binding:"required"`
	PricePerKg    float64   `json:"price_per_kg" binding:"required"`
	TotalCapacity int       `json:"total_capacity,omitempty"` // defaults to the vehicle's capacity
	Description   string    `json:"description,omitempty"`
}

// UpdateTripRequest is the HTTP request body for updating a trip.
type UpdateTripRequest struct {
	VehicleID         *string    `json:"vehicle_id,omitempty"`
	Origin            *string    `json:"origin,omitempty"`
	Destination       *string    `json:"destination,omitempty"`
	DepartureDate     *time.Time `json:"departure_date,omitempty"`
	ArrivalDate       *time.Time `json:"arrival_date,omitempty"`
	PricePerKg        *float64   `json:"price_per_kg,omitempty"`
	AvailableCapacity *int       `json:"available_capacity,omitempty"`
	Status            *string    `json:"status,omitempty"`
	Description       *string    `json:"description,omitempty"`
}

// TripResponse is the HTTP representation of a trip.
type TripResponse struct {
	ID                string  `json:"id"`
	CarrierID         string  `json:"carrier_id"`
	VehicleID         string  `json:"vehicle_id"`
	Origin            string  `json:"origin"`
	Destination       string  `json:"destination"`
	DepartureDate     string  `json:"departure_date"`
	ArrivalDate       string  `json:"arrival_date"`
	PricePerKg        float64 `json:"price_per_kg"`
	TotalCapacity     int     `json:"total_capacity"`
	AvailableCapacity int     `json:"available_capacity"`
	Status            string  `json:"status"`
	Description       string  `json:"description,omitempty"`
}

func toTripResponse(trip *domain.Trip) TripResponse {
	return TripResponse{
		ID:                trip.ID,
		CarrierID:         trip.CarrierID,
		VehicleID:         trip.VehicleID,
		Origin:            trip.Origin,
		Destination:       trip.Destination,
		DepartureDate:     trip.DepartureDate.Format("2006-01-02T15:04:05Z07:00"),
		ArrivalDate:       trip.ArrivalDate.Format("2006-01-02T15:04:05Z07:00"),
		PricePerKg:        trip.PricePerKg,
		TotalCapacity:     trip.TotalCapacity,
		AvailableCapacity: trip.AvailableCapacity,
		Status:            string(trip.Status),
		Description:       trip.Description,
	}
}

func toTripResponses(trips []*domain.Trip) []TripResponse {
	response := make([]TripResponse, 0, len(trips))
	for _, t := range trips {
		response = append(response, toTripResponse(t))
	}
	return response
}

// Create handles POST /trips
func (h *TripHandler) Create(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.tripService.Create(c.Request.Context(), principal, service.CreateTripRequest{
		VehicleID:     req.VehicleID,
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		ArrivalDate:   req.ArrivalDate,
		PricePerKg:    req.PricePerKg,
		TotalCapacity: req.TotalCapacity,
		Description:   req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toTripResponse(trip))
}

// Get handles GET /trips/:id
func (h *TripHandler) Get(c *gin.Context) {
	trip, err := h.tripService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// ListActive handles GET /trips/all
func (h *TripHandler) ListActive(c *gin.Context) {
	trips, err := h.tripService.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponses(trips))
}

// ListMine handles GET /trips/my
func (h *TripHandler) ListMine(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	trips, err := h.tripService.ListMine(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponses(trips))
}

// Update handles PUT /trips/:id
func (h *TripHandler) Update(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	var req UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	trip, err := h.tripService.Update(c.Request.Context(), principal, c.Param("id"), service.UpdateTripRequest{
		VehicleID:         req.VehicleID,
		Origin:            req.Origin,
		Destination:       req.Destination,
		DepartureDate:     req.DepartureDate,
		ArrivalDate:       req.ArrivalDate,
		PricePerKg:        req.PricePerKg,
		AvailableCapacity: req.AvailableCapacity,
		Status:            req.Status,
		Description:       req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// Delete handles DELETE /trips/:id
func (h *TripHandler) Delete(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	if err := h.tripService.Delete(c.Request.Context(), principal, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
