package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"loadlink/internal/domain"
	"loadlink/internal/service"
)

// BookingHandler handles HTTP requests for bookings.
type BookingHandler struct {
	bookingService *service.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// CreateBookingRequest is the HTTP request body for creating a booking.
type CreateBookingRequest struct {
	TripID     string `json:"trip_id" binding:"required"`
	LoadSizeKg int    `json:"load_size_kg" binding:"required"`
	Notes      string `json:"notes,omitempty"`
}

// UpdateBookingRequest is the HTTP request body for updating a booking.
// A status value requests a lifecycle transition; notes alone edits the
// free-text field.
type UpdateBookingRequest struct {
	Status *string `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// BookingResponse is the HTTP representation of a booking.
type BookingResponse struct {
	ID              string  `json:"id"`
	TripID          string  `json:"trip_id"`
	ShipperID       string  `json:"shipper_id"`
	LoadSizeKg      int     `json:"load_size_kg"`
	TotalPrice      float64 `json:"total_price"`
	Status          string  `json:"status"`
	CreatedDate     string  `json:"created_date"`
	FulfilledDate   string  `json:"fulfilled_date,omitempty"`
	PaidDate        string  `json:"paid_date,omitempty"`
	QRGenerated     bool    `json:"qr_generated"`
	QRGeneratedDate string  `json:"qr_generated_date,omitempty"`
	Notes           string  `json:"notes,omitempty"`
}

func toBookingResponse(booking *domain.Booking) BookingResponse {
	response := BookingResponse{
		ID:          booking.ID,
		TripID:      booking.TripID,
		ShipperID:   booking.ShipperID,
		LoadSizeKg:  booking.LoadSizeKg,
		TotalPrice:  booking.TotalPrice,
		Status:      string(booking.Status),
		CreatedDate: booking.CreatedDate.Format("2006-01-02T15:04:05Z07:00"),
		QRGenerated: booking.QRGenerated,
		Notes:       booking.Notes,
	}

	if !booking.FulfilledDate.IsZero() {
		response.FulfilledDate = booking.FulfilledDate.Format("2006-01-02T15:04:05Z07:00")
	}
	if !booking.PaidDate.IsZero() {
		response.PaidDate = booking.PaidDate.Format("2006-01-02T15:04:05Z07:00")
	}
	if !booking.QRGeneratedDate.IsZero() {
		response.QRGeneratedDate = booking.QRGeneratedDate.Format("2006-01-02T15:04:05Z07:00")
	}

	return response
}

func toBookingResponses(bookings []*domain.Booking) []BookingResponse {
	response := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		response = append(response, toBookingResponse(b))
	}
	return response
}

// Create handles POST /bookings
func (h *BookingHandler) Create(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), principal, service.CreateBookingRequest{
		TripID:     req.TripID,
		LoadSizeKg: req.LoadSizeKg,
		Notes:      req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toBookingResponse(booking))
}

// Get handles GET /bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.Get(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}

// List handles GET /bookings
func (h *BookingHandler) List(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	bookings, err := h.bookingService.List(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBookingResponses(bookings))
}

// ListByTrip handles GET /bookings/trip/:trip_id
func (h *BookingHandler) ListByTrip(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	bookings, err := h.bookingService.ListByTrip(c.Request.Context(), principal, c.Param("trip_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toBookingResponses(bookings))
}

// Update handles PUT /bookings/:id
func (h *BookingHandler) Update(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Status == nil && req.Notes == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "nothing to update"})
		return
	}

	var booking *domain.Booking
	var err error

	if req.Status != nil {
		booking, err = h.bookingService.Transition(c.Request.Context(), principal, c.Param("id"), domain.BookingStatus(*req.Status))
		if err != nil {
			respondError(c, err)
			return
		}
	}

	if req.Notes != nil {
		booking, err = h.bookingService.UpdateNotes(c.Request.Context(), principal, c.Param("id"), *req.Notes)
		if err != nil {
			respondError(c, err)
			return
		}
	}

	respondJSON(c, http.StatusOK, toBookingResponse(booking))
}

// Delete handles DELETE /bookings/:id
func (h *BookingHandler) Delete(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	if err := h.bookingService.Delete(c.Request.Context(), principal, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
