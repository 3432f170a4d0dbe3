package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"loadlink/internal/domain"
	"loadlink/internal/service"
)

// ReviewHandler handles HTTP requests for reviews.
type ReviewHandler struct {
	reviewService *service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// CreateReviewRequest is the HTTP request body for creating a review.
type CreateReviewRequest struct {
	BookingID string `json:"booking_id" binding:"required"`
	ToUserID  string `json:"to_user_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment,omitempty"`
}

// UpdateReviewRequest is the HTTP request body for updating a review.
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating,omitempty"`
	Comment *string `json:"comment,omitempty"`
}

// ReviewResponse is the HTTP representation of a review.
type ReviewResponse struct {
	ID          string `json:"id"`
	BookingID   string `json:"booking_id"`
	FromUserID  string `json:"from_user_id"`
	ToUserID    string `json:"to_user_id"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment,omitempty"`
	CreatedDate string `json:"created_date"`
}

func toReviewResponse(review *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:          review.ID,
		BookingID:   review.BookingID,
		FromUserID:  review.FromUserID,
		ToUserID:    review.ToUserID,
		Rating:      review.Rating,
		Comment:     review.Comment,
		CreatedDate: review.CreatedDate.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// Create handles POST /reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), principal, service.CreateReviewRequest{
		BookingID: req.BookingID,
		ToUserID:  req.ToUserID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toReviewResponse(review))
}

// Get handles GET /reviews/:id
func (h *ReviewHandler) Get(c *gin.Context) {
	review, err := h.reviewService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toReviewResponse(review))
}

// List handles GET /reviews
func (h *ReviewHandler) List(c *gin.Context) {
	reviews, err := h.reviewService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		response = append(response, toReviewResponse(r))
	}

	respondJSON(c, http.StatusOK, response)
}

// Update handles PUT /reviews/:id
func (h *ReviewHandler) Update(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), principal, c.Param("id"), service.UpdateReviewRequest{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toReviewResponse(review))
}

// Delete handles DELETE /reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), principal, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
