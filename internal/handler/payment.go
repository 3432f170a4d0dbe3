package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"loadlink/internal/domain"
	"loadlink/internal/service"
)

// PaymentHandler handles HTTP requests for payments.
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// PaymentResponse is the HTTP representation of a payment.
type PaymentResponse struct {
	ID            string  `json:"id"`
	BookingID     string  `json:"booking_id"`
	FromUserID    string  `json:"from_user_id"`
	ToUserID      string  `json:"to_user_id"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	CreatedDate   string  `json:"created_date"`
	CompletedDate string  `json:"completed_date,omitempty"`
}

func toPaymentResponse(payment *domain.Payment) PaymentResponse {
	response := PaymentResponse{
		ID:          payment.ID,
		BookingID:   payment.BookingID,
		FromUserID:  payment.FromUserID,
		ToUserID:    payment.ToUserID,
		Amount:      payment.Amount,
		Status:      string(payment.Status),
		CreatedDate: payment.CreatedDate.Format("2006-01-02T15:04:05Z07:00"),
	}

	if !payment.CompletedDate.IsZero() {
		response.CompletedDate = payment.CompletedDate.Format("2006-01-02T15:04:05Z07:00")
	}

	return response
}

// Settle handles POST /payments/:booking_id
func (h *PaymentHandler) Settle(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	payment, err := h.paymentService.Settle(c.Request.Context(), principal, c.Param("booking_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toPaymentResponse(payment))
}

// ListMine handles GET /payments/me
func (h *PaymentHandler) ListMine(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	payments, err := h.paymentService.ListForUser(c.Request.Context(), principal.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		response = append(response, toPaymentResponse(p))
	}

	respondJSON(c, http.StatusOK, response)
}
