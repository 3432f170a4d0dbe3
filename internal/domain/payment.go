package domain

import "time"

// PaymentStatus represents the current status of a payment.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment is the settlement record for a booking. At most one payment exists
// per booking; funds flow from the shipper to the trip's carrier.
type Payment struct {
	ID            string
	BookingID     string
	FromUserID    string
	ToUserID      string
	Amount        float64
	Status        PaymentStatus
	CreatedDate   time.Time
	CompletedDate time.Time
}
