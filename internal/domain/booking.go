package domain

import "time"

// BookingStatus represents the current status of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusAccepted  BookingStatus = "accepted"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusFulfilled BookingStatus = "fulfilled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusPaid      BookingStatus = "paid"
)

// Valid reports whether the booking status is one of the known values.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusAccepted, BookingStatusRejected,
		BookingStatusFulfilled, BookingStatusCompleted, BookingStatusPaid:
		return true
	}
	return false
}

// Booking represents a shipper's reservation of capacity on a trip.
//
// The capacity a booking consumes is held from creation until the booking is
// rejected or cancelled, at which point it is released back to the trip.
type Booking struct {
	ID              string
	TripID          string
	ShipperID       string
	LoadSizeKg      int
	TotalPrice      float64
	Status          BookingStatus
	CreatedDate     time.Time
	FulfilledDate   time.Time
	PaidDate        time.Time
	QRGenerated     bool
	QRGeneratedDate time.Time
	Notes           string
}
