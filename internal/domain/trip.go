package domain

import "time"

// TripStatus represents the current status of a trip.
type TripStatus string

const (
	TripStatusActive    TripStatus = "active"
	TripStatusCompleted TripStatus = "completed"
	TripStatusCancelled TripStatus = "cancelled"
)

// Valid reports whether the trip status is one of the known values.
func (s TripStatus) Valid() bool {
	return s == TripStatusActive || s == TripStatusCompleted || s == TripStatusCancelled
}

// Trip represents a carrier's scheduled haul with bookable capacity.
//
// Invariant: 0 <= AvailableCapacity <= TotalCapacity. TotalCapacity is a
// snapshot of the vehicle's capacity taken when the trip is created; later
// vehicle edits do not propagate.
type Trip struct {
	ID                string
	CarrierID         string
	VehicleID         string
	Origin            string
	Destination       string
	DepartureDate     time.Time
	ArrivalDate       time.Time
	PricePerKg        float64
	TotalCapacity     int
	AvailableCapacity int
	Status            TripStatus
	Description       string
}
