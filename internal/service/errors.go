package service

import "errors"

var (
	// ErrInvalidCredentials is returned when login email/password do not match.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned when registering with an email already in use.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidRole is returned when a role is outside the closed set.
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidVehicleType is returned when a vehicle type is unknown.
	ErrInvalidVehicleType = errors.New("invalid vehicle type")

	// ErrInvalidCapacity is returned when a capacity is not positive.
	ErrInvalidCapacity = errors.New("capacity must be positive")

	// ErrInvalidPrice is returned when price per kg is not positive.
	ErrInvalidPrice = errors.New("price per kg must be positive")

	// ErrInvalidDateRange is returned when arrival is not after departure.
	ErrInvalidDateRange = errors.New("arrival date must be after departure date")

	// ErrInvalidLoadSize is returned when a booking load size is not positive.
	ErrInvalidLoadSize = errors.New("load size must be positive")

	// ErrInvalidRating is returned when a rating is outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrInvalidStatus is returned when a status value is outside its enum.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrCapacityExceedsVehicle is returned when a trip capacity override
	// is larger than the vehicle's capacity.
	ErrCapacityExceedsVehicle = errors.New("capacity cannot exceed vehicle capacity")

	// ErrNotAuthorized is returned when the principal may not act on the entity.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrShipperOnly is returned when a shipper-only operation is called by
	// another role.
	ErrShipperOnly = errors.New("only shippers may perform this operation")

	// ErrCarrierOnly is returned when a carrier-only operation is called by
	// another role.
	ErrCarrierOnly = errors.New("only carriers may perform this operation")

	// ErrNotVehicleOwner is returned when the vehicle belongs to another carrier.
	ErrNotVehicleOwner = errors.New("vehicle does not belong to you")

	// ErrNotTripOwner is returned when the trip belongs to another carrier.
	ErrNotTripOwner = errors.New("trip does not belong to you")

	// ErrTripNotActive is returned when reserving capacity on a trip that is
	// not active.
	ErrTripNotActive = errors.New("trip is not active")

	// ErrInsufficientCapacity is returned when a booking asks for more than
	// the trip's available capacity.
	ErrInsufficientCapacity = errors.New("insufficient available capacity")

	// ErrInvalidTransition is returned when a booking status change is not
	// in the transition table.
	ErrInvalidTransition = errors.New("booking status transition not allowed")

	// ErrBookingNotCancellable is returned when deleting a booking past the
	// accepted state.
	ErrBookingNotCancellable = errors.New("booking can no longer be cancelled")

	// ErrAlreadyPaid is returned when settling a booking that is already paid.
	ErrAlreadyPaid = errors.New("booking already paid")

	// ErrSelfReview is returned when a user reviews themselves.
	ErrSelfReview = errors.New("cannot review yourself")

	// ErrAlreadyReviewed is returned when the author already reviewed the booking.
	ErrAlreadyReviewed = errors.New("booking already reviewed by this user")
)
