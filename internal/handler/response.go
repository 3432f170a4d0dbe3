package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"loadlink/internal/auth"
	"loadlink/internal/domain"
	"loadlink/internal/middleware"
	"loadlink/internal/repository"
	"loadlink/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// principalFrom extracts the authenticated principal placed on the context
// by the auth middleware.
func principalFrom(c *gin.Context) (domain.Principal, bool) {
	value, ok := c.Get(middleware.PrincipalKey)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing principal"})
		return domain.Principal{}, false
	}

	principal, ok := value.(domain.Principal)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "missing principal"})
		return domain.Principal{}, false
	}

	return principal, true
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Authentication errors
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized

	// Authorization errors - Forbidden
	case errors.Is(err, service.ErrNotAuthorized),
		errors.Is(err, service.ErrShipperOnly),
		errors.Is(err, service.ErrCarrierOnly),
		errors.Is(err, service.ErrNotVehicleOwner),
		errors.Is(err, service.ErrNotTripOwner):
		return http.StatusForbidden

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidVehicleType),
		errors.Is(err, service.ErrInvalidCapacity),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrInvalidLoadSize),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrCapacityExceedsVehicle),
		errors.Is(err, service.ErrSelfReview):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrTripNotActive),
		errors.Is(err, service.ErrInsufficientCapacity),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrBookingNotCancellable),
		errors.Is(err, service.ErrAlreadyPaid),
		errors.Is(err, service.ErrAlreadyReviewed),
		errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
