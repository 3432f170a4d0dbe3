package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"loadlink/internal/repository"
	"loadlink/internal/service"
)

// UserHandler handles HTTP requests for user profiles.
type UserHandler struct {
	authService *service.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// Me handles GET /users/me
func (h *UserHandler) Me(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), principal.ID)
	if err != nil {
		// A valid token whose subject was deleted is a stale credential,
		// not a missing resource.
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "account no longer exists"})
			return
		}
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toUserResponse(user))
}
