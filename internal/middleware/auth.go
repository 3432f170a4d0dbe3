package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"loadlink/internal/auth"
)

// PrincipalKey is the gin context key under which the authenticated
// principal is stored.
const PrincipalKey = "principal"

// RequireAuth returns middleware that resolves the bearer token into a
// principal. Requests without a valid token are rejected with 401.
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		principal, err := tokens.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(PrincipalKey, *principal)
		c.Next()
	}
}
