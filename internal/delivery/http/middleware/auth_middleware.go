package middleware

import (
	"net/http"
	"strings"

	"elitefit-backend/internal/delivery/http/response"
	"elitefit-backend/internal/domain"
	"elitefit-backend/pkg/token"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the API token and exposes the account id and
// provider session secret to downstream handlers. Validation is local (HS256
// signature + expiry); the provider session itself is only checked when a
// handler actually calls the provider.
func AuthMiddleware(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header required", nil)
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyAccountID), claims.Subject)
		c.Set(string(domain.KeySessionSecret), claims.SessionSecret)

		c.Next()
	}
}
