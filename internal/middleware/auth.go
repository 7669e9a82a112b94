// Package middleware provides request authentication. The rest of the
// middleware chain lives with the router assembly in internal/api.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/vsrin/en-app-analytics/internal/domain"
)

// Claims are the JWT claims this service understands. Token issuance lives
// elsewhere; the analytics API only verifies.
type Claims struct {
	Sub string `json:"sub"`
	jwt.RegisteredClaims
}

// Auth creates a bearer-token authentication middleware. An empty secret
// disables verification entirely, for local development against seeded data.
func Auth(secret string) gin.HandlerFunc {
	if secret == "" {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		token, err := jwt.ParseWithClaims(parts[1], &Claims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "Invalid token")
			return
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, domain.ErrorResponse{Error: msg})
}

// GetClaims extracts verified claims from the gin context.
func GetClaims(c *gin.Context) (*Claims, bool) {
	v, exists := c.Get("claims")
	if !exists {
		return nil, false
	}

	claims, ok := v.(*Claims)
	return claims, ok
}
