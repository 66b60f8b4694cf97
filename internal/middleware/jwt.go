package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/rta-dms/pta-archive-api/internal/models"
	"github.com/rta-dms/pta-archive-api/pkg/config"
	appErrors "github.com/rta-dms/pta-archive-api/pkg/errors"
	"github.com/rta-dms/pta-archive-api/pkg/response"
)

// ContextClaimsKey is where verified claims live on the gin context.
const ContextClaimsKey = "auth_claims"

// JWT verifies the bearer token and stores its claims on the context.
func JWT(cfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims := &models.Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims,
			func(*jwt.Token) (interface{}, error) {
				return []byte(cfg.Secret), nil
			},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		)
		if err != nil || !token.Valid {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the verified claims, if the JWT middleware ran.
func ClaimsFrom(c *gin.Context) (*models.Claims, bool) {
	value, ok := c.Get(ContextClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*models.Claims)
	return claims, ok
}
