package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/rta-dms/pta-archive-api/internal/middleware"
	"github.com/rta-dms/pta-archive-api/internal/models"
	appErrors "github.com/rta-dms/pta-archive-api/pkg/errors"
	"github.com/rta-dms/pta-archive-api/pkg/response"
)

// sessionTokens resolves a session id to the parked DMS token.
type sessionTokens interface {
	DST(ctx context.Context, sessionID string) (string, error)
}

// claimsOrAbort pulls verified claims off the context, writing a 401
// when the auth middleware did not run.
func claimsOrAbort(c *gin.Context) (*models.Claims, bool) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		c.Abort()
		return nil, false
	}
	return claims, true
}

// dstOrAbort resolves the caller's DMS token, writing a 401 when the
// session has expired.
func dstOrAbort(c *gin.Context, tokens sessionTokens, claims *models.Claims) (string, bool) {
	dst, err := tokens.DST(c.Request.Context(), claims.SessionID)
	if err != nil {
		response.Error(c, err)
		c.Abort()
		return "", false
	}
	return dst, true
}
