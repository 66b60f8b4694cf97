package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rta-dms/pta-archive-api/internal/dto"
	"github.com/rta-dms/pta-archive-api/internal/models"
	"github.com/rta-dms/pta-archive-api/internal/service"
	"github.com/rta-dms/pta-archive-api/pkg/middleware/requestid"
	"github.com/rta-dms/pta-archive-api/pkg/response"
)

type authenticator interface {
	Login(ctx context.Context, username, password string) (*models.AuthenticatedUser, error)
	Logout(ctx context.Context, sessionID string) error
}

// AuthHandler serves login, logout and the current-user endpoint.
type AuthHandler struct {
	auth   authenticator
	audit  *service.AuditService
	logger *zap.Logger
}

func NewAuthHandler(auth authenticator, audit *service.AuditService, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{auth: auth, audit: audit, logger: logger}
}

// Login godoc
// @Summary     Authenticate against the DMS
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       credentials body dto.LoginRequest true "DMS credentials"
// @Success     200 {object} response.Envelope
// @Failure     401 {object} response.Envelope
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.audit != nil {
		h.audit.Record(c.Request.Context(), user.Username, models.AuditActionLogin,
			"session", "", "", requestid.Value(c))
	}

	response.OK(c, user)
}

// Logout godoc
// @Summary     Invalidate the current session
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} response.Envelope
// @Router      /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := claimsOrAbort(c)
	if !ok {
		return
	}

	if err := h.auth.Logout(c.Request.Context(), claims.SessionID); err != nil {
		response.Error(c, err)
		return
	}

	if h.audit != nil {
		h.audit.Record(c.Request.Context(), claims.Username, models.AuditActionLogout,
			"session", "", "", requestid.Value(c))
	}

	response.OK(c, gin.H{"logged_out": true})
}

// Me godoc
// @Summary     Describe the authenticated user
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} response.Envelope
// @Router      /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := claimsOrAbort(c)
	if !ok {
		return
	}

	response.OK(c, models.AuthenticatedUser{
		Username:      claims.Username,
		SecurityLevel: claims.SecurityLevel,
	})
}
