package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rta-dms/pta-archive-api/internal/dms"
	"github.com/rta-dms/pta-archive-api/internal/models"
	"github.com/rta-dms/pta-archive-api/pkg/config"
	appErrors "github.com/rta-dms/pta-archive-api/pkg/errors"
)

type dmsAuthenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}

type securityReader interface {
	SecurityLevel(ctx context.Context, username string) (string, error)
	FullName(ctx context.Context, username string) (string, error)
}

type sessionStore interface {
	Save(ctx context.Context, sessionID, dst string, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

// AuthService authenticates users against the DMS and issues JWTs.
// The DMS session token never leaves the server: it is parked in the
// session store under an opaque session id carried by the JWT.
type AuthService struct {
	dms      dmsAuthenticator
	users    securityReader
	sessions sessionStore

	jwtCfg     config.JWTConfig
	sessionTTL time.Duration
	logger     *zap.Logger
}

func NewAuthService(
	dmsClient dmsAuthenticator,
	users securityReader,
	sessions sessionStore,
	jwtCfg config.JWTConfig,
	sessionTTL time.Duration,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &AuthService{
		dms:        dmsClient,
		users:      users,
		sessions:   sessions,
		jwtCfg:     jwtCfg,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// Login verifies the credentials with the DMS, resolves the user's
// security level and returns a signed token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.AuthenticatedUser, error) {
	dst, err := s.dms.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, dms.ErrLoginFailed) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.Wrap(err, "DMS_UNAVAILABLE", 502, "document server unreachable")
	}

	level, err := s.users.SecurityLevel(ctx, username)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve security level")
	}

	fullName, err := s.users.FullName(ctx, username)
	if err != nil {
		fullName = username
	}

	sessionID := uuid.NewString()
	if err := s.sessions.Save(ctx, sessionID, dst, s.sessionTTL); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist session")
	}

	token, err := s.issueToken(username, level, sessionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}

	s.logger.Info("user logged in",
		zap.String("username", username),
		zap.String("security_level", level))

	return &models.AuthenticatedUser{
		Username:      username,
		FullName:      fullName,
		SecurityLevel: level,
		Token:         token,
	}, nil
}

// Logout drops the stored session, invalidating the DST immediately
// even if the JWT is still within its lifetime.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to drop session")
	}
	return nil
}

// DST returns the DMS token for a live session.
func (s *AuthService) DST(ctx context.Context, sessionID string) (string, error) {
	return s.sessions.Get(ctx, sessionID)
}

func (s *AuthService) issueToken(username, level, sessionID string) (string, error) {
	now := time.Now()
	claims := &models.Claims{
		Username:      username,
		SecurityLevel: level,
		SessionID:     sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.jwtCfg.Issuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtCfg.Expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtCfg.Secret))
}
