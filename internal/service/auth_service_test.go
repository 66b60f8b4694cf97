package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	appErrors "github.com/rta-dms/pta-archive-api/pkg/errors"

	"github.com/rta-dms/pta-archive-api/internal/dms"
	"github.com/rta-dms/pta-archive-api/internal/models"
	"github.com/rta-dms/pta-archive-api/pkg/config"
)

func authFixture(dmsAuth *stubDMSAuth) (*AuthService, *stubSessionStore) {
	sessions := newStubSessionStore()
	svc := NewAuthService(
		dmsAuth,
		&stubSecurityReader{levels: map[string]string{"jsmith": models.SecurityEditor}},
		sessions,
		config.JWTConfig{Secret: "test_secret", Expiration: time.Hour, Issuer: "pta-archive-api"},
		8*time.Hour,
		nil,
	)
	return svc, sessions
}

func TestAuthServiceLogin(t *testing.T) {
	svc, sessions := authFixture(&stubDMSAuth{dst: "DST-42"})

	user, err := svc.Login(context.Background(), "jsmith", "secret")
	require.NoError(t, err)
	require.Equal(t, "jsmith", user.Username)
	require.Equal(t, models.SecurityEditor, user.SecurityLevel)
	require.NotEmpty(t, user.Token)

	claims := &models.Claims{}
	parsed, err := jwt.ParseWithClaims(user.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test_secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	require.Equal(t, "jsmith", claims.Username)
	require.True(t, claims.IsEditor())
	require.NotEmpty(t, claims.SessionID)

	// The DST is parked server-side under the session id.
	require.Equal(t, "DST-42", sessions.saved[claims.SessionID])
	require.Equal(t, 8*time.Hour, sessions.ttl)
}

func TestAuthServiceLoginViewerDefault(t *testing.T) {
	svc, _ := authFixture(&stubDMSAuth{dst: "DST-42"})

	user, err := svc.Login(context.Background(), "viewer1", "secret")
	require.NoError(t, err)
	require.Equal(t, models.SecurityViewer, user.SecurityLevel)
}

func TestAuthServiceLoginRejected(t *testing.T) {
	svc, sessions := authFixture(&stubDMSAuth{err: dms.ErrLoginFailed})

	_, err := svc.Login(context.Background(), "jsmith", "wrong")
	require.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
	require.Empty(t, sessions.saved)
}

func TestAuthServiceLogout(t *testing.T) {
	svc, sessions := authFixture(&stubDMSAuth{dst: "DST-42"})

	user, err := svc.Login(context.Background(), "jsmith", "secret")
	require.NoError(t, err)

	claims := &models.Claims{}
	_, err = jwt.ParseWithClaims(user.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test_secret"), nil
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), claims.SessionID))
	require.Empty(t, sessions.saved)

	_, err = svc.DST(context.Background(), claims.SessionID)
	require.Error(t, err)
}
