package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	appErrors "github.com/rta-dms/pta-archive-api/pkg/errors"
)

const sessionKeyPrefix = "session:dst:"

// SessionRepository keeps DMS session tokens (DSTs) in Redis, keyed by
// the session id embedded in the JWT. The token itself never reaches
// the client.
type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("%s%s", sessionKeyPrefix, sessionID)
}

// Save stores the DST under the session id with the configured TTL.
func (r *SessionRepository) Save(ctx context.Context, sessionID, dst string, ttl time.Duration) error {
	return r.client.Set(ctx, sessionKey(sessionID), dst, ttl).Err()
}

// Get returns the DST for a session. A missing key means the session
// expired or was logged out.
func (r *SessionRepository) Get(ctx context.Context, sessionID string) (string, error) {
	dst, err := r.client.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", appErrors.ErrSessionExpired
		}
		return "", err
	}
	return dst, nil
}

// Delete drops the session, invalidating the DST server-side.
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, sessionKey(sessionID)).Err()
}
