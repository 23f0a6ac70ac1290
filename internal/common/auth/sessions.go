// internal/common/auth/sessions.go
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"pathmatch-workers/internal/models"
)

// ErrSessionNotFound reports an unknown or expired token. Redis TTLs do the
// actual expiry, so a missing key and an expired session are the same case.
var ErrSessionNotFound = errors.New("session not found")

const (
	accessKeyPrefix  = "session:access:"
	refreshKeyPrefix = "session:refresh:"
)

// SessionStore keeps opaque access and refresh tokens in redis.
type SessionStore struct {
	redis      *redis.Client
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewSessionStore(client *redis.Client, accessTTL, refreshTTL time.Duration) *SessionStore {
	return &SessionStore{
		redis:      client,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Create issues a new session for the user and stores it under both tokens.
func (s *SessionStore) Create(ctx context.Context, userID, netID string, role models.Role) (*models.Session, error) {
	now := time.Now().UTC()
	session := &models.Session{
		UserID:       userID,
		NetID:        netID,
		Role:         role,
		AccessToken:  uuid.NewString(),
		RefreshToken: uuid.NewString(),
		IssuedAt:     now,
		ExpiresAt:    now.Add(s.accessTTL),
	}

	if err := s.store(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Validate resolves an access token to its session.
func (s *SessionStore) Validate(ctx context.Context, accessToken string) (*models.Session, error) {
	return s.load(ctx, accessKeyPrefix+accessToken)
}

// Refresh rotates a session: the old token pair is revoked and a fresh pair
// issued for the same identity.
func (s *SessionStore) Refresh(ctx context.Context, refreshToken string) (*models.Session, error) {
	old, err := s.load(ctx, refreshKeyPrefix+refreshToken)
	if err != nil {
		return nil, err
	}

	if err := s.Revoke(ctx, old.AccessToken, old.RefreshToken); err != nil {
		return nil, err
	}

	return s.Create(ctx, old.UserID, old.NetID, old.Role)
}

// Revoke deletes a session's keys. Tokens already gone are not an error.
func (s *SessionStore) Revoke(ctx context.Context, accessToken, refreshToken string) error {
	keys := make([]string, 0, 2)
	if accessToken != "" {
		keys = append(keys, accessKeyPrefix+accessToken)
	}
	if refreshToken != "" {
		keys = append(keys, refreshKeyPrefix+refreshToken)
	}
	if len(keys) == 0 {
		return nil
	}

	if err := s.redis.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (s *SessionStore) store(ctx context.Context, session *models.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}

	if err := s.redis.Set(ctx, accessKeyPrefix+session.AccessToken, payload, s.accessTTL).Err(); err != nil {
		return fmt.Errorf("failed to store access token: %w", err)
	}
	if err := s.redis.Set(ctx, refreshKeyPrefix+session.RefreshToken, payload, s.refreshTTL).Err(); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (s *SessionStore) load(ctx context.Context, key string) (*models.Session, error) {
	payload, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return nil, fmt.Errorf("failed to deserialize session: %w", err)
	}
	return &session, nil
}
