package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// SessionDuration is 7 days
	SessionDuration = 7 * 24 * time.Hour
	// SessionKeyPrefix is the Redis key prefix for sessions
	SessionKeyPrefix = "session:"
	// UserSessionKeyPrefix is the Redis key prefix for user->session mapping
	UserSessionKeyPrefix = "user_session:"
)

// Sessions issues and resolves bearer tokens.
type Sessions interface {
	// CreateSession replaces any existing session for the user.
	CreateSession(ctx context.Context, userID uuid.UUID) (string, error)
	// ValidateSession reports ok=false for unknown or expired tokens.
	ValidateSession(ctx context.Context, token string) (userID uuid.UUID, ok bool, err error)
	InvalidateSession(ctx context.Context, token string) error
}

func newSessionToken() (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(tokenBytes), nil
}

// RedisSessions keeps one session per user: session:<token> -> user id and
// user_session:<id> -> token, both expiring after SessionDuration.
type RedisSessions struct {
	client *redis.Client
}

func NewRedisSessions(client *redis.Client) *RedisSessions {
	return &RedisSessions{client: client}
}

func (s *RedisSessions) CreateSession(ctx context.Context, userID uuid.UUID) (string, error) {
	// One session per user.
	if err := s.InvalidateUserSessions(ctx, userID); err != nil {
		return "", err
	}

	sessionToken, err := newSessionToken()
	if err != nil {
		return "", err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, SessionKeyPrefix+sessionToken, userID.String(), SessionDuration)
	pipe.Set(ctx, UserSessionKeyPrefix+userID.String(), sessionToken, SessionDuration)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", err
	}
	return sessionToken, nil
}

func (s *RedisSessions) ValidateSession(ctx context.Context, sessionToken string) (uuid.UUID, bool, error) {
	if sessionToken == "" {
		return uuid.Nil, false, nil
	}

	userIDStr, err := s.client.Get(ctx, SessionKeyPrefix+sessionToken).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false, err
	}
	return userID, true, nil
}

func (s *RedisSessions) InvalidateSession(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	sessionKey := SessionKeyPrefix + sessionToken

	userIDStr, err := s.client.Get(ctx, sessionKey).Result()
	if err == nil && userIDStr != "" {
		s.client.Del(ctx, UserSessionKeyPrefix+userIDStr)
	}
	return s.client.Del(ctx, sessionKey).Err()
}

// InvalidateUserSessions drops the user's current session, if any.
func (s *RedisSessions) InvalidateUserSessions(ctx context.Context, userID uuid.UUID) error {
	userSessionKey := UserSessionKeyPrefix + userID.String()

	sessionToken, err := s.client.Get(ctx, userSessionKey).Result()
	if err == nil && sessionToken != "" {
		s.client.Del(ctx, SessionKeyPrefix+sessionToken)
	}
	return s.client.Del(ctx, userSessionKey).Err()
}

type memorySession struct {
	userID    uuid.UUID
	expiresAt time.Time
}

// MemorySessions is the single-process Sessions used with the memory store.
type MemorySessions struct {
	mu     sync.Mutex
	now    func() time.Time
	tokens map[string]memorySession
	byUser map[uuid.UUID]string
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{
		now:    time.Now,
		tokens: make(map[string]memorySession),
		byUser: make(map[uuid.UUID]string),
	}
}

func (s *MemorySessions) CreateSession(_ context.Context, userID uuid.UUID) (string, error) {
	token, err := newSessionToken()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.byUser[userID]; ok {
		delete(s.tokens, old)
	}
	s.tokens[token] = memorySession{userID: userID, expiresAt: s.now().Add(SessionDuration)}
	s.byUser[userID] = token
	return token, nil
}

func (s *MemorySessions) ValidateSession(_ context.Context, token string) (uuid.UUID, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.tokens[token]
	if !ok {
		return uuid.Nil, false, nil
	}
	if s.now().After(sess.expiresAt) {
		delete(s.tokens, token)
		delete(s.byUser, sess.userID)
		return uuid.Nil, false, nil
	}
	return sess.userID, true, nil
}

func (s *MemorySessions) InvalidateSession(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.tokens[token]; ok {
		delete(s.byUser, sess.userID)
		delete(s.tokens, token)
	}
	return nil
}
