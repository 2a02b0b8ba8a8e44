package redisad

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cleaning_booking/internal/domain"
)

const sessionPrefix = "session:"

// Scratch keys the web client writes for a session.
const (
	KeyAuthToken = "auth_token"
	KeyToken     = "token"
	KeyUser      = "user"
)

// SessionStore is the client-local key-value scratch space, one namespace per
// session id. It is shared by every request; Session views are per request.
type SessionStore struct {
	c          *redis.Client
	scratchTTL time.Duration
}

func NewSessionStore(c *redis.Client, scratchTTL time.Duration) *SessionStore {
	return &SessionStore{c: c, scratchTTL: scratchTTL}
}

// For returns the view of one session.
func (s *SessionStore) For(sessionID string) domain.Session {
	return &Session{store: s, id: sessionID}
}

// Put writes a raw value into a session; used by login flows and tests.
func (s *SessionStore) Put(ctx context.Context, sessionID, key string, v []byte, ttl time.Duration) error {
	return s.c.Set(ctx, sessionKey(sessionID, key), v, ttl).Err()
}

// Read returns the raw value of key, or nil when absent.
func (s *SessionStore) Read(ctx context.Context, sessionID, key string) ([]byte, error) {
	b, err := s.c.Get(ctx, sessionKey(sessionID, key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session read %s: %w", key, err)
	}
	return b, nil
}

func sessionKey(id, key string) string { return sessionPrefix + id + ":" + key }

// Session implements domain.Session on top of the store.
type Session struct {
	store *SessionStore
	id    string
}

// Credential reads auth_token, then token. Empty means not logged in.
func (s *Session) Credential(ctx context.Context) (string, error) {
	if s.id == "" {
		return "", nil
	}
	for _, k := range []string{KeyAuthToken, KeyToken} {
		b, err := s.store.Read(ctx, s.id, k)
		if err != nil {
			return "", err
		}
		if len(b) > 0 {
			return string(b), nil
		}
	}
	return "", nil
}

func (s *Session) Identity(ctx context.Context) ([]byte, error) {
	if s.id == "" {
		return nil, nil
	}
	return s.store.Read(ctx, s.id, KeyUser)
}

func (s *Session) Stash(ctx context.Context, key string, v any) error {
	if s.id == "" {
		return fmt.Errorf("stash %s: no session", key)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("stash %s: %w", key, err)
	}
	return s.store.c.Set(ctx, sessionKey(s.id, key), b, s.store.scratchTTL).Err()
}
