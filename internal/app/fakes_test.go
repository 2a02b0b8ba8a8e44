package app_test

import (
	"context"
	"encoding/json"

	"cleaning_booking/internal/domain"
)

// ---- fakes ----

type fakeAPI struct {
	rec      domain.BookingRecord
	list     []domain.BookingRecord
	err      error
	creates  int
	lists    int
	lastReq  domain.BookingRequest
	lastAuth string
}

func (f *fakeAPI) CreateBooking(ctx context.Context, token string, req domain.BookingRequest) (domain.BookingRecord, error) {
	f.creates++
	f.lastReq = req
	f.lastAuth = token
	if f.err != nil {
		return nil, f.err
	}
	return f.rec, nil
}

func (f *fakeAPI) ListBookings(ctx context.Context, token string) ([]domain.BookingRecord, error) {
	f.lists++
	f.lastAuth = token
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

type fakeSession struct {
	token   string
	user    []byte
	credErr error
	stashed map[string]any
}

func (s *fakeSession) Credential(ctx context.Context) (string, error) { return s.token, s.credErr }
func (s *fakeSession) Identity(ctx context.Context) ([]byte, error)   { return s.user, nil }
func (s *fakeSession) Stash(ctx context.Context, key string, v any) error {
	if s.stashed == nil {
		s.stashed = map[string]any{}
	}
	s.stashed[key] = v
	return nil
}

type fakeAttempts struct {
	logged []domain.AttemptLog
}

func (f *fakeAttempts) RecordAttempt(ctx context.Context, a domain.AttemptLog) error {
	f.logged = append(f.logged, a)
	return nil
}

func (f *fakeAttempts) RecentAttempts(ctx context.Context, userID string, limit int) ([]domain.AttemptLog, error) {
	var out []domain.AttemptLog
	for i := len(f.logged) - 1; i >= 0 && len(out) < limit; i-- {
		if a := f.logged[i]; a.UserID != nil && *a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

// fakeCache round-trips through JSON like the redis adapter does.
type fakeCache struct {
	store  map[string][]byte
	dels   []string
	delErr error
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(v, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.dels = append(c.dels, key)
	if c.delErr != nil {
		return c.delErr
	}
	delete(c.store, key)
	return nil
}

func loggedIn() *fakeSession {
	return &fakeSession{token: "tok-123", user: []byte(`{"user_id":"u-42","name":"Ana"}`)}
}
