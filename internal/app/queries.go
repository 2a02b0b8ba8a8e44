package app

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"cleaning_booking/internal/domain"
)

type BookingQueryService struct {
	api      domain.BookingAPI
	attempts domain.AttemptRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewBookingQueryService(api domain.BookingAPI, attempts domain.AttemptRepository, c domain.Cache, ttl time.Duration) *BookingQueryService {
	return &BookingQueryService{api: api, attempts: attempts, cache: c, cacheTTL: ttl}
}

// ListBookings returns the caller's bookings as the API reports them.
func (s *BookingQueryService) ListBookings(ctx context.Context, sess domain.Session) ([]domain.BookingRecord, error) {
	token, userID, err := resolveSession(ctx, sess)
	if err != nil {
		return nil, err
	}

	key := bookingsKey(userID)
	var out []domain.BookingRecord
	if s.cache != nil {
		ok, err := s.cache.Get(ctx, key, &out)
		if ok && err == nil {
			return out, nil
		}
		if err != nil {
			log.Debug().Err(err).Str("key", key).Msg("cached bookings unreadable, refetching")
			out = nil
		}
	}

	recs, err := s.api.ListBookings(ctx, token)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []domain.BookingRecord{}
	}

	// optional size guard
	if s.cache != nil {
		if b, _ := json.Marshal(recs); len(b) < 1_000_000 {
			_ = s.cache.Set(ctx, key, recs, int(s.cacheTTL.Seconds()))
		}
	}
	return recs, nil
}

// RecentAttempts lists the caller's latest submission attempts, newest first.
func (s *BookingQueryService) RecentAttempts(ctx context.Context, sess domain.Session, limit int) ([]domain.AttemptLog, error) {
	if s.attempts == nil {
		return nil, domain.ErrNotFound
	}
	_, userID, err := resolveSession(ctx, sess)
	if err != nil {
		return nil, err
	}
	return s.attempts.RecentAttempts(ctx, userID, limit)
}
