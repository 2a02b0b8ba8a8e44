package domain

import "context"

// BookingAPI is the remote system of record for bookings.
type BookingAPI interface {
	CreateBooking(ctx context.Context, token string, req BookingRequest) (BookingRecord, error)
	ListBookings(ctx context.Context, token string) ([]BookingRecord, error)
}

// Session is the per-client credential, identity and scratch storage.
// Implementations only read the credential; they never write it.
type Session interface {
	// Credential returns the bearer token, or "" when none is stored.
	Credential(ctx context.Context) (string, error)
	// Identity returns the raw user JSON blob, or nil when none is stored.
	Identity(ctx context.Context) ([]byte, error)
	// Stash writes v under key for a later step of the booking flow.
	Stash(ctx context.Context, key string, v any) error
}

type AttemptRepository interface {
	RecordAttempt(ctx context.Context, a AttemptLog) error
	RecentAttempts(ctx context.Context, userID string, limit int) ([]AttemptLog, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
