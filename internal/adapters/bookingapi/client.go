// internal/adapters/bookingapi/client.go
package bookingapi

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"cleaning_booking/internal/adapters/observability"
	"cleaning_booking/internal/domain"
)

const (
	createPath = "/api/v1/house-cleaning/create"
	listPath   = "/api/v1/bookings"
)

type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base string, rps int, timeout time.Duration) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("booking API base URL is required")
	}
	if rps <= 0 {
		rps = 5
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: timeout},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ---- Public API ----

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// CreateBooking posts one booking. It never retries: any non-2xx answer or
// transport failure is returned as a *domain.Error for the customer to see.
// Any 2xx is a success, whatever the body holds.
func (c *Client) CreateBooking(ctx context.Context, token string, in domain.BookingRequest) (domain.BookingRecord, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return nil, domain.NetworkError(err)
	}
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode booking: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, c.base+createPath, token, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("booking_api", "create", 0, time.Since(start))
		return nil, domain.NetworkError(err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("booking_api", "create", resp.StatusCode, time.Since(start))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if err != nil {
			return nil, domain.NetworkError(err)
		}
		return nil, domain.ServerError(resp.StatusCode, errorMessage(resp.StatusCode, raw))
	}
	if err != nil {
		log.Warn().Err(err).Int("status", resp.StatusCode).Msg("booking created but body read failed")
		raw = nil
	}
	return decodeCreated(resp.StatusCode, raw), nil
}

// decodeCreated reads the record out of a 2xx body. The booking exists once the
// API said 2xx, so an odd body is logged and yields an empty record rather
// than a failure the customer would retry.
func decodeCreated(status int, raw []byte) domain.BookingRecord {
	var env envelope
	var rec domain.BookingRecord
	switch {
	case len(bytes.TrimSpace(raw)) == 0:
		if status != http.StatusNoContent {
			log.Warn().Int("status", status).Msg("booking created with an empty body")
		}
	case json.Unmarshal(raw, &env) != nil:
		log.Warn().Int("status", status).Msg("booking created with a non-JSON body")
	case len(env.Data) == 0 || string(env.Data) == "null":
		log.Warn().Int("status", status).Msg("booking created without data")
	case json.Unmarshal(env.Data, &rec) != nil:
		log.Warn().Int("status", status).RawJSON("data", env.Data).Msg("booking created with non-object data")
		rec = nil
	}
	if rec == nil {
		rec = domain.BookingRecord{}
	}
	return rec
}

// ListBookings fetches the caller's bookings; safe to retry, so it does.
func (c *Client) ListBookings(ctx context.Context, token string) ([]domain.BookingRecord, error) {
	var env struct {
		Data []domain.BookingRecord `json:"data"`
	}
	if err := c.get(ctx, c.base+listPath, token, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// errorMessage prefers the server's {"message"}; otherwise derives one from status.
func errorMessage(status int, body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && strings.TrimSpace(env.Message) != "" {
		return env.Message
	}
	return fmt.Sprintf("request failed with status %d", status)
}

// ---- Internals ----

func (c *Client) newRequest(ctx context.Context, method, url, token string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "cleaning-booking/1.0")
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

// get performs a GET with client-side rate limiting, retries, and JSON decode into out.
// Retries on 429 and transient 5xx, honoring Retry-After when provided.
func (c *Client) get(ctx context.Context, url, token string, out any) error {
	// client-side rate limiting
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		// build a fresh request each attempt
		req, err := c.newRequest(ctx, http.MethodGet, url, token, nil)
		if err != nil {
			return err
		}

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("booking_api", "list", 0, time.Since(start))
			// network error or context canceled
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = domain.NetworkError(err)
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("booking_api", "list", resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusNoContent:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil

		case http.StatusNotFound:
			resp.Body.Close()
			return domain.ErrNotFound

		case http.StatusUnauthorized:
			resp.Body.Close()
			return &domain.Error{Kind: domain.KindAuth, Message: domain.MsgNoCredential, Status: resp.StatusCode, Err: domain.ErrUnauthorized}

		case http.StatusForbidden:
			resp.Body.Close()
			return &domain.Error{Kind: domain.KindAuth, Message: "not allowed to view these bookings", Status: resp.StatusCode, Err: domain.ErrForbidden}

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			// Prefer server-provided Retry-After; otherwise exponential backoff.
			wait := retryAfter(resp)
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = domain.ServerError(resp.StatusCode, errorMessage(resp.StatusCode, b))
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return domain.ServerError(resp.StatusCode, errorMessage(resp.StatusCode, b))
		}
	}

	return lastErr
}

// IsNotFound reports whether err is the list endpoint's 404.
func IsNotFound(err error) bool { return errors.Is(err, domain.ErrNotFound) }

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns 200ms, 400ms, 800ms... plus up to 50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
