package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"cleaning_booking/internal/adapters/observability"
	"cleaning_booking/internal/domain"
)

// PendingBookingKey is the scratch key the date/time step reads back.
const PendingBookingKey = "pendingBooking"

// State is a step of one submission attempt.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateRejected
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateRejected:
		return "rejected"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Outcome is what one attempt ended with. Request is set once the attempt
// got past validation.
type Outcome struct {
	ID      string
	State   State
	Record  domain.BookingRecord
	Request *domain.BookingRequest
}

// Submitter turns a draft into one authenticated booking-creation call.
// It keeps no state between calls; attempts and cache are optional.
type Submitter struct {
	api      domain.BookingAPI
	attempts domain.AttemptRepository
	cache    domain.Cache
	now      func() time.Time
}

func NewSubmitter(api domain.BookingAPI, attempts domain.AttemptRepository, cache domain.Cache) *Submitter {
	return &Submitter{api: api, attempts: attempts, cache: cache, now: time.Now}
}

func (s *Submitter) Submit(ctx context.Context, sess domain.Session, d domain.Draft) (Outcome, error) {
	out := Outcome{ID: uuid.NewString(), State: StateIdle}
	lg := log.With().Str("attempt", out.ID).Logger()
	step := func(to State) {
		lg.Debug().Str("from", out.State.String()).Str("to", to.String()).Msg("submission_state")
		out.State = to
	}

	step(StateValidating)
	if err := ValidateSelection(d.Selection); err != nil {
		step(StateRejected)
		s.finish(ctx, out, d, 0, "", err)
		return out, err
	}
	rooms := TranslateRooms(d.Selection)
	total := TotalRooms(rooms)
	if err := validateDraft(d, total); err != nil {
		step(StateRejected)
		s.finish(ctx, out, d, total, "", err)
		return out, err
	}

	// 1) Who is asking. No network I/O happens before this succeeds.
	token, userID, err := resolveSession(ctx, sess)
	if err != nil {
		step(StateRejected)
		s.finish(ctx, out, d, total, "", err)
		return out, err
	}

	// 2) Build the API payload.
	price := ComputePrice(d.Selection, d.Options)
	eta := EstimateDuration(total)
	turnaround := Turnaround(d.Options.Category)
	customer := normalizeCustomer(d.Customer)
	req := domain.BookingRequest{
		UserID: userID,
		CleaningData: domain.CleaningData{
			Category:            d.Options.Category,
			Package:             d.Options.Package,
			Items:               rooms,
			HomeSize:            d.Options.HomeSize,
			Frequency:           d.Options.Frequency,
			EstimatedPrice:      price.FinalPrice,
			EstimatedTime:       eta,
			PreferredTime:       d.PreferredTime,
			SpecialInstructions: customer.Notes,
			Turnaround:          turnaround,
		},
		BookingDetails: domain.BookingDetails{TotalRooms: total, PriceBreakdown: price},
		CustomerInfo:   customer,
	}
	out.Request = &req

	// 3) One POST, no retry.
	step(StateSubmitting)
	rec, err := s.api.CreateBooking(ctx, token, req)
	if err != nil {
		if domain.KindOf(err) == "" {
			err = domain.NetworkError(err)
		}
		step(StateFailed)
		s.finish(ctx, out, d, total, userID, err)
		return out, err
	}
	out.Record = rec
	step(StateSucceeded)

	// 4) Hand-off for the date/time step, then drop the stale dashboard list.
	bc := domain.BookingContext{
		Selection:     d.Selection,
		Options:       d.Options,
		Price:         price,
		Customer:      customer,
		EstimatedTime: eta,
		Turnaround:    turnaround,
		BookingID:     rec.ID(),
		SavedAt:       s.now().UTC(),
	}
	if err := sess.Stash(ctx, PendingBookingKey, bc); err != nil {
		lg.Warn().Err(err).Msg("stash booking context failed")
	}
	if s.cache != nil {
		if err := s.cache.Del(ctx, bookingsKey(userID)); err != nil {
			lg.Debug().Err(err).Str("user", userID).Msg("evict cached bookings failed")
		}
	}

	s.finish(ctx, out, d, total, userID, nil)
	return out, nil
}

// validateDraft checks everything but the selection bounds, which Submit
// checks first so the room total cannot overflow.
func validateDraft(d domain.Draft, totalRooms int) error {
	if totalRooms <= 0 {
		return domain.ValidationError(domain.MsgNoRooms)
	}
	if err := ValidateOptions(d.Options); err != nil {
		return err
	}
	for _, id := range d.Customer.SpecialRequests {
		if _, ok := domain.SpecialRequestIDs[id]; !ok {
			return domain.ValidationError(fmt.Sprintf("unknown special request %q", id))
		}
	}
	return nil
}

// normalizeCustomer turns the special-request list into a sorted set.
func normalizeCustomer(c domain.CustomerInfo) domain.CustomerInfo {
	seen := make(map[string]struct{}, len(c.SpecialRequests))
	reqs := make([]string, 0, len(c.SpecialRequests))
	for _, id := range c.SpecialRequests {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		reqs = append(reqs, id)
	}
	sort.Strings(reqs)
	c.SpecialRequests = reqs
	return c
}

// finish logs, counts and records a terminal state. Recording is best effort.
func (s *Submitter) finish(ctx context.Context, out Outcome, d domain.Draft, total int, userID string, err error) {
	kind := string(domain.KindOf(err))
	observability.ObserveSubmission(out.State.String(), kind)

	ev := log.Info()
	if err != nil {
		ev = log.Warn().Err(err)
	}
	ev.Str("attempt", out.ID).
		Str("state", out.State.String()).
		Str("kind", kind).
		Int("rooms", total).
		Msg("submission_finished")

	if s.attempts == nil {
		return
	}
	a := domain.AttemptLog{
		ID:         out.ID,
		Options:    d.Options,
		TotalRooms: total,
		State:      out.State.String(),
		CreatedAt:  s.now().UTC(),
	}
	if out.Request != nil {
		a.FinalPrice = out.Request.CleaningData.EstimatedPrice
	}
	if userID != "" {
		a.UserID = &userID
	}
	if err != nil {
		msg := err.Error()
		a.ErrorKind = &kind
		a.Message = &msg
	}
	if id := out.Record.ID(); id != "" {
		a.BookingID = &id
	}
	if rerr := s.attempts.RecordAttempt(ctx, a); rerr != nil && !errors.Is(rerr, context.Canceled) {
		log.Error().Err(rerr).Str("attempt", out.ID).Msg("record attempt failed")
	}
}
