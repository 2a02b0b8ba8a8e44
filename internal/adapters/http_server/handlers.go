// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"cleaning_booking/internal/adapters/observability"
	"cleaning_booking/internal/app"
	"cleaning_booking/internal/domain"
)

const maxBody = 1 << 20

type Handlers struct {
	Submitter *app.Submitter
	Queries   *app.BookingQueryService
	Sessions  SessionStore
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
	Kind   string `json:"kind,omitempty"`
}

type quoteRequest struct {
	Selection domain.RoomSelection  `json:"selection"`
	Options   domain.ServiceOptions `json:"options"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/quote", h.quote)
	s.mux.Post("/v1/bookings", h.createBooking)
	s.mux.Get("/v1/bookings", h.listBookings)
	s.mux.Get("/v1/submissions", h.listSubmissions)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	writeKindProblem(w, status, title, detail, "")
}

func writeKindProblem(w http.ResponseWriter, status int, title, detail string, kind domain.Kind) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	p := problem{Type: "about:blank", Title: title, Status: status, Detail: detail, Kind: string(kind)}
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps a failed call onto a problem response by error kind.
func writeError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)
	switch {
	case kind == domain.KindValidation:
		writeKindProblem(w, http.StatusUnprocessableEntity, "Invalid Booking", err.Error(), kind)
	case kind == domain.KindAuth:
		writeKindProblem(w, http.StatusUnauthorized, "Unauthorized", err.Error(), kind)
	case kind == domain.KindNetwork:
		writeKindProblem(w, http.StatusServiceUnavailable, "Booking Service Unreachable", err.Error(), kind)
	case kind == domain.KindServer:
		writeKindProblem(w, http.StatusBadGateway, "Booking Service Error", err.Error(), kind)
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "resource not found")
	default:
		log.Error().Err(err).Msg("unclassified handler error")
		writeProblem(w, http.StatusBadGateway, "Bad Gateway", "upstream call failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Malformed Body", "request body must be valid JSON")
		return false
	}
	return true
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeWithETag(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write body")
	}
}

func (h *Handlers) quote(w http.ResponseWriter, r *http.Request) {
	var in quoteRequest
	if !decodeBody(w, r, &in) {
		return
	}
	if err := app.ValidateSelection(in.Selection); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Selection", err.Error())
		return
	}
	if err := app.ValidateOptions(in.Options); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Options", err.Error())
		return
	}
	q := app.BuildQuote(in.Selection, in.Options)
	observability.ObserveQuote(q.Price.FinalPrice)
	writeJSON(w, http.StatusOK, q)
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var d domain.Draft
	if !decodeBody(w, r, &d) {
		return
	}
	out, err := h.Submitter.Submit(r.Context(), h.session(r), d)
	w.Header().Set("X-Attempt-ID", out.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"data": out.Record})
}

func (h *Handlers) listBookings(w http.ResponseWriter, r *http.Request) {
	recs, err := h.Queries.ListBookings(r.Context(), h.session(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeWithETag(w, r, map[string]any{"data": recs})
}

func (h *Handlers) listSubmissions(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		limit = l
	}

	out, err := h.Queries.RecentAttempts(r.Context(), h.session(r), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if out == nil {
		out = []domain.AttemptLog{}
	}
	writeWithETag(w, r, map[string]any{"data": out})
}
