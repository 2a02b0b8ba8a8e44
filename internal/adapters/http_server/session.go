package httpserver

import (
	"context"
	"net/http"

	"cleaning_booking/internal/domain"
)

const (
	SessionHeader = "X-Session-ID"
	AuthCookie    = "auth_token"
)

// SessionStore opens the scratch space of one client session.
type SessionStore interface {
	For(sessionID string) domain.Session
}

// cookieSession lets a browser cookie override the stored bearer token.
type cookieSession struct {
	domain.Session
	token string
}

func (c cookieSession) Credential(ctx context.Context) (string, error) {
	if c.token != "" {
		return c.token, nil
	}
	return c.Session.Credential(ctx)
}

func (h *Handlers) session(r *http.Request) domain.Session {
	sess := h.Sessions.For(r.Header.Get(SessionHeader))
	if ck, err := r.Cookie(AuthCookie); err == nil && ck.Value != "" {
		return cookieSession{Session: sess, token: ck.Value}
	}
	return sess
}
