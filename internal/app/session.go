package app

import (
	"context"
	"encoding/json"
	"strings"

	"cleaning_booking/internal/domain"
)

// resolveSession reads the bearer token and the user id for one call.
// Neither value is cached between calls.
func resolveSession(ctx context.Context, sess domain.Session) (token, userID string, err error) {
	if sess == nil {
		return "", "", domain.AuthError(domain.MsgNoCredential)
	}
	token, err = sess.Credential(ctx)
	if err != nil {
		return "", "", &domain.Error{Kind: domain.KindAuth, Message: domain.MsgNoCredential, Err: err}
	}
	if strings.TrimSpace(token) == "" {
		return "", "", domain.AuthError(domain.MsgNoCredential)
	}

	blob, err := sess.Identity(ctx)
	if err != nil {
		return "", "", &domain.Error{Kind: domain.KindAuth, Message: domain.MsgInvalidIdentity, Err: err}
	}
	userID, err = parseUserID(blob)
	if err != nil {
		return "", "", err
	}
	return token, userID, nil
}

// parseUserID accepts {"user_id": ...} or {"id": ...}, string or number.
func parseUserID(blob []byte) (string, error) {
	if len(blob) == 0 {
		return "", domain.AuthError(domain.MsgInvalidIdentity)
	}
	var u struct {
		UserID json.RawMessage `json:"user_id"`
		ID     json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(blob, &u); err != nil {
		return "", &domain.Error{Kind: domain.KindAuth, Message: domain.MsgInvalidIdentity, Err: err}
	}
	for _, raw := range []json.RawMessage{u.UserID, u.ID} {
		if id := idString(raw); id != "" {
			return id, nil
		}
	}
	return "", domain.AuthError(domain.MsgInvalidIdentity)
}

func idString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func bookingsKey(userID string) string { return "bookings:" + userID }
