package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// SessionCookie holds the demo session: base64 of a JSON object.
const SessionCookie = "session"

// CookieSession decodes the session cookie. A missing cookie is an empty
// session; a malformed one is an error.
func CookieSession(r *http.Request) (map[string]any, error) {
	c, err := r.Cookie(SessionCookie)
	if errors.Is(err, http.ErrNoCookie) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	raw, err := base64.URLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil, fmt.Errorf("decoding session cookie: %w", err)
	}
	var session map[string]any
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("parsing session cookie: %w", err)
	}
	return session, nil
}

// EncodeSession builds a session cookie value.
func EncodeSession(session map[string]any) (string, error) {
	raw, err := json.Marshal(session)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(raw), nil
}
