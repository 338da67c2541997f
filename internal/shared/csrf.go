package shared

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
)

const (
	// CSRFSessionKey is the session value holding the active token.
	CSRFSessionKey = "csrf_token"
	// CSRFFormField is the form field dashboard forms post the token under.
	CSRFFormField = "csrf_token"

	csrfNonceSize = 16
)

// CSRFManager mints one token per session for the login and refresh forms.
// A token is a random nonce plus an HMAC over the session id and nonce, so
// it is self-authenticating: a token lifted from one session never verifies
// against another, even if an attacker can plant session values.
type CSRFManager struct {
	secret []byte
}

// NewCSRFManager derives a manager from the configured CSRF secret.
func NewCSRFManager(secret string) *CSRFManager {
	return &CSRFManager{secret: []byte(secret)}
}

// EnsureToken returns the session's token, minting one when the session has
// none yet or carries a token that no longer authenticates against its id.
func (m *CSRFManager) EnsureToken(ctx context.Context, sess *Session) (string, error) {
	if sess == nil {
		return "", errors.New("no session to bind csrf token to")
	}
	if token := sess.Get(CSRFSessionKey); token != "" && m.authentic(sess.ID, token) {
		return token, nil
	}
	nonce := make([]byte, csrfNonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	token := base64.RawURLEncoding.EncodeToString(append(nonce, m.tag(sess.ID, nonce)...))
	sess.Set(CSRFSessionKey, token)
	return token, nil
}

// VerifyToken accepts a submitted token only when it matches the session's
// stored token and its embedded HMAC checks out for this session id.
func (m *CSRFManager) VerifyToken(ctx context.Context, sess *Session, token string) error {
	if sess == nil || token == "" {
		return ErrCSRFTokenMissing
	}
	expected := sess.Get(CSRFSessionKey)
	if expected == "" {
		return ErrCSRFTokenMissing
	}
	if !hmac.Equal([]byte(expected), []byte(token)) {
		return ErrCSRFTokenMismatch
	}
	if !m.authentic(sess.ID, token) {
		return ErrCSRFTokenMismatch
	}
	return nil
}

func (m *CSRFManager) tag(sessionID string, nonce []byte) []byte {
	mac := hmac.New(sha256.New, m.secret)
	_, _ = mac.Write([]byte(sessionID))
	_, _ = mac.Write(nonce)
	return mac.Sum(nil)
}

func (m *CSRFManager) authentic(sessionID, token string) bool {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil || len(raw) <= csrfNonceSize {
		return false
	}
	return hmac.Equal(raw[csrfNonceSize:], m.tag(sessionID, raw[:csrfNonceSize]))
}
