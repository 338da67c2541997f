package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/retail-daya/retail-daya/internal/shared"
)

// Service wraps the credential gate. There is exactly one credential pair per
// process; sessions carry the authenticated state.
type Service struct {
	creds Credentials
}

// NewService constructs a new Service.
func NewService(creds Credentials) *Service {
	return &Service{creds: creds}
}

// Hash produces a self-describing bcrypt hash for plaintext. Only the hashpw
// tool calls this; the serving path verifies stored hashes and never mints one.
func Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify checks plaintext against a bcrypt hash string. A malformed hash is a
// verification failure, never a panic or an error surfaced to the caller.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// CheckCredentials returns true only when both the username and the password
// match the stored record. The bcrypt comparison runs regardless of whether
// the username matched, so a wrong username costs the same as a wrong
// password. Username comparison is exact and case-sensitive.
func (s *Service) CheckCredentials(username, password string) (bool, error) {
	if !s.creds.Configured() {
		return false, shared.ErrNotConfigured
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.creds.Username)) == 1
	passOK := Verify(password, s.creds.PasswordHash)
	return userOK && passOK, nil
}

// Login transitions the session to LoggedIn when the candidate pair checks
// out, otherwise leaves it logged out and reports ErrInvalidCredentials.
func (s *Service) Login(sess *shared.Session, username, password string) error {
	ok, err := s.CheckCredentials(username, password)
	if err != nil {
		return err
	}
	if !ok {
		return shared.ErrInvalidCredentials
	}
	if sess != nil {
		sess.SetUser(username)
	}
	return nil
}

// Logout unconditionally drops authentication. Navigation selections stay in
// the session so the user returns to the same page after logging back in.
func (s *Service) Logout(sess *shared.Session) {
	if sess != nil {
		sess.ClearUser()
	}
}
