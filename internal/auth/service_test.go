package auth

import (
	"errors"
	"testing"

	"github.com/retail-daya/retail-daya/internal/shared"
)

func testCredentials(t *testing.T, username, password string) Credentials {
	t.Helper()
	hash, err := Hash(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return Credentials{Username: username, PasswordHash: hash}
}

func TestHashVerifyRoundTrip(t *testing.T) {
	hash, err := Hash("rahasia-123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "rahasia-123" {
		t.Fatalf("hash must not be the plaintext")
	}
	if !Verify("rahasia-123", hash) {
		t.Fatalf("expected verification to pass")
	}
	if Verify("rahasia-124", hash) {
		t.Fatalf("wrong password must not verify")
	}
}

func TestHashesDiffer(t *testing.T) {
	a, err := Hash("sama")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := Hash("sama")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	// Each hash carries its own salt.
	if a == b {
		t.Fatalf("two hashes of the same password must differ")
	}
	if !Verify("sama", a) || !Verify("sama", b) {
		t.Fatalf("both hashes must verify the original password")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	if Verify("anything", "not-a-bcrypt-hash") {
		t.Fatalf("malformed hash must fail verification")
	}
	if Verify("anything", "") {
		t.Fatalf("empty hash must fail verification")
	}
}

func TestCheckCredentials(t *testing.T) {
	svc := NewService(testCredentials(t, "admin", "s3cret"))

	ok, err := svc.CheckCredentials("admin", "s3cret")
	if err != nil || !ok {
		t.Fatalf("expected match, got ok=%v err=%v", ok, err)
	}

	ok, err = svc.CheckCredentials("admin", "wrong")
	if err != nil || ok {
		t.Fatalf("wrong password must not match, got ok=%v err=%v", ok, err)
	}

	ok, err = svc.CheckCredentials("Admin", "s3cret")
	if err != nil || ok {
		t.Fatalf("username comparison is case-sensitive, got ok=%v err=%v", ok, err)
	}

	ok, err = svc.CheckCredentials("", "")
	if err != nil || ok {
		t.Fatalf("empty candidate must not match, got ok=%v err=%v", ok, err)
	}
}

func TestCheckCredentialsNotConfigured(t *testing.T) {
	svc := NewService(Credentials{})
	if _, err := svc.CheckCredentials("admin", "s3cret"); !errors.Is(err, shared.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestLoginAndLogoutSessionState(t *testing.T) {
	svc := NewService(testCredentials(t, "admin", "s3cret"))
	sess := &shared.Session{}

	if err := svc.Login(sess, "admin", "salah"); !errors.Is(err, shared.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if sess.Authenticated() {
		t.Fatalf("failed login must leave the session logged out")
	}

	if err := svc.Login(sess, "admin", "s3cret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !sess.Authenticated() || sess.User() != "admin" {
		t.Fatalf("expected authenticated session for admin, got %q", sess.User())
	}

	// Navigation selections survive logout.
	sess.Set(shared.SelectedPageKey, "unit-profile")
	svc.Logout(sess)
	if sess.Authenticated() {
		t.Fatalf("logout must drop authentication")
	}
	if sess.Get(shared.SelectedPageKey) != "unit-profile" {
		t.Fatalf("logout must keep navigation state")
	}
}
