package auth

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/retail-daya/retail-daya/internal/shared"
	"github.com/retail-daya/retail-daya/internal/view"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	templates, err := view.NewEngine()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	svc := NewService(testCredentials(t, "admin", "s3cret"))
	csrf := shared.NewCSRFManager("test-csrf-secret")
	logger := slog.Default()
	return NewHandler(logger, svc, templates, nil, csrf)
}

func postLogin(t *testing.T, h *Handler, sess *shared.Session, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))
	rec := httptest.NewRecorder()
	h.HandleLoginForTest(rec, req)
	return rec
}

func TestLoginSuccessRedirectsHome(t *testing.T) {
	h := newTestHandler(t)
	sess := &shared.Session{}

	rec := postLogin(t, h, sess, "admin", "s3cret")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect to /, got %q", loc)
	}
	if !sess.Authenticated() {
		t.Fatalf("expected authenticated session")
	}
}

func TestLoginWrongPasswordReRendersForm(t *testing.T) {
	h := newTestHandler(t)
	sess := &shared.Session{}

	rec := postLogin(t, h, sess, "admin", "salah")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if sess.Authenticated() {
		t.Fatalf("failed login must not authenticate")
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Username atau password salah") {
		t.Fatalf("expected generic failure message in body")
	}
	if strings.Contains(body, "salah\" name=\"password") {
		t.Fatalf("password must not be echoed back")
	}
}

func TestLoginMissingFieldsValidation(t *testing.T) {
	h := newTestHandler(t)
	sess := &shared.Session{}

	rec := postLogin(t, h, sess, "", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "wajib diisi") {
		t.Fatalf("expected required-field message")
	}
}

func TestLoginNotConfiguredIsServerError(t *testing.T) {
	templates, err := view.NewEngine()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	h := NewHandler(slog.Default(), NewService(Credentials{}), templates, nil, shared.NewCSRFManager("secret"))

	rec := postLogin(t, h, &shared.Session{}, "admin", "s3cret")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 when credentials are missing, got %d", rec.Code)
	}
}

func TestShowLoginRedirectsWhenAuthenticated(t *testing.T) {
	h := newTestHandler(t)
	sess := &shared.Session{}
	sess.SetUser("admin")

	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))
	rec := httptest.NewRecorder()
	h.ShowLoginForTest(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect for authenticated session, got %d", rec.Code)
	}
}
