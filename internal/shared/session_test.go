package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestManager(t *testing.T) (*SessionManager, func()) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sm := NewSessionManager(client, "retaildaya_session", "test-secret", time.Hour, false)
	return sm, func() {
		_ = client.Close()
		mr.Close()
	}
}

func commitAndReload(t *testing.T, sm *SessionManager, sess *Session) *Session {
	t.Helper()
	ctx := context.Background()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if err := sm.Commit(ctx, rec, req, sess); err != nil {
		t.Fatalf("commit: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("expected session cookie")
	}
	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookies[0])
	loaded, err := sm.Load(ctx, next)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return loaded
}

func TestSessionRoundTrip(t *testing.T) {
	sm, cleanup := newTestManager(t)
	defer cleanup()

	sess, err := sm.Load(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("load fresh: %v", err)
	}
	sess.SetUser("admin")
	sess.Set(SelectedPageKey, "unit-profile")

	loaded := commitAndReload(t, sm, sess)
	if !loaded.Authenticated() || loaded.User() != "admin" {
		t.Fatalf("expected authenticated reload, got %q", loaded.User())
	}
	if loaded.Get(SelectedPageKey) != "unit-profile" {
		t.Fatalf("expected navigation value to persist")
	}
}

func TestLogoutKeepsNavigationAcrossCommit(t *testing.T) {
	sm, cleanup := newTestManager(t)
	defer cleanup()

	sess, _ := sm.Load(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	sess.SetUser("admin")
	sess.Set(SelectedPageKey, "customer-profile")
	sess.Set(SelectedCategoryKey, "Profile H1")

	loaded := commitAndReload(t, sm, sess)
	loaded.ClearUser()
	reloaded := commitAndReload(t, sm, loaded)

	if reloaded.Authenticated() {
		t.Fatalf("logout must persist as logged out")
	}
	if reloaded.Get(SelectedPageKey) != "customer-profile" || reloaded.Get(SelectedCategoryKey) != "Profile H1" {
		t.Fatalf("navigation selections must survive logout")
	}
}

func TestDestroyDeletesSession(t *testing.T) {
	sm, cleanup := newTestManager(t)
	defer cleanup()
	ctx := context.Background()

	sess, _ := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	sess.SetUser("admin")
	loaded := commitAndReload(t, sm, sess)

	sm.Destroy(loaded)
	rec := httptest.NewRecorder()
	if err := sm.Commit(ctx, rec, httptest.NewRequest(http.MethodGet, "/", nil), loaded); err != nil {
		t.Fatalf("commit destroy: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Fatalf("expected expired cookie, got %+v", cookies)
	}

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(&http.Cookie{Name: sm.CookieName(), Value: loaded.ID})
	reloaded, err := sm.Load(ctx, next)
	if err != nil {
		t.Fatalf("load after destroy: %v", err)
	}
	if reloaded.Authenticated() {
		t.Fatalf("destroyed session must not come back authenticated")
	}
}

func TestFlashPopOnce(t *testing.T) {
	sm, cleanup := newTestManager(t)
	defer cleanup()

	sess, _ := sm.Load(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	sess.AddFlash(FlashMessage{Kind: "success", Message: "Selamat datang kembali"})

	msg := sess.PopFlash()
	if msg == nil || msg.Message != "Selamat datang kembali" {
		t.Fatalf("expected queued flash, got %+v", msg)
	}
	if sess.PopFlash() != nil {
		t.Fatalf("flash must pop only once")
	}
}

func TestCSRFTokenStableAndVerified(t *testing.T) {
	m := NewCSRFManager("csrf-secret")
	sess := &Session{ID: "abc"}
	ctx := context.Background()

	token, err := m.EnsureToken(ctx, sess)
	if err != nil || token == "" {
		t.Fatalf("ensure token: %q %v", token, err)
	}
	again, err := m.EnsureToken(ctx, sess)
	if err != nil || again != token {
		t.Fatalf("token must be stable per session, got %q then %q", token, again)
	}
	if err := m.VerifyToken(ctx, sess, token); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := m.VerifyToken(ctx, sess, "forged"); err == nil {
		t.Fatalf("forged token must fail")
	}
	if err := m.VerifyToken(ctx, sess, ""); err == nil {
		t.Fatalf("empty token must fail")
	}
}

func TestCSRFTokenBoundToSession(t *testing.T) {
	m := NewCSRFManager("csrf-secret")
	ctx := context.Background()

	first := &Session{ID: "abc"}
	token, err := m.EnsureToken(ctx, first)
	if err != nil {
		t.Fatalf("ensure token: %v", err)
	}

	// Planting a foreign token in another session's store must not make
	// it verify there.
	second := &Session{ID: "def"}
	second.Set(CSRFSessionKey, token)
	if err := m.VerifyToken(ctx, second, token); err == nil {
		t.Fatalf("token for session %q must not verify for %q", first.ID, second.ID)
	}

	reminted, err := m.EnsureToken(ctx, second)
	if err != nil {
		t.Fatalf("ensure token: %v", err)
	}
	if reminted == token {
		t.Fatalf("second session must get its own token")
	}
	if err := m.VerifyToken(ctx, second, reminted); err != nil {
		t.Fatalf("verify reminted: %v", err)
	}
}

func TestCSRFTokenRemintedWhenStoreCorrupted(t *testing.T) {
	m := NewCSRFManager("csrf-secret")
	ctx := context.Background()

	sess := &Session{ID: "abc"}
	sess.Set(CSRFSessionKey, "not-a-token")
	token, err := m.EnsureToken(ctx, sess)
	if err != nil {
		t.Fatalf("ensure token: %v", err)
	}
	if token == "not-a-token" {
		t.Fatalf("corrupted token must be replaced")
	}
	if err := m.VerifyToken(ctx, sess, token); err != nil {
		t.Fatalf("verify: %v", err)
	}
}
