package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/wingwing524/wallet-client/internal/api"
	"github.com/wingwing524/wallet-client/internal/storage"
)

func newTestManager(t *testing.T, handler http.HandlerFunc) (*Manager, *storage.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, err := storage.Open(filepath.Join(t.TempDir(), "wallet.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return New(api.New(srv.URL), store), store
}

func authHandler(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login", "/auth/register":
			w.Write([]byte(`{"token":"tok-1","user":{"id":"u1","username":"anna"}}`))
		case "/auth/profile":
			if r.Header.Get("Authorization") != "Bearer tok-1" {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"invalid token"}`))
				return
			}
			w.Write([]byte(`{"user":{"id":"u1","username":"anna"}}`))
		case "/auth/logout":
			w.Write([]byte(`{}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestLoginActivatesSession(t *testing.T) {
	m, store := newTestManager(t, authHandler(t))
	ctx := context.Background()

	if m.State() != Unauthenticated {
		t.Fatalf("initial state = %s, want unauthenticated", m.State())
	}
	if err := m.Login(ctx, "anna", "secret"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if m.State() != Authenticated {
		t.Errorf("state = %s, want authenticated", m.State())
	}
	if u := m.User(); u == nil || u.Username != "anna" {
		t.Errorf("User() = %+v, want anna", u)
	}

	token, err := store.Token(ctx)
	if err != nil || token != "tok-1" {
		t.Errorf("persisted token = %q, %v; want tok-1", token, err)
	}
}

func TestLoginFailureStaysSignedOut(t *testing.T) {
	m, store := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"bad credentials"}`))
	})
	ctx := context.Background()

	if err := m.Login(ctx, "anna", "wrong"); err == nil {
		t.Fatal("Login() error = nil, want error")
	}
	if m.State() != Unauthenticated {
		t.Errorf("state = %s, want unauthenticated", m.State())
	}
	if token, _ := store.Token(ctx); token != "" {
		t.Errorf("persisted token = %q, want empty", token)
	}
}

func TestRestoreValidToken(t *testing.T) {
	m, store := newTestManager(t, authHandler(t))
	ctx := context.Background()

	if err := store.SetToken(ctx, "tok-1"); err != nil {
		t.Fatal(err)
	}
	if err := m.Restore(ctx); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if m.State() != Authenticated {
		t.Errorf("state = %s, want authenticated", m.State())
	}
	if u := m.User(); u == nil || u.ID != "u1" {
		t.Errorf("User() = %+v, want u1", u)
	}
}

func TestRestoreNoToken(t *testing.T) {
	m, _ := newTestManager(t, authHandler(t))

	if err := m.Restore(context.Background()); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if m.State() != Unauthenticated {
		t.Errorf("state = %s, want unauthenticated", m.State())
	}
}

func TestRestoreRejectedTokenClearsState(t *testing.T) {
	m, store := newTestManager(t, authHandler(t))
	ctx := context.Background()

	if err := store.SetToken(ctx, "stale"); err != nil {
		t.Fatal(err)
	}
	if err := m.Restore(ctx); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if m.State() != Unauthenticated {
		t.Errorf("state = %s, want unauthenticated after rejected token", m.State())
	}
	if token, _ := store.Token(ctx); token != "" {
		t.Errorf("persisted token = %q, want cleared", token)
	}
}

func TestLogoutClearsEvenWhenServerFails(t *testing.T) {
	m, store := newTestManager(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			w.Write([]byte(`{"token":"tok-1","user":{"id":"u1","username":"anna"}}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})
	ctx := context.Background()

	if err := m.Login(ctx, "anna", "secret"); err != nil {
		t.Fatal(err)
	}
	if err := m.Logout(ctx); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if m.State() != Unauthenticated {
		t.Errorf("state = %s, want unauthenticated", m.State())
	}
	if token, _ := store.Token(ctx); token != "" {
		t.Errorf("persisted token = %q, want cleared", token)
	}
	if profile, _ := store.Profile(ctx); profile != nil {
		t.Errorf("cached profile = %+v, want nil", profile)
	}
}

func TestHandleErrorExpiresOnAuthFailure(t *testing.T) {
	m, _ := newTestManager(t, authHandler(t))
	ctx := context.Background()

	if err := m.Login(ctx, "anna", "secret"); err != nil {
		t.Fatal(err)
	}

	if expired := m.HandleError(ctx, &api.StatusError{StatusCode: http.StatusUnauthorized}); !expired {
		t.Error("HandleError(401) = false, want true")
	}
	if m.State() != Unauthenticated {
		t.Errorf("state = %s, want unauthenticated", m.State())
	}

	if expired := m.HandleError(ctx, api.ErrConnection); expired {
		t.Error("HandleError(connection) = true, want false")
	}
}
