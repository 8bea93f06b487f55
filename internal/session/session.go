// Package session owns the authentication lifecycle: restoring a persisted
// token at startup, logging in and out, and expiring the session when the
// backend rejects the token.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/wingwing524/wallet-client/internal/api"
	"github.com/wingwing524/wallet-client/internal/core"
	"github.com/wingwing524/wallet-client/internal/storage"
)

// State is the session gate. All data screens require Authenticated; the
// other two states route to the login flow.
type State string

const (
	Unauthenticated State = "unauthenticated"
	Authenticating  State = "authenticating"
	Authenticated   State = "authenticated"
)

var ErrNotAuthenticated = errors.New("not authenticated")

type Manager struct {
	client *api.Client
	store  *storage.Store

	mu    sync.RWMutex
	state State
	user  *core.User
}

func New(client *api.Client, store *storage.Store) *Manager {
	return &Manager{
		client: client,
		store:  store,
		state:  Unauthenticated,
	}
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// User returns the current profile, or nil when signed out.
func (m *Manager) User() *core.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// Restore revives a previous session from the persisted token. The token is
// validated against the backend; a rejected token is discarded, but a
// connection failure keeps it and falls back to the cached profile so the
// app still opens offline.
func (m *Manager) Restore(ctx context.Context) error {
	token, err := m.store.Token(ctx)
	if err != nil {
		return fmt.Errorf("load persisted token: %w", err)
	}
	if token == "" {
		return nil
	}

	m.client.SetToken(token)
	user, err := m.client.Profile(ctx)
	switch {
	case err == nil:
		if err := m.store.SetProfile(ctx, user); err != nil {
			slog.WarnContext(ctx, "Failed to cache profile", "error", err)
		}
		m.activate(user)
		slog.InfoContext(ctx, "Session restored", "username", user.Username)
		return nil
	case errors.Is(err, api.ErrAuthRequired):
		slog.InfoContext(ctx, "Persisted token rejected, forcing re-login")
		return m.expire(ctx)
	case errors.Is(err, api.ErrConnection):
		cached, perr := m.store.Profile(ctx)
		if perr != nil || cached == nil {
			return fmt.Errorf("validate session offline: %w", err)
		}
		m.activate(*cached)
		slog.WarnContext(ctx, "Backend unreachable, restored session from cache",
			"username", cached.Username)
		return nil
	default:
		return fmt.Errorf("validate session: %w", err)
	}
}

// Login exchanges credentials for a token and installs it on the client and
// in local storage.
func (m *Manager) Login(ctx context.Context, identifier, password string) error {
	m.setState(Authenticating)

	resp, err := m.client.Login(ctx, identifier, password)
	if err != nil {
		m.setState(Unauthenticated)
		return err
	}
	return m.install(ctx, resp)
}

// Register creates an account and starts a session with the returned token.
func (m *Manager) Register(ctx context.Context, req api.RegisterRequest) error {
	m.setState(Authenticating)

	resp, err := m.client.Register(ctx, req)
	if err != nil {
		m.setState(Unauthenticated)
		return err
	}
	return m.install(ctx, resp)
}

// Logout tells the backend to drop the session, then clears local state.
// The server call is best effort: local sign-out proceeds even when it
// fails.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.client.Logout(ctx); err != nil {
		slog.WarnContext(ctx, "Server logout failed, clearing local session anyway", "error", err)
	}
	return m.expire(ctx)
}

// HandleError inspects an API error and expires the session when the
// backend reports the token is no longer valid. It returns true when the
// session was expired.
func (m *Manager) HandleError(ctx context.Context, err error) bool {
	if !errors.Is(err, api.ErrAuthRequired) {
		return false
	}
	if m.State() != Authenticated {
		return false
	}
	slog.InfoContext(ctx, "Token expired, signing out")
	if eerr := m.expire(ctx); eerr != nil {
		slog.WarnContext(ctx, "Failed to clear expired session", "error", eerr)
	}
	return true
}

func (m *Manager) install(ctx context.Context, resp api.AuthResponse) error {
	m.client.SetToken(resp.Token)
	if err := m.store.SetToken(ctx, resp.Token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	if err := m.store.SetProfile(ctx, resp.User); err != nil {
		return fmt.Errorf("persist profile: %w", err)
	}
	m.activate(resp.User)
	return nil
}

func (m *Manager) expire(ctx context.Context) error {
	m.client.ClearToken()
	m.mu.Lock()
	m.state = Unauthenticated
	m.user = nil
	m.mu.Unlock()

	if err := m.store.ClearToken(ctx); err != nil {
		return fmt.Errorf("clear persisted token: %w", err)
	}
	if err := m.store.ClearProfile(ctx); err != nil {
		return fmt.Errorf("clear cached profile: %w", err)
	}
	return nil
}

func (m *Manager) activate(user core.User) {
	m.mu.Lock()
	m.state = Authenticated
	m.user = &user
	m.mu.Unlock()
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}
