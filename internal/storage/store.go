// Package storage persists the client-local state that never touches the
// backend: the monthly budget ceiling, the auth token, the cached user
// profile, and the selected display language.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/wingwing524/wallet-client/internal/core"
)

// Setting keys. Fixed names so a reinstalled client finds its state again.
const (
	keyBudget   = "monthly_budget"
	keyToken    = "auth_token"
	keyProfile  = "user_profile"
	keyLanguage = "language"
)

// DefaultLanguage is assumed until the user picks one.
const DefaultLanguage = "en"

// DefaultBudget is the ceiling assumed before the user sets one.
var DefaultBudget = decimal.NewFromInt(1000)

// ErrNotFound reports a missing setting.
var ErrNotFound = errors.New("setting not found")

type Store struct {
	db *sql.DB
}

// Open creates the database file (and parent directory) if needed, runs
// migrations, and returns a ready store.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Budget returns the monthly ceiling, falling back to DefaultBudget when
// the user has never set one. It is read on every aggregate recomputation.
func (s *Store) Budget(ctx context.Context) (decimal.Decimal, error) {
	raw, err := s.get(ctx, keyBudget)
	if errors.Is(err, ErrNotFound) {
		return DefaultBudget, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		// A corrupted value must not brick the dashboard.
		return DefaultBudget, nil
	}
	return d, nil
}

func (s *Store) SetBudget(ctx context.Context, budget decimal.Decimal) error {
	if !budget.IsPositive() {
		return core.ErrInvalidAmount
	}
	return s.set(ctx, keyBudget, budget.StringFixed(2))
}

// Token returns the persisted bearer token, or "" when logged out.
func (s *Store) Token(ctx context.Context) (string, error) {
	raw, err := s.get(ctx, keyToken)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return raw, err
}

func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.set(ctx, keyToken, token)
}

func (s *Store) ClearToken(ctx context.Context) error {
	return s.delete(ctx, keyToken)
}

// Profile returns the cached user profile, or nil when none is stored.
func (s *Store) Profile(ctx context.Context) (*core.User, error) {
	raw, err := s.get(ctx, keyProfile)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var u core.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("decode cached profile: %w", err)
	}
	return &u, nil
}

func (s *Store) SetProfile(ctx context.Context, u core.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return s.set(ctx, keyProfile, string(raw))
}

func (s *Store) ClearProfile(ctx context.Context) error {
	return s.delete(ctx, keyProfile)
}

// Language returns the selected display language, defaulting to English.
func (s *Store) Language(ctx context.Context) (string, error) {
	raw, err := s.get(ctx, keyLanguage)
	if errors.Is(err, ErrNotFound) {
		return DefaultLanguage, nil
	}
	return raw, err
}

func (s *Store) SetLanguage(ctx context.Context, lang string) error {
	return s.set(ctx, keyLanguage, lang)
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read setting %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return fmt.Errorf("write setting %s: %w", key, err)
	}
	return nil
}

func (s *Store) delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete setting %s: %w", key, err)
	}
	return nil
}
