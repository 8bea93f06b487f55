package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/wingwing524/wallet-client/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "wallet.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_BudgetDefaultsTo1000(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Budget(context.Background())
	if err != nil {
		t.Fatalf("Budget: %v", err)
	}
	if !got.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Budget = %s, want 1000", got)
	}
}

func TestStore_SetBudgetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SetBudget(ctx, decimal.NewFromFloat(1500.50)); err != nil {
		t.Fatalf("SetBudget: %v", err)
	}
	got, err := s.Budget(ctx)
	if err != nil {
		t.Fatalf("Budget: %v", err)
	}
	if got.StringFixed(2) != "1500.50" {
		t.Errorf("Budget = %s, want 1500.50", got.StringFixed(2))
	}
}

func TestStore_SetBudgetRejectsNonPositive(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, v := range []int64{0, -5} {
		if err := s.SetBudget(ctx, decimal.NewFromInt(v)); !errors.Is(err, core.ErrInvalidAmount) {
			t.Errorf("SetBudget(%d) error = %v, want ErrInvalidAmount", v, err)
		}
	}
}

func TestStore_TokenLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	got, err := s.Token(ctx)
	if err != nil || got != "" {
		t.Fatalf("Token on fresh store = (%q, %v), want empty", got, err)
	}

	if err := s.SetToken(ctx, "bearer-xyz"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	got, _ = s.Token(ctx)
	if got != "bearer-xyz" {
		t.Errorf("Token = %q, want bearer-xyz", got)
	}

	if err := s.ClearToken(ctx); err != nil {
		t.Fatalf("ClearToken: %v", err)
	}
	got, _ = s.Token(ctx)
	if got != "" {
		t.Errorf("Token after clear = %q, want empty", got)
	}
}

func TestStore_ProfileRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	u, err := s.Profile(ctx)
	if err != nil || u != nil {
		t.Fatalf("Profile on fresh store = (%v, %v), want nil", u, err)
	}

	want := core.User{ID: "u1", Username: "casey", Email: "casey@example.com"}
	if err := s.SetProfile(ctx, want); err != nil {
		t.Fatalf("SetProfile: %v", err)
	}
	u, err = s.Profile(ctx)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if u == nil || *u != want {
		t.Errorf("Profile = %+v, want %+v", u, want)
	}
}

func TestStore_LanguageDefaultsToEnglish(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	lang, err := s.Language(ctx)
	if err != nil {
		t.Fatalf("Language: %v", err)
	}
	if lang != DefaultLanguage {
		t.Errorf("Language = %q, want %q", lang, DefaultLanguage)
	}

	if err := s.SetLanguage(ctx, "zh"); err != nil {
		t.Fatalf("SetLanguage: %v", err)
	}
	lang, _ = s.Language(ctx)
	if lang != "zh" {
		t.Errorf("Language = %q, want zh", lang)
	}
}
