// Package composer ties the collaborators together into the operations the
// UI calls: loading screen snapshots, adding expenses with formula amounts,
// filtering the list, and computing the dashboard.
package composer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/wingwing524/wallet-client/internal/analytics"
	"github.com/wingwing524/wallet-client/internal/api"
	"github.com/wingwing524/wallet-client/internal/core"
	"github.com/wingwing524/wallet-client/internal/formula"
	"github.com/wingwing524/wallet-client/internal/search"
	"github.com/wingwing524/wallet-client/internal/session"
	"github.com/wingwing524/wallet-client/internal/storage"
)

type Composer struct {
	client  *api.Client
	session *session.Manager
	store   *storage.Store

	now func() time.Time
}

type Option func(*Composer)

// WithClock fixes the reference clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Composer) { c.now = now }
}

func New(client *api.Client, sess *session.Manager, store *storage.Store, opts ...Option) *Composer {
	c := &Composer{
		client:  client,
		session: sess,
		store:   store,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot is everything the main screen needs in one load.
type Snapshot struct {
	Expenses   []core.Expense
	Categories []string
	Friends    []core.Friend
}

// Load fetches the snapshot collaborators concurrently. Friends are only
// fetched for an authenticated session; the social tab is hidden otherwise.
func (c *Composer) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		expenses, err := c.client.ListExpenses(gctx, api.ExpenseFilter{})
		if err != nil {
			return err
		}
		snap.Expenses = expenses
		return nil
	})
	g.Go(func() error {
		categories, err := c.client.Categories(gctx)
		if err != nil {
			return err
		}
		snap.Categories = categories
		return nil
	})
	if c.session.State() == session.Authenticated {
		g.Go(func() error {
			friends, err := c.client.Friends(gctx)
			if err != nil {
				return err
			}
			snap.Friends = friends
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		c.session.HandleError(ctx, err)
		return Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	return snap, nil
}

// Dashboard is the monthly aggregate paired with budget progress.
type Dashboard struct {
	Summary analytics.MonthlySummary
	Budget  analytics.BudgetProgress
}

// Dashboard recomputes the monthly view from scratch. The budget ceiling is
// re-read on every call so a budget change is reflected immediately.
func (c *Composer) Dashboard(ctx context.Context) (Dashboard, error) {
	now := c.now()
	expenses, err := c.client.ListExpenses(ctx, api.ExpenseFilter{
		Month: int(now.Month()),
		Year:  now.Year(),
	})
	if err != nil {
		c.session.HandleError(ctx, err)
		return Dashboard{}, fmt.Errorf("load dashboard: %w", err)
	}

	budget, err := c.store.Budget(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("read budget: %w", err)
	}

	summary := analytics.Summarize(expenses, now)
	return Dashboard{
		Summary: summary,
		Budget:  analytics.Progress(summary.Total, budget),
	}, nil
}

// SetBudget persists a new monthly ceiling.
func (c *Composer) SetBudget(ctx context.Context, budget decimal.Decimal) error {
	return c.store.SetBudget(ctx, budget)
}

// ListItem is one row of the filtered list, with match highlighting applied
// to the text fields.
type ListItem struct {
	core.Expense
	TitleHTML       string
	DescriptionHTML string
}

// List filters the expense collection by the query and marks where each
// row matched. An empty query returns every row.
func (c *Composer) List(ctx context.Context, query string) ([]ListItem, error) {
	expenses, err := c.client.ListExpenses(ctx, api.ExpenseFilter{})
	if err != nil {
		c.session.HandleError(ctx, err)
		return nil, fmt.Errorf("load expenses: %w", err)
	}

	matched := search.Filter(expenses, query, func(e core.Expense) []string {
		return []string{e.Title, e.Description, e.Category}
	})

	items := make([]ListItem, 0, len(matched))
	for _, e := range matched {
		items = append(items, ListItem{
			Expense:         e,
			TitleHTML:       search.Highlight(e.Title, query),
			DescriptionHTML: search.Highlight(e.Description, query),
		})
	}
	return items, nil
}

// ExpenseInput is the add/edit form. RawAmount may be a plain number or an
// arithmetic formula ("12.50+3*2").
type ExpenseInput struct {
	Title       string
	RawAmount   string
	Category    string
	Date        core.Date
	Description string
}

// PreviewAmount evaluates the amount field as the user types, returning the
// two-decimal result shown next to the input.
func (c *Composer) PreviewAmount(raw string) (string, error) {
	d, err := formula.Evaluate(raw)
	if err != nil {
		return "", err
	}
	return d.StringFixed(2), nil
}

// AddExpense evaluates the amount, normalizes the category, and persists
// the record. Local state only changes after the backend confirms, so a
// failed create leaves nothing half-added.
func (c *Composer) AddExpense(ctx context.Context, in ExpenseInput) (core.Expense, error) {
	amount, err := formula.Evaluate(in.RawAmount)
	if err != nil {
		return core.Expense{}, fmt.Errorf("evaluate amount: %w", err)
	}

	e := core.Expense{
		Title:       strings.TrimSpace(in.Title),
		Amount:      core.NewAmount(amount),
		Category:    c.normalizeCategory(ctx, in.Category),
		Date:        in.Date,
		Description: strings.TrimSpace(in.Description),
	}
	if e.Date.IsZero() {
		e.Date = core.Today(c.now())
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	created, err := c.client.CreateExpense(ctx, e)
	if err != nil {
		c.session.HandleError(ctx, err)
		return core.Expense{}, err
	}
	return created, nil
}

// QuickAdd records a preset amount in one tap, dated today.
func (c *Composer) QuickAdd(ctx context.Context, amount decimal.Decimal, category string) (core.Expense, error) {
	e := core.Expense{
		Amount:   core.NewAmount(amount),
		Category: c.normalizeCategory(ctx, category),
		Date:     core.Today(c.now()),
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	created, err := c.client.CreateExpense(ctx, e)
	if err != nil {
		c.session.HandleError(ctx, err)
		return core.Expense{}, err
	}
	return created, nil
}

// UpdateExpense re-evaluates the form and replaces the stored record.
func (c *Composer) UpdateExpense(ctx context.Context, id string, in ExpenseInput) (core.Expense, error) {
	amount, err := formula.Evaluate(in.RawAmount)
	if err != nil {
		return core.Expense{}, fmt.Errorf("evaluate amount: %w", err)
	}

	e := core.Expense{
		ID:          id,
		Title:       strings.TrimSpace(in.Title),
		Amount:      core.NewAmount(amount),
		Category:    c.normalizeCategory(ctx, in.Category),
		Date:        in.Date,
		Description: strings.TrimSpace(in.Description),
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	updated, err := c.client.UpdateExpense(ctx, e)
	if err != nil {
		c.session.HandleError(ctx, err)
		return core.Expense{}, err
	}
	return updated, nil
}

// DeleteExpense removes a record after backend confirmation.
func (c *Composer) DeleteExpense(ctx context.Context, id string) error {
	if err := c.client.DeleteExpense(ctx, id); err != nil {
		c.session.HandleError(ctx, err)
		return err
	}
	return nil
}

// normalizeCategory falls back to the default for blank input and corrects
// near-miss typos against the server's category list. Category lookup is
// best effort: when the list is unavailable the input stands as typed.
func (c *Composer) normalizeCategory(ctx context.Context, input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return core.DefaultCategory
	}
	known, err := c.client.Categories(ctx)
	if err != nil {
		return trimmed
	}
	return search.SuggestCategory(trimmed, known)
}
