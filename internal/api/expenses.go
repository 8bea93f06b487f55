package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/wingwing524/wallet-client/internal/core"
)

// ExpenseFilter narrows a listing. Zero values mean "no filter".
type ExpenseFilter struct {
	Month    int
	Year     int
	Category string
}

func (f ExpenseFilter) query() url.Values {
	q := url.Values{}
	if f.Month > 0 {
		q.Set("month", strconv.Itoa(f.Month))
	}
	if f.Year > 0 {
		q.Set("year", strconv.Itoa(f.Year))
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	return q
}

func (f ExpenseFilter) cacheKey() string {
	return fmt.Sprintf("expenses?m=%d&y=%d&c=%s", f.Month, f.Year, f.Category)
}

// ListExpenses fetches the expense collection, optionally filtered.
// Results are cached briefly; any successful mutation invalidates them.
func (c *Client) ListExpenses(ctx context.Context, f ExpenseFilter) ([]core.Expense, error) {
	key := f.cacheKey()
	if cached, ok := c.expenseCache.Get(key); ok {
		return cached, nil
	}

	var expenses []core.Expense
	if err := c.do(ctx, http.MethodGet, "/expenses", f.query(), nil, &expenses); err != nil {
		return nil, fmt.Errorf("fetch expenses: %w", err)
	}
	c.expenseCache.Set(key, expenses)
	return expenses, nil
}

// GetExpense fetches one record by ID.
func (c *Client) GetExpense(ctx context.Context, id string) (core.Expense, error) {
	var e core.Expense
	if err := c.do(ctx, http.MethodGet, "/expenses/"+url.PathEscape(id), nil, nil, &e); err != nil {
		return core.Expense{}, fmt.Errorf("fetch expense %s: %w", id, err)
	}
	return e, nil
}

// CreateExpense persists a new record and returns the canonical stored
// version. Local state must not be updated until this succeeds.
func (c *Client) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	var created core.Expense
	if err := c.do(ctx, http.MethodPost, "/expenses", nil, e, &created); err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}
	c.expenseCache.Invalidate()
	slog.InfoContext(ctx, "Expense created",
		"id", created.ID,
		"category", created.Category,
		"amount", created.Amount.String())
	return created, nil
}

// UpdateExpense replaces the record with the given ID.
func (c *Client) UpdateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	var updated core.Expense
	if err := c.do(ctx, http.MethodPut, "/expenses/"+url.PathEscape(e.ID), nil, e, &updated); err != nil {
		return core.Expense{}, fmt.Errorf("update expense %s: %w", e.ID, err)
	}
	c.expenseCache.Invalidate()
	return updated, nil
}

// DeleteExpense removes the record with the given ID.
func (c *Client) DeleteExpense(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/expenses/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete expense %s: %w", id, err)
	}
	c.expenseCache.Invalidate()
	slog.InfoContext(ctx, "Expense deleted", "id", id)
	return nil
}

// Categories fetches the server-provided category list, cached briefly.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	const key = "categories"
	if cached, ok := c.categoryCache.Get(key); ok {
		return cached, nil
	}

	var categories []string
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &categories); err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	c.categoryCache.Set(key, categories)
	return categories, nil
}
