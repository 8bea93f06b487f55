// Package analytics derives summary views from a raw expense collection.
// Every result here is a pure function of (records, now, budget); nothing
// is cached or updated incrementally, so a recompute can never be stale.
package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wingwing524/wallet-client/internal/core"
)

// TopCategoryLimit caps the category ranking shown on the dashboard.
const TopCategoryLimit = 5

// RecentLimit caps the recent-expenses list.
const RecentLimit = 5

// CategoryTotal is one entry of the per-category ranking.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

// MonthlySummary aggregates the calendar month containing the reference
// date. Recent covers the whole collection, not just the month.
type MonthlySummary struct {
	Total          decimal.Decimal
	Count          int
	CategoryTotals map[string]decimal.Decimal
	TopCategories  []CategoryTotal
	Recent         []core.Expense
	AveragePerTx   decimal.Decimal
	DailyAverage   decimal.Decimal
}

// Summarize computes the aggregate for the calendar month containing now.
// Amounts decode defensively (see core.Amount), so a record with a garbage
// amount contributes zero rather than an error.
func Summarize(expenses []core.Expense, now time.Time) MonthlySummary {
	// Expense dates are UTC midnights (core.Date), so the window is built
	// in UTC regardless of the caller's location.
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)

	s := MonthlySummary{
		Total:          decimal.Zero,
		CategoryTotals: make(map[string]decimal.Decimal),
		TopCategories:  []CategoryTotal{},
		AveragePerTx:   decimal.Zero,
		DailyAverage:   decimal.Zero,
	}

	// firstSeen preserves insertion order so ranking ties break stably.
	var firstSeen []string
	for _, e := range expenses {
		d := e.Date.Time
		if d.Before(monthStart) || d.After(monthEnd) {
			continue
		}
		amount := e.Amount.Decimal
		if amount.IsNegative() {
			amount = decimal.Zero
		}
		s.Total = s.Total.Add(amount)
		s.Count++
		if _, ok := s.CategoryTotals[e.Category]; !ok {
			firstSeen = append(firstSeen, e.Category)
		}
		s.CategoryTotals[e.Category] = s.CategoryTotals[e.Category].Add(amount)
	}

	ranking := make([]CategoryTotal, 0, len(firstSeen))
	for _, name := range firstSeen {
		ranking = append(ranking, CategoryTotal{Category: name, Amount: s.CategoryTotals[name]})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Amount.GreaterThan(ranking[j].Amount)
	})
	if len(ranking) > TopCategoryLimit {
		ranking = ranking[:TopCategoryLimit]
	}
	s.TopCategories = ranking

	s.Recent = recentExpenses(expenses, RecentLimit)

	if s.Count > 0 {
		s.AveragePerTx = s.Total.Div(decimal.NewFromInt(int64(s.Count))).Round(2)
	}
	s.DailyAverage = s.Total.Div(decimal.NewFromInt(int64(now.Day()))).Round(2)

	return s
}

func recentExpenses(expenses []core.Expense, limit int) []core.Expense {
	recent := make([]core.Expense, len(expenses))
	copy(recent, expenses)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Date.After(recent[j].Date.Time)
	})
	if len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}
