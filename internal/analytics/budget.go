package analytics

import "github.com/shopspring/decimal"

// Status is the categorical budget band. Bands have inclusive lower bounds
// on the unclamped spend ratio.
type Status string

const (
	StatusHealthy  Status = "healthy"
	StatusCaution  Status = "caution"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

// Color returns the display color associated with the band.
func (s Status) Color() string {
	switch s {
	case StatusCritical:
		return "#FF3B30"
	case StatusWarning:
		return "#FF9500"
	case StatusCaution:
		return "#FFCC00"
	default:
		return "#34C759"
	}
}

// BudgetProgress relates monthly spend to the user's ceiling.
type BudgetProgress struct {
	Spent  decimal.Decimal
	Budget decimal.Decimal

	// Percent is the raw spend ratio in percent, unclamped; DisplayPercent
	// clamps it to [0,100] for rendering progress indicators.
	Percent        float64
	DisplayPercent float64

	Remaining  decimal.Decimal // never negative
	ExceededBy decimal.Decimal // zero unless spent > budget
	Status     Status

	// OnTrack reports spend at or under 80% of the ceiling, which drives
	// the positive-reinforcement insight.
	OnTrack bool
}

// Progress computes the budget view. A non-positive budget is treated as 1
// so the ratio is always defined.
func Progress(spent, budget decimal.Decimal) BudgetProgress {
	if spent.IsNegative() {
		spent = decimal.Zero
	}
	if !budget.IsPositive() {
		budget = decimal.NewFromInt(1)
	}

	percent := spent.Div(budget).InexactFloat64() * 100

	p := BudgetProgress{
		Spent:          spent,
		Budget:         budget,
		Percent:        percent,
		DisplayPercent: percent,
		Remaining:      budget.Sub(spent),
		ExceededBy:     decimal.Zero,
		Status:         StatusHealthy,
		OnTrack:        percent <= 80,
	}
	if p.DisplayPercent > 100 {
		p.DisplayPercent = 100
	}
	if p.DisplayPercent < 0 {
		p.DisplayPercent = 0
	}
	if p.Remaining.IsNegative() {
		p.Remaining = decimal.Zero
	}
	if spent.GreaterThan(budget) {
		p.ExceededBy = spent.Sub(budget)
	}

	switch {
	case percent >= 100:
		p.Status = StatusCritical
	case percent >= 80:
		p.Status = StatusWarning
	case percent >= 60:
		p.Status = StatusCaution
	}
	return p
}
