// Package metrics derives progress figures, totals, time-windowed donation
// sets and rankings from a snapshot of interns and donations. Every function
// is pure: the caller supplies the snapshot and the reference instant.
package metrics

import (
	"github.com/shopspring/decimal"

	"fundtrack/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Percentage is a progress figure. Valid is false when the goal it was
// computed against was not positive; Raw is then meaningless.
type Percentage struct {
	Raw   float64
	Valid bool
}

// Clamped limits the figure to [0, 100] for progress bar widths.
func (p Percentage) Clamped() float64 {
	if !p.Valid {
		return 0
	}
	return clamp(p.Raw)
}

// Percent returns raised / goal * 100 without clamping.
func Percent(raised, goal decimal.Decimal) (float64, error) {
	if !goal.IsPositive() {
		return 0, domain.ErrInvalidGoal
	}
	return raised.Mul(hundred).Div(goal).InexactFloat64(), nil
}

// Progress is the intern's all-time progress, unclamped.
func Progress(intern domain.Intern) (float64, error) {
	return Percent(intern.CurrentAmount, intern.FundraisingGoal)
}

// ClampedProgress is Progress limited to [0, 100].
func ClampedProgress(intern domain.Intern) (float64, error) {
	p, err := Progress(intern)
	if err != nil {
		return 0, err
	}
	return clamp(p), nil
}

// ProgressOf folds Progress into a Percentage so view-models can carry the
// fallback instead of an error.
func ProgressOf(intern domain.Intern) Percentage {
	p, err := Progress(intern)
	if err != nil {
		return Percentage{}
	}
	return Percentage{Raw: p, Valid: true}
}

// Totals holds organisation-wide sums.
type Totals struct {
	Raised decimal.Decimal
	Goal   decimal.Decimal
}

// AggregateTotals sums current amounts and goals over interns.
func AggregateTotals(interns []domain.Intern) Totals {
	t := Totals{Raised: decimal.Zero, Goal: decimal.Zero}
	for _, in := range interns {
		t.Raised = t.Raised.Add(in.CurrentAmount)
		t.Goal = t.Goal.Add(in.FundraisingGoal)
	}
	return t
}

// OverallPercentage is Raised / Goal * 100, unclamped.
func (t Totals) OverallPercentage() (float64, error) {
	if !t.Goal.IsPositive() {
		return 0, domain.ErrEmptyDivisor
	}
	return t.Raised.Mul(hundred).Div(t.Goal).InexactFloat64(), nil
}

// AverageDonation is the mean amount; zero for an empty list.
func AverageDonation(donations []domain.Donation) decimal.Decimal {
	if len(donations) == 0 {
		return decimal.Zero
	}
	return sumAmounts(donations).Div(decimal.NewFromInt(int64(len(donations))))
}

// Overview feeds the admin overview cards.
type Overview struct {
	TotalInterns       int
	TotalRaised        decimal.Decimal
	TotalGoal          decimal.Decimal
	Overall            Percentage
	TotalDonationCount int
}

// Summarize computes the overview cards for a snapshot.
func Summarize(interns []domain.Intern, donations []domain.Donation) Overview {
	totals := AggregateTotals(interns)
	o := Overview{
		TotalInterns:       len(interns),
		TotalRaised:        totals.Raised,
		TotalGoal:          totals.Goal,
		TotalDonationCount: len(donations),
	}
	if pct, err := totals.OverallPercentage(); err == nil {
		o.Overall = Percentage{Raw: pct, Valid: true}
	}
	return o
}

// InternSummary feeds a single intern's dashboard.
type InternSummary struct {
	Progress      Percentage
	DonationCount int
	TotalDonated  decimal.Decimal
	Average       decimal.Decimal
}

// SummarizeIntern considers only donations that belong to intern.
func SummarizeIntern(intern domain.Intern, donations []domain.Donation) InternSummary {
	own := groupByIntern(donations)[intern.ID]
	return InternSummary{
		Progress:      ProgressOf(intern),
		DonationCount: len(own),
		TotalDonated:  sumAmounts(own),
		Average:       AverageDonation(own),
	}
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

func sumAmounts(donations []domain.Donation) decimal.Decimal {
	total := decimal.Zero
	for _, d := range donations {
		total = total.Add(d.Amount)
	}
	return total
}

func groupByIntern(donations []domain.Donation) map[string][]domain.Donation {
	grouped := make(map[string][]domain.Donation)
	for _, d := range donations {
		grouped[d.InternID] = append(grouped[d.InternID], d)
	}
	return grouped
}
