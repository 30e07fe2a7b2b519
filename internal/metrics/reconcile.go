package metrics

import (
	"github.com/shopspring/decimal"

	"fundtrack/internal/domain"
)

// Drift describes an intern whose running total disagrees with the sum of
// their donation records.
type Drift struct {
	Intern     domain.Intern
	Recorded   decimal.Decimal
	Summed     decimal.Decimal
	Difference decimal.Decimal
}

// Reconcile returns every intern whose CurrentAmount differs from the sum of
// their donations, in input order.
func Reconcile(interns []domain.Intern, donations []domain.Donation) []Drift {
	grouped := groupByIntern(donations)
	var drifts []Drift
	for _, in := range interns {
		summed := sumAmounts(grouped[in.ID])
		if summed.Equal(in.CurrentAmount) {
			continue
		}
		drifts = append(drifts, Drift{
			Intern:     in,
			Recorded:   in.CurrentAmount,
			Summed:     summed,
			Difference: in.CurrentAmount.Sub(summed),
		})
	}
	return drifts
}
