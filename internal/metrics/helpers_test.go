package metrics

import (
	"time"

	"github.com/shopspring/decimal"

	"fundtrack/internal/domain"
)

var refNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func intern(id, name, goal, current string) domain.Intern {
	return domain.Intern{
		ID:              id,
		FullName:        name,
		Email:           id + "@example.com",
		FundraisingGoal: amt(goal),
		CurrentAmount:   amt(current),
	}
}

func donation(id, internID, amount string, dated time.Time) domain.Donation {
	return domain.Donation{
		ID:            id,
		InternID:      internID,
		DonorName:     "donor " + id,
		Amount:        amt(amount),
		PaymentMethod: domain.PaymentCash,
		DonationDate:  domain.CalendarDate(dated),
		CreatedAt:     dated,
	}
}

func daysAgo(n int) time.Time {
	return refNow.AddDate(0, 0, -n)
}

func ids(entries []domain.Donation) []string {
	out := make([]string, 0, len(entries))
	for _, d := range entries {
		out = append(out, d.ID)
	}
	return out
}
