package metrics

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"fundtrack/internal/domain"
)

// RankedEntry is one leaderboard row.
type RankedEntry struct {
	Intern domain.Intern
	// Progress is always all-time, whatever the window.
	Progress      Percentage
	DisplayAmount decimal.Decimal
	DonationCount int
	// Rank is the 0-based position after sorting.
	Rank int
}

// DisplayRank is the 1-based rank shown to users.
func (e RankedEntry) DisplayRank() int {
	return e.Rank + 1
}

// IsPodium reports whether the entry is in the top three.
func (e RankedEntry) IsPodium() bool {
	return e.Rank < 3
}

// LeaderboardOptions selects the window and truncation. A Limit of zero or
// less keeps every entry.
type LeaderboardOptions struct {
	Window Window
	Limit  int
}

// Leaderboard ranks interns by display amount, descending. Ties keep their
// input order. For WindowAll the display amount is the intern's running
// total; for other windows it is the sum of the intern's donations inside the
// window. Truncation happens after sorting.
func Leaderboard(now time.Time, interns []domain.Intern, donations []domain.Donation, opts LeaderboardOptions) []RankedEntry {
	grouped := groupByIntern(donations)
	_, windowed := opts.Window.Since(now)

	entries := make([]RankedEntry, 0, len(interns))
	for _, in := range interns {
		inWindow := FilterByWindow(now, opts.Window, grouped[in.ID])
		amount := in.CurrentAmount
		if windowed {
			amount = sumAmounts(inWindow)
		}
		entries = append(entries, RankedEntry{
			Intern:        in,
			Progress:      ProgressOf(in),
			DisplayAmount: amount,
			DonationCount: len(inWindow),
		})
	}

	slices.SortStableFunc(entries, func(a, b RankedEntry) int {
		return b.DisplayAmount.Cmp(a.DisplayAmount)
	})
	if opts.Limit > 0 && len(entries) > opts.Limit {
		entries = entries[:opts.Limit]
	}
	for i := range entries {
		entries[i].Rank = i
	}
	return entries
}
