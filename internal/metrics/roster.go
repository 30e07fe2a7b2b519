package metrics

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"fundtrack/internal/domain"
)

// SortKey selects the roster ordering.
type SortKey string

const (
	SortByName     SortKey = "name"
	SortByAmount   SortKey = "amount"
	SortByProgress SortKey = "progress"
)

// ParseSortKey validates s. An empty value selects SortByProgress.
func ParseSortKey(s string) (SortKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SortByProgress, nil
	}
	switch k := SortKey(s); k {
	case SortByName, SortByAmount, SortByProgress:
		return k, nil
	default:
		return "", fmt.Errorf("%w: unknown sort key %q", domain.ErrInvalidInput, s)
	}
}

// ActivityFilter selects interns by recent activity.
type ActivityFilter string

const (
	FilterAll      ActivityFilter = "all"
	FilterActive   ActivityFilter = "active"
	FilterInactive ActivityFilter = "inactive"
)

// ParseActivityFilter validates s. An empty value selects FilterAll.
func ParseActivityFilter(s string) (ActivityFilter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FilterAll, nil
	}
	switch f := ActivityFilter(s); f {
	case FilterAll, FilterActive, FilterInactive:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown activity filter %q", domain.ErrInvalidInput, s)
	}
}

func (f ActivityFilter) keep(active bool) bool {
	switch f {
	case FilterActive:
		return active
	case FilterInactive:
		return !active
	default:
		return true
	}
}

// RosterEntry is one row of the administrative intern list.
type RosterEntry struct {
	Intern        domain.Intern
	Progress      Percentage
	DonationCount int
	Active        bool
}

// RosterOptions controls Roster. Locale drives name collation; the zero tag
// uses the root collation order.
type RosterOptions struct {
	Sort   SortKey
	Filter ActivityFilter
	Locale language.Tag
}

// Describe builds roster entries in input order without filtering.
func Describe(now time.Time, interns []domain.Intern, donations []domain.Donation) []RosterEntry {
	grouped := groupByIntern(donations)
	entries := make([]RosterEntry, 0, len(interns))
	for _, in := range interns {
		own := grouped[in.ID]
		entries = append(entries, RosterEntry{
			Intern:        in,
			Progress:      ProgressOf(in),
			DonationCount: len(own),
			Active:        HasRecentActivity(now, own),
		})
	}
	return entries
}

// Roster filters by activity first, then sorts the survivors by the
// selected key. Sorting is stable.
func Roster(now time.Time, interns []domain.Intern, donations []domain.Donation, opts RosterOptions) []RosterEntry {
	all := Describe(now, interns, donations)
	entries := make([]RosterEntry, 0, len(all))
	for _, e := range all {
		if opts.Filter.keep(e.Active) {
			entries = append(entries, e)
		}
	}

	switch opts.Sort {
	case SortByName:
		col := collate.New(opts.Locale)
		slices.SortStableFunc(entries, func(a, b RosterEntry) int {
			return col.CompareString(a.Intern.FullName, b.Intern.FullName)
		})
	case SortByAmount:
		slices.SortStableFunc(entries, func(a, b RosterEntry) int {
			return b.Intern.CurrentAmount.Cmp(a.Intern.CurrentAmount)
		})
	default:
		slices.SortStableFunc(entries, func(a, b RosterEntry) int {
			return compareProgressDesc(a.Progress, b.Progress)
		})
	}
	return entries
}

// compareProgressDesc orders valid figures descending, unavailable ones last.
func compareProgressDesc(a, b Percentage) int {
	switch {
	case a.Valid && b.Valid:
		return cmp.Compare(b.Raw, a.Raw)
	case a.Valid:
		return -1
	case b.Valid:
		return 1
	default:
		return 0
	}
}
