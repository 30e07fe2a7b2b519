package metrics

import (
	"fmt"
	"strings"
	"time"

	"fundtrack/internal/domain"
)

// Window selects a trailing period anchored at a reference instant.
type Window string

const (
	WindowAll     Window = "all"
	WindowDaily   Window = "daily"
	WindowWeekly  Window = "weekly"
	WindowMonthly Window = "monthly"
)

// ParseWindow validates s. An empty value selects WindowAll.
func ParseWindow(s string) (Window, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return WindowAll, nil
	}
	switch w := Window(s); w {
	case WindowAll, WindowDaily, WindowWeekly, WindowMonthly:
		return w, nil
	default:
		return "", fmt.Errorf("%w: unknown window %q", domain.ErrInvalidInput, s)
	}
}

// Since returns the inclusive lower bound of the window. ok is false when the
// window does not filter at all.
func (w Window) Since(now time.Time) (since time.Time, ok bool) {
	switch w {
	case WindowDaily:
		return now.AddDate(0, 0, -1), true
	case WindowWeekly:
		return now.AddDate(0, 0, -7), true
	case WindowMonthly:
		return MonthBefore(now), true
	default:
		return time.Time{}, false
	}
}

// MonthBefore steps back one calendar month, clamping the day to the length
// of the target month (Mar 31 becomes Feb 28 or 29).
func MonthBefore(t time.Time) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m-1, 1, 0, 0, 0, 0, t.Location())
	ty, tm, _ := first.Date()
	if last := daysIn(ty, tm, t.Location()); d > last {
		d = last
	}
	return time.Date(ty, tm, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// FilterByWindow keeps donations whose DonationDate is on or after the start
// of the window, preserving input order.
func FilterByWindow(now time.Time, w Window, donations []domain.Donation) []domain.Donation {
	since, ok := w.Since(now)
	out := make([]domain.Donation, 0, len(donations))
	for _, d := range donations {
		if ok && d.DonationDate.Before(since) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// ActivityWindow is the trailing period used for roster activity.
const ActivityWindow = 30 * 24 * time.Hour

// HasRecentActivity reports whether any donation record was created within
// ActivityWindow of now. It looks at CreatedAt, not DonationDate.
func HasRecentActivity(now time.Time, donations []domain.Donation) bool {
	cutoff := now.Add(-ActivityWindow)
	for _, d := range donations {
		if d.CreatedAt.After(cutoff) {
			return true
		}
	}
	return false
}
