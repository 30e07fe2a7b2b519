package domain

import (
	"fmt"
	"strings"
	"time"
)

// Priority enumerates announcement severities.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority validates s. An empty value means medium.
func ParsePriority(s string) (Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PriorityMedium, nil
	}
	switch p := Priority(s); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, s)
	}
}

// Severity orders priorities for display only.
func (p Priority) Severity() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Announcement is a message broadcast by an administrator.
type Announcement struct {
	ID        string
	Title     string
	Content   string
	Priority  Priority
	CreatedBy string
	CreatedAt time.Time
}
