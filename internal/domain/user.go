package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// UserRole enumerates supported roles.
type UserRole string

const (
	UserRoleIntern UserRole = "intern"
	UserRoleAdmin  UserRole = "admin"
)

// ParseUserRole maps the stored role string onto a UserRole.
func ParseUserRole(s string) (UserRole, error) {
	switch r := UserRole(strings.ToLower(strings.TrimSpace(s))); r {
	case UserRoleIntern, UserRoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, s)
	}
}

// Intern is a program participant tracked against a personal fundraising goal.
type Intern struct {
	ID              string
	Email           string
	FullName        string
	Phone           string
	Mentor          string
	FundraisingGoal decimal.Decimal
	CurrentAmount   decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasMentor reports whether a mentor has been assigned.
func (i Intern) HasMentor() bool {
	return strings.TrimSpace(i.Mentor) != ""
}

// AuthUser is the identity projection used for access-tier branching.
type AuthUser struct {
	ID       string
	Email    string
	FullName string
	Role     UserRole
}

// IsAdmin reports whether the user may manage interns and announcements.
func (u AuthUser) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// IsIntern reports whether the user fundraises.
func (u AuthUser) IsIntern() bool {
	return u.Role == UserRoleIntern
}

// NewProfile describes the profile row created after sign-up.
type NewProfile struct {
	ID       string
	Email    string
	FullName string
	Role     UserRole
}

// DefaultGoal returns the starting goal for a freshly created profile.
// Admins do not fundraise, so they start at zero.
func DefaultGoal(role UserRole, internGoal decimal.Decimal) decimal.Decimal {
	if role == UserRoleIntern {
		return internGoal
	}
	return decimal.Zero
}
