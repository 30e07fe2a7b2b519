package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod enumerates how a donation was paid.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentOnline PaymentMethod = "online"
	PaymentCheque PaymentMethod = "cheque"
)

// PaymentMethods lists every accepted payment method.
var PaymentMethods = []PaymentMethod{PaymentCash, PaymentCard, PaymentOnline, PaymentCheque}

// ParsePaymentMethod validates s against the closed set of payment methods.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(PaymentMethods, m) {
		return "", fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, s)
	}
	return m, nil
}

// DateLayout is the wire and storage layout of donation dates.
const DateLayout = "2006-01-02"

// Donation represents a single gift logged by an intern.
type Donation struct {
	ID            string
	InternID      string
	DonorName     string
	Amount        decimal.Decimal
	PaymentMethod PaymentMethod
	// DonationDate is the calendar date of the gift at 00:00 UTC.
	DonationDate time.Time
	Notes        string
	CreatedAt    time.Time
}

// ParseDonationDate parses a YYYY-MM-DD calendar date.
func ParseDonationDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	return t, nil
}

// CalendarDate truncates t to midnight UTC of its own calendar day.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
