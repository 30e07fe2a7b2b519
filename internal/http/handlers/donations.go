package handlers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"fundtrack/internal/domain"
)

type donationRequest struct {
	DonorName     string          `json:"donor_name" validate:"required,max=200"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=cash card online cheque"`
	DonationDate  string          `json:"donation_date" validate:"omitempty,datetime=2006-01-02"`
	Notes         string          `json:"notes" validate:"max=2000"`
}

// DonationsCreate records a donation for the calling intern. The running
// total moves in the same statement as the insert.
func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r)
	var req donationRequest
	if err := a.decode(w, r, &req); err != nil {
		a.fail(w, r, err, "invalid payload")
		return
	}
	if !req.Amount.IsPositive() {
		a.error(w, http.StatusBadRequest, "bad_request", "amount must be positive")
		return
	}
	method, err := domain.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		a.fail(w, r, err, "invalid payment method")
		return
	}
	date := domain.CalendarDate(a.now())
	if req.DonationDate != "" {
		if date, err = domain.ParseDonationDate(req.DonationDate); err != nil {
			a.fail(w, r, err, "invalid donation date")
			return
		}
	}

	d := &domain.Donation{
		InternID:      user.ID,
		DonorName:     strings.TrimSpace(req.DonorName),
		Amount:        req.Amount,
		PaymentMethod: method,
		DonationDate:  date,
		Notes:         strings.TrimSpace(req.Notes),
	}
	if err := a.Donations.Record(r.Context(), d); err != nil {
		a.fail(w, r, err, "failed to record donation")
		return
	}
	a.Logger.Info().
		Str("intern_id", d.InternID).
		Str("donation_id", d.ID).
		Str("amount", d.Amount.String()).
		Msg("donation recorded")
	a.json(w, http.StatusCreated, newDonationDTO(*d))
}

// DonationsList returns the calling intern's donations, newest first.
func (a *App) DonationsList(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r)
	items, err := a.Donations.ListByIntern(r.Context(), user.ID)
	if err != nil {
		a.fail(w, r, err, "failed to load donations")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": newDonationDTOs(items)})
}
