package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"fundtrack/internal/domain"
)

type dashboardPayload struct {
	Intern struct {
		ID            string          `json:"id"`
		CurrentAmount decimal.Decimal `json:"current_amount"`
	} `json:"intern"`
	DonationCount   int              `json:"donation_count"`
	TotalDonated    decimal.Decimal  `json:"total_donated"`
	AverageDonation decimal.Decimal  `json:"average_donation"`
	Donations       []map[string]any `json:"donations"`
	Announcements   []map[string]any `json:"announcements"`
	Percentage      *float64         `json:"progress_percentage"`
	Clamped         *float64         `json:"progress_clamped"`
	Available       bool             `json:"progress_available"`
}

func TestDashboard(t *testing.T) {
	app := newTestApp(seedStore())
	req := asUser(httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil), "asha", domain.UserRoleIntern)
	rec := serve(app.Dashboard, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var got dashboardPayload
	decodeBody(t, rec, &got)

	if got.Intern.ID != "asha" {
		t.Fatalf("intern = %q", got.Intern.ID)
	}
	if got.Percentage == nil || *got.Percentage != 25 || got.Clamped == nil || *got.Clamped != 25 || !got.Available {
		t.Fatalf("unexpected progress: %+v", got)
	}
	if got.DonationCount != 2 || len(got.Donations) != 2 {
		t.Fatalf("donation count = %d (%d listed)", got.DonationCount, len(got.Donations))
	}
	if !got.AverageDonation.Equal(amt("125")) || !got.TotalDonated.Equal(amt("250")) {
		t.Fatalf("average = %s total = %s", got.AverageDonation, got.TotalDonated)
	}
	if len(got.Announcements) != dashboardAnnouncementLimit {
		t.Fatalf("got %d announcements, want %d", len(got.Announcements), dashboardAnnouncementLimit)
	}
}

func TestDashboardInvalidGoalFallsBack(t *testing.T) {
	app := newTestApp(seedStore())
	req := asUser(httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil), "chen", domain.UserRoleIntern)
	rec := serve(app.Dashboard, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got dashboardPayload
	decodeBody(t, rec, &got)
	if got.Percentage != nil || got.Clamped != nil || got.Available {
		t.Fatalf("expected unavailable progress, got %+v", got)
	}
	if !got.AverageDonation.IsZero() {
		t.Fatalf("average = %s, want 0", got.AverageDonation)
	}
}

func TestDashboardFetchFailure(t *testing.T) {
	store := seedStore()
	store.failDonations = errors.New("upstream down")
	app := newTestApp(store)
	req := asUser(httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil), "asha", domain.UserRoleIntern)
	rec := serve(app.Dashboard, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", rec.Code)
	}
	var body errorBody
	decodeBody(t, rec, &body)
	if body.Error.Code != "fetch_failed" {
		t.Fatalf("error code = %q", body.Error.Code)
	}
}
