package handlers

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"fundtrack/internal/domain"
	"fundtrack/internal/metrics"
)

const dashboardAnnouncementLimit = 5

type dashboardResponse struct {
	Intern          internDTO         `json:"intern"`
	DonationCount   int               `json:"donation_count"`
	TotalDonated    decimal.Decimal   `json:"total_donated"`
	AverageDonation decimal.Decimal   `json:"average_donation"`
	Donations       []donationDTO     `json:"donations"`
	Announcements   []announcementDTO `json:"announcements"`
	progressDTO
}

// Dashboard is the intern's own view: progress, donation figures and the
// latest announcements.
func (a *App) Dashboard(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r)
	snap, err := a.Loader.LoadIntern(r.Context(), user.ID, dashboardAnnouncementLimit)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "intern profile not found")
			return
		}
		a.unavailable(w)
		return
	}
	summary := metrics.SummarizeIntern(snap.Intern, snap.Donations)
	a.json(w, http.StatusOK, dashboardResponse{
		Intern:          newInternDTO(snap.Intern),
		DonationCount:   summary.DonationCount,
		TotalDonated:    summary.TotalDonated,
		AverageDonation: summary.Average.Round(2),
		Donations:       newDonationDTOs(snap.Donations),
		Announcements:   newAnnouncementDTOs(snap.Announcements),
		progressDTO:     newProgressDTO(summary.Progress),
	})
}
