package handlers

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"fundtrack/internal/domain"
	"fundtrack/internal/metrics"
)

// Amounts are serialised as decimal strings so no precision is lost.

type internDTO struct {
	ID              string          `json:"id"`
	Email           string          `json:"email"`
	FullName        string          `json:"full_name"`
	Phone           string          `json:"phone,omitempty"`
	Mentor          string          `json:"mentor,omitempty"`
	HasMentor       bool            `json:"has_mentor"`
	FundraisingGoal decimal.Decimal `json:"fundraising_goal"`
	CurrentAmount   decimal.Decimal `json:"current_amount"`
	CreatedAt       time.Time       `json:"created_at"`
}

func newInternDTO(in domain.Intern) internDTO {
	return internDTO{
		ID:              in.ID,
		Email:           in.Email,
		FullName:        in.FullName,
		Phone:           in.Phone,
		Mentor:          in.Mentor,
		HasMentor:       in.HasMentor(),
		FundraisingGoal: in.FundraisingGoal,
		CurrentAmount:   in.CurrentAmount,
		CreatedAt:       in.CreatedAt,
	}
}

// progressDTO carries both forms of a progress figure. When the goal is
// not positive both numbers are null and Available is false.
type progressDTO struct {
	Percentage *float64 `json:"progress_percentage"`
	Clamped    *float64 `json:"progress_clamped"`
	Available  bool     `json:"progress_available"`
}

func newProgressDTO(p metrics.Percentage) progressDTO {
	if !p.Valid {
		return progressDTO{}
	}
	raw := round2(p.Raw)
	clamped := round2(p.Clamped())
	return progressDTO{Percentage: &raw, Clamped: &clamped, Available: true}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

type donationDTO struct {
	ID            string          `json:"id"`
	InternID      string          `json:"intern_id"`
	DonorName     string          `json:"donor_name"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	DonationDate  string          `json:"donation_date"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

func newDonationDTO(d domain.Donation) donationDTO {
	return donationDTO{
		ID:            d.ID,
		InternID:      d.InternID,
		DonorName:     d.DonorName,
		Amount:        d.Amount,
		PaymentMethod: string(d.PaymentMethod),
		DonationDate:  d.DonationDate.Format(domain.DateLayout),
		Notes:         d.Notes,
		CreatedAt:     d.CreatedAt,
	}
}

func newDonationDTOs(items []domain.Donation) []donationDTO {
	out := make([]donationDTO, 0, len(items))
	for _, d := range items {
		out = append(out, newDonationDTO(d))
	}
	return out
}

type announcementDTO struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Priority  string    `json:"priority"`
	Severity  int       `json:"severity"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func newAnnouncementDTOs(items []domain.Announcement) []announcementDTO {
	out := make([]announcementDTO, 0, len(items))
	for _, a := range items {
		out = append(out, announcementDTO{
			ID:        a.ID,
			Title:     a.Title,
			Content:   a.Content,
			Priority:  string(a.Priority),
			Severity:  a.Priority.Severity(),
			CreatedBy: a.CreatedBy,
			CreatedAt: a.CreatedAt,
		})
	}
	return out
}

type rankedDTO struct {
	Rank          int             `json:"rank"`
	Podium        bool            `json:"podium"`
	Intern        internDTO       `json:"intern"`
	DisplayAmount decimal.Decimal `json:"display_amount"`
	DonationCount int             `json:"donation_count"`
	progressDTO
}

func newRankedDTOs(entries []metrics.RankedEntry) []rankedDTO {
	out := make([]rankedDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, rankedDTO{
			Rank:          e.DisplayRank(),
			Podium:        e.IsPodium(),
			Intern:        newInternDTO(e.Intern),
			DisplayAmount: e.DisplayAmount,
			DonationCount: e.DonationCount,
			progressDTO:   newProgressDTO(e.Progress),
		})
	}
	return out
}

type rosterDTO struct {
	Intern        internDTO `json:"intern"`
	DonationCount int       `json:"donation_count"`
	Active        bool      `json:"active"`
	progressDTO
}

func newRosterDTOs(entries []metrics.RosterEntry) []rosterDTO {
	out := make([]rosterDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, rosterDTO{
			Intern:        newInternDTO(e.Intern),
			DonationCount: e.DonationCount,
			Active:        e.Active,
			progressDTO:   newProgressDTO(e.Progress),
		})
	}
	return out
}
