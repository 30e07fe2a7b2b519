package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"fundtrack/internal/metrics"
	"fundtrack/internal/middleware"
)

const (
	overviewTopPerformers = 5
	overviewAnnouncements = 3
)

type overviewResponse struct {
	TotalInterns       int               `json:"total_interns"`
	TotalRaised        decimal.Decimal   `json:"total_raised"`
	TotalGoal          decimal.Decimal   `json:"total_goal"`
	TotalRaisedDisplay string            `json:"total_raised_display"`
	TotalGoalDisplay   string            `json:"total_goal_display"`
	OverallPercentage  *float64          `json:"overall_percentage"`
	OverallClamped     *float64          `json:"overall_progress_clamped"`
	OverallAvailable   bool              `json:"overall_available"`
	TotalDonationCount int               `json:"total_donation_count"`
	TopPerformers      []rankedDTO       `json:"top_performers"`
	Announcements      []announcementDTO `json:"recent_announcements"`
}

// AdminOverview feeds the admin summary cards. The *_display totals are
// grouped for the request locale.
func (a *App) AdminOverview(w http.ResponseWriter, r *http.Request) {
	snap, err := a.Loader.Load(r.Context())
	if err != nil {
		a.unavailable(w)
		return
	}
	now := a.now()
	locale := middleware.LocaleFromContext(r.Context())
	ov := metrics.Summarize(snap.Interns, snap.Donations)
	overall := newProgressDTO(ov.Overall)
	top := metrics.Leaderboard(now, snap.Interns, snap.Donations, metrics.LeaderboardOptions{
		Window: metrics.WindowAll,
		Limit:  overviewTopPerformers,
	})
	recent := snap.Announcements
	if len(recent) > overviewAnnouncements {
		recent = recent[:overviewAnnouncements]
	}
	a.json(w, http.StatusOK, overviewResponse{
		TotalInterns:       ov.TotalInterns,
		TotalRaised:        ov.TotalRaised,
		TotalGoal:          ov.TotalGoal,
		TotalRaisedDisplay: metrics.FormatAmount(locale, ov.TotalRaised),
		TotalGoalDisplay:   metrics.FormatAmount(locale, ov.TotalGoal),
		OverallPercentage:  overall.Percentage,
		OverallClamped:     overall.Clamped,
		OverallAvailable:   overall.Available,
		TotalDonationCount: ov.TotalDonationCount,
		TopPerformers:      newRankedDTOs(top),
		Announcements:      newAnnouncementDTOs(recent),
	})
}

// AdminInterns lists the roster filtered by activity and sorted by the
// requested key. Names collate in the request locale.
func (a *App) AdminInterns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sortKey, err := metrics.ParseSortKey(q.Get("sort"))
	if err != nil {
		a.fail(w, r, err, "invalid sort")
		return
	}
	filter, err := metrics.ParseActivityFilter(q.Get("filter"))
	if err != nil {
		a.fail(w, r, err, "invalid filter")
		return
	}
	snap, err := a.Loader.Load(r.Context())
	if err != nil {
		a.unavailable(w)
		return
	}
	entries := metrics.Roster(a.now(), snap.Interns, snap.Donations, metrics.RosterOptions{
		Sort:   sortKey,
		Filter: filter,
		Locale: middleware.LocaleFromContext(r.Context()),
	})
	a.json(w, http.StatusOK, map[string]any{
		"sort":    sortKey,
		"filter":  filter,
		"showing": len(entries),
		"total":   len(snap.Interns),
		"items":   newRosterDTOs(entries),
	})
}

type updateInternRequest struct {
	FundraisingGoal *decimal.Decimal `json:"fundraising_goal"`
	Mentor          *string          `json:"mentor" validate:"omitempty,max=200"`
}

// AdminUpdateIntern edits an intern's goal and mentor. Omitted fields keep
// their current value; an empty mentor clears the assignment.
func (a *App) AdminUpdateIntern(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req updateInternRequest
	if err := a.decode(w, r, &req); err != nil {
		a.fail(w, r, err, "invalid payload")
		return
	}
	if req.FundraisingGoal != nil && !req.FundraisingGoal.IsPositive() {
		a.error(w, http.StatusBadRequest, "bad_request", "fundraising_goal must be positive")
		return
	}
	intern, err := a.Interns.GetIntern(r.Context(), id)
	if err != nil {
		a.fail(w, r, err, "failed to load intern")
		return
	}
	if req.FundraisingGoal != nil {
		intern.FundraisingGoal = *req.FundraisingGoal
	}
	if req.Mentor != nil {
		intern.Mentor = strings.TrimSpace(*req.Mentor)
	}
	if err := a.Interns.UpdateProfile(r.Context(), intern.ID, intern.FundraisingGoal, intern.Mentor); err != nil {
		a.fail(w, r, err, "failed to update intern")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"intern":   newInternDTO(*intern),
		"progress": newProgressDTO(metrics.ProgressOf(*intern)),
	})
}

type driftDTO struct {
	Intern     internDTO       `json:"intern"`
	Recorded   decimal.Decimal `json:"recorded"`
	Summed     decimal.Decimal `json:"summed"`
	Difference decimal.Decimal `json:"difference"`
}

// AdminReconcile lists interns whose running total disagrees with their
// donation records.
func (a *App) AdminReconcile(w http.ResponseWriter, r *http.Request) {
	snap, err := a.Loader.Load(r.Context())
	if err != nil {
		a.unavailable(w)
		return
	}
	drifts := metrics.Reconcile(snap.Interns, snap.Donations)
	items := make([]driftDTO, 0, len(drifts))
	for _, d := range drifts {
		items = append(items, driftDTO{
			Intern:     newInternDTO(d.Intern),
			Recorded:   d.Recorded,
			Summed:     d.Summed,
			Difference: d.Difference,
		})
	}
	if len(items) > 0 {
		a.Logger.Warn().Int("interns", len(items)).Msg("running totals drifted from donation records")
	}
	a.json(w, http.StatusOK, map[string]any{
		"consistent": len(items) == 0,
		"items":      items,
	})
}
