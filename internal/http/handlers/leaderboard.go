package handlers

import (
	"net/http"

	"fundtrack/internal/metrics"
)

const maxLeaderboardLimit = 500

// Leaderboard ranks every intern for the requested window.
func (a *App) Leaderboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	window, err := metrics.ParseWindow(q.Get("window"))
	if err != nil {
		a.fail(w, r, err, "invalid window")
		return
	}
	limit, err := parseLimit(q.Get("limit"), maxLeaderboardLimit)
	if err != nil {
		a.fail(w, r, err, "invalid limit")
		return
	}
	snap, err := a.Loader.Load(r.Context())
	if err != nil {
		a.unavailable(w)
		return
	}
	entries := metrics.Leaderboard(a.now(), snap.Interns, snap.Donations, metrics.LeaderboardOptions{
		Window: window,
		Limit:  limit,
	})
	a.json(w, http.StatusOK, map[string]any{
		"window": window,
		"items":  newRankedDTOs(entries),
	})
}
