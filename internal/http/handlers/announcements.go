package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"fundtrack/internal/domain"
)

const maxAnnouncementLimit = 100

type announcementRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Content  string `json:"content" validate:"required,max=5000"`
	Priority string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

// AnnouncementsList returns announcements newest first. Without a limit
// every announcement is returned.
func (a *App) AnnouncementsList(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"), maxAnnouncementLimit)
	if err != nil {
		a.fail(w, r, err, "invalid limit")
		return
	}
	items, err := a.Announcements.ListRecent(r.Context(), limit)
	if err != nil {
		a.fail(w, r, err, "failed to load announcements")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": newAnnouncementDTOs(items)})
}

func (a *App) AnnouncementsCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := currentUser(r)
	var req announcementRequest
	if err := a.decode(w, r, &req); err != nil {
		a.fail(w, r, err, "invalid payload")
		return
	}
	priority, err := domain.ParsePriority(req.Priority)
	if err != nil {
		a.fail(w, r, err, "invalid priority")
		return
	}
	ann := &domain.Announcement{
		Title:     strings.TrimSpace(req.Title),
		Content:   strings.TrimSpace(req.Content),
		Priority:  priority,
		CreatedBy: user.ID,
	}
	if err := a.Announcements.Create(r.Context(), ann); err != nil {
		a.fail(w, r, err, "failed to create announcement")
		return
	}
	a.json(w, http.StatusCreated, newAnnouncementDTOs([]domain.Announcement{*ann})[0])
}

// parseLimit reads an optional non-negative limit. Zero or absent means no
// limit; values above max are capped.
func parseLimit(raw string, max int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, domain.ErrInvalidInput
	}
	if max > 0 && n > max {
		n = max
	}
	return n, nil
}
