package repo

import (
	"context"

	"fundtrack/internal/domain"
	"fundtrack/internal/infra"
	"fundtrack/internal/sqlinline"
)

// AnnouncementRepositoryPG implements domain.AnnouncementRepository.
type AnnouncementRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewAnnouncementRepository(sql infra.SQLExecutor) *AnnouncementRepositoryPG {
	return &AnnouncementRepositoryPG{sql: sql}
}

// ListRecent returns announcements newest first. A limit of zero or less
// returns all of them.
func (r *AnnouncementRepositoryPG) ListRecent(ctx context.Context, limit int) ([]domain.Announcement, error) {
	var arg any
	if limit > 0 {
		arg = limit
	}
	rows, err := r.sql.Query(ctx, sqlinline.QListAnnouncements, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Announcement
	for rows.Next() {
		var (
			a        domain.Announcement
			priority string
		)
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &priority, &a.CreatedBy, &a.CreatedAt); err != nil {
			return nil, err
		}
		if a.Priority, err = domain.ParsePriority(priority); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Create stores a new announcement and fills in ID and CreatedAt.
func (r *AnnouncementRepositoryPG) Create(ctx context.Context, a *domain.Announcement) error {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertAnnouncement, a.Title, a.Content, string(a.Priority), a.CreatedBy)
	return row.Scan(&a.ID, &a.CreatedAt)
}
