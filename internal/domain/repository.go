package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// InternRepository defines access methods for user profiles.
type InternRepository interface {
	ListInterns(ctx context.Context) ([]Intern, error)
	GetIntern(ctx context.Context, id string) (*Intern, error)
	GetUser(ctx context.Context, id string) (*AuthUser, error)
	CreateProfile(ctx context.Context, profile NewProfile, goal decimal.Decimal) error
	UpdateProfile(ctx context.Context, id string, goal decimal.Decimal, mentor string) error
}

// DonationRepository handles donation persistence.
type DonationRepository interface {
	ListAll(ctx context.Context) ([]Donation, error)
	ListByIntern(ctx context.Context, internID string) ([]Donation, error)
	// Record stores the donation and bumps the intern's running total atomically.
	Record(ctx context.Context, donation *Donation) error
}

// AnnouncementRepository handles announcement persistence.
type AnnouncementRepository interface {
	ListRecent(ctx context.Context, limit int) ([]Announcement, error)
	Create(ctx context.Context, announcement *Announcement) error
}
