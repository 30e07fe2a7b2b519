package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"fundtrack/internal/domain"
)

// Snapshot is one consistent read of the three collections the dashboards
// are computed from.
type Snapshot struct {
	Interns       []domain.Intern
	Donations     []domain.Donation
	Announcements []domain.Announcement
	LoadedAt      time.Time
}

// InternSnapshot is the slice of data an intern's own dashboard needs.
type InternSnapshot struct {
	Intern        domain.Intern
	Donations     []domain.Donation
	Announcements []domain.Announcement
	LoadedAt      time.Time
}

// Loader fans out to the repositories and only returns once every fetch has
// succeeded. Partial results are never handed to callers.
type Loader struct {
	interns       domain.InternRepository
	donations     domain.DonationRepository
	announcements domain.AnnouncementRepository
	timeout       time.Duration
	logger        zerolog.Logger
	now           func() time.Time
}

func NewLoader(
	interns domain.InternRepository,
	donations domain.DonationRepository,
	announcements domain.AnnouncementRepository,
	timeout time.Duration,
	logger zerolog.Logger,
) *Loader {
	return &Loader{
		interns:       interns,
		donations:     donations,
		announcements: announcements,
		timeout:       timeout,
		logger:        logger.With().Str("component", "snapshot").Logger(),
		now:           time.Now,
	}
}

// Load reads interns, donations and every announcement concurrently.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	ctx, cancel := l.bound(ctx)
	defer cancel()

	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Interns, err = l.interns.ListInterns(gctx)
		return l.wrap("interns", err)
	})
	g.Go(func() (err error) {
		snap.Donations, err = l.donations.ListAll(gctx)
		return l.wrap("donations", err)
	})
	g.Go(func() (err error) {
		snap.Announcements, err = l.announcements.ListRecent(gctx, 0)
		return l.wrap("announcements", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	snap.LoadedAt = l.now()
	return &snap, nil
}

// LoadIntern reads one intern's profile, their donations and the latest
// announcements concurrently.
func (l *Loader) LoadIntern(ctx context.Context, internID string, announcementLimit int) (*InternSnapshot, error) {
	ctx, cancel := l.bound(ctx)
	defer cancel()

	var (
		snap   InternSnapshot
		intern *domain.Intern
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		intern, err = l.interns.GetIntern(gctx, internID)
		return l.wrap("intern", err)
	})
	g.Go(func() (err error) {
		snap.Donations, err = l.donations.ListByIntern(gctx, internID)
		return l.wrap("donations", err)
	})
	g.Go(func() (err error) {
		snap.Announcements, err = l.announcements.ListRecent(gctx, announcementLimit)
		return l.wrap("announcements", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	snap.Intern = *intern
	snap.LoadedAt = l.now()
	return &snap, nil
}

func (l *Loader) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if l.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, l.timeout)
}

func (l *Loader) wrap(collection string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, context.Canceled):
		// Siblings cancelled by the first failure are not worth a log line each.
	case errors.Is(err, domain.ErrNotFound):
		l.logger.Debug().Err(err).Str("collection", collection).Msg("not found")
	default:
		l.logger.Error().Err(err).Str("collection", collection).Msg("fetch failed")
	}
	return fmt.Errorf("load %s: %w", collection, err)
}
