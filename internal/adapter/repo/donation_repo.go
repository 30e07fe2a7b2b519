package repo

import (
	"context"
	"fmt"

	"fundtrack/internal/domain"
	"fundtrack/internal/infra"
	"fundtrack/internal/sqlinline"
)

// DonationRepositoryPG implements domain.DonationRepository.
type DonationRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(sql infra.SQLExecutor) *DonationRepositoryPG {
	return &DonationRepositoryPG{sql: sql}
}

// ListAll returns every donation, newest record first.
func (r *DonationRepositoryPG) ListAll(ctx context.Context) ([]domain.Donation, error) {
	return r.list(ctx, sqlinline.QListDonations)
}

// ListByIntern returns one intern's donations, newest record first.
func (r *DonationRepositoryPG) ListByIntern(ctx context.Context, internID string) ([]domain.Donation, error) {
	if !validID(internID) {
		return nil, domain.ErrNotFound
	}
	return r.list(ctx, sqlinline.QListDonationsByIntern, internID)
}

// Record inserts the donation and increments the intern's running total in
// a single statement. ID and CreatedAt are filled in on success.
func (r *DonationRepositoryPG) Record(ctx context.Context, d *domain.Donation) error {
	if !validID(d.InternID) {
		return domain.ErrNotFound
	}
	if !d.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}
	row := r.sql.QueryRow(ctx, sqlinline.QRecordDonation,
		d.InternID,
		d.DonorName,
		d.Amount.String(),
		string(d.PaymentMethod),
		d.DonationDate.Format(domain.DateLayout),
		d.Notes,
	)
	if err := row.Scan(&d.ID, &d.CreatedAt); err != nil {
		if infra.IsNoRows(err) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *DonationRepositoryPG) list(ctx context.Context, query string, args ...any) ([]domain.Donation, error) {
	rows, err := r.sql.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Donation
	for rows.Next() {
		var (
			d              domain.Donation
			amount, method string
		)
		if err := rows.Scan(&d.ID, &d.InternID, &d.DonorName, &amount, &method, &d.DonationDate, &d.Notes, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan donation: %w", err)
		}
		if d.Amount, err = parseAmount("amount", amount); err != nil {
			return nil, err
		}
		if d.PaymentMethod, err = domain.ParsePaymentMethod(method); err != nil {
			return nil, err
		}
		d.DonationDate = domain.CalendarDate(d.DonationDate)
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
