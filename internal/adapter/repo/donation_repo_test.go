package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"fundtrack/internal/domain"
	"fundtrack/internal/sqlinline"
)

func TestDonationListByIntern(t *testing.T) {
	created := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	dated := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
	exec := &stubExecutor{rows: [][]any{
		{"d-1", internID, "Priya", "250.75", "online", dated, "", created},
	}}

	items, err := NewDonationRepository(exec).ListByIntern(context.Background(), internID)
	if err != nil {
		t.Fatalf("ListByIntern error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 donation, got %d", len(items))
	}
	d := items[0]
	if d.PaymentMethod != domain.PaymentOnline {
		t.Fatalf("PaymentMethod = %q", d.PaymentMethod)
	}
	if !d.Amount.Equal(decimal.RequireFromString("250.75")) {
		t.Fatalf("Amount = %s", d.Amount)
	}
	if !d.DonationDate.Equal(dated) {
		t.Fatalf("DonationDate = %s", d.DonationDate)
	}
	if exec.calls[0].query != sqlinline.QListDonationsByIntern || exec.calls[0].args[0] != internID {
		t.Fatalf("unexpected call: %+v", exec.calls[0])
	}
}

func TestDonationListRejectsUnknownMethod(t *testing.T) {
	exec := &stubExecutor{rows: [][]any{
		{"d-1", internID, "Priya", "10", "barter", time.Now(), "", time.Now()},
	}}
	if _, err := NewDonationRepository(exec).ListAll(context.Background()); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRecordDonationUsesSingleStatement(t *testing.T) {
	created := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	exec := &stubExecutor{row: []any{"new-id", created}}
	d := &domain.Donation{
		InternID:      internID,
		DonorName:     "Ravi",
		Amount:        decimal.RequireFromString("500"),
		PaymentMethod: domain.PaymentCheque,
		DonationDate:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Notes:         "thanks",
	}

	if err := NewDonationRepository(exec).Record(context.Background(), d); err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if len(exec.calls) != 1 || exec.calls[0].query != sqlinline.QRecordDonation {
		t.Fatalf("expected one QRecordDonation call, got %+v", exec.calls)
	}
	args := exec.calls[0].args
	if args[2] != "500" || args[3] != "cheque" || args[4] != "2024-03-01" {
		t.Fatalf("unexpected args: %#v", args)
	}
	if d.ID != "new-id" || !d.CreatedAt.Equal(created) {
		t.Fatalf("donation not filled in: %+v", d)
	}
}

func TestRecordDonationForUnknownIntern(t *testing.T) {
	repo := NewDonationRepository(&stubExecutor{err: pgx.ErrNoRows})
	d := &domain.Donation{InternID: internID, Amount: decimal.NewFromInt(1), PaymentMethod: domain.PaymentCash}
	if err := repo.Record(context.Background(), d); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecordDonationRejectsNonPositiveAmount(t *testing.T) {
	exec := &stubExecutor{}
	d := &domain.Donation{InternID: internID, Amount: decimal.Zero, PaymentMethod: domain.PaymentCash}
	if err := NewDonationRepository(exec).Record(context.Background(), d); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(exec.calls) != 0 {
		t.Fatalf("invalid donation reached the database")
	}
}
