package repo

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fundtrack/internal/domain"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func parseAmount(field, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %q", domain.ErrInvalidInput, field, raw)
	}
	return d, nil
}

// validID rejects ids the database would refuse to cast to uuid.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
