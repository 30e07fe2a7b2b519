// Package report renders the fundraising roster as a downloadable file.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"fundtrack/internal/domain"
	"fundtrack/internal/metrics"
)

// Format selects the file type of an export.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat maps a query value onto a Format; empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown report format %q", domain.ErrInvalidInput, s)
	}
}

// ContentType is the MIME type served for the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

const notApplicable = "N/A"

var header = []string{"Name", "Email", "Current Amount", "Goal", "Progress %", "Total Donations"}

// Row is one intern line of the report.
type Row struct {
	Name           string
	Email          string
	CurrentAmount  decimal.Decimal
	Goal           decimal.Decimal
	Progress       metrics.Percentage
	TotalDonations int
}

// BuildRows produces one row per intern, in roster order.
func BuildRows(now time.Time, interns []domain.Intern, donations []domain.Donation) []Row {
	entries := metrics.Describe(now, interns, donations)
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, Row{
			Name:           e.Intern.FullName,
			Email:          e.Intern.Email,
			CurrentAmount:  e.Intern.CurrentAmount,
			Goal:           e.Intern.FundraisingGoal,
			Progress:       e.Progress,
			TotalDonations: e.DonationCount,
		})
	}
	return rows
}

// ProgressLabel renders the unclamped progress with one decimal, or N/A
// when the goal is not positive.
func (r Row) ProgressLabel() string {
	if !r.Progress.Valid {
		return notApplicable
	}
	return strconv.FormatFloat(r.Progress.Raw, 'f', 1, 64) + "%"
}

func (r Row) record() []string {
	return []string{
		r.Name,
		r.Email,
		r.CurrentAmount.String(),
		r.Goal.String(),
		r.ProgressLabel(),
		strconv.Itoa(r.TotalDonations),
	}
}

// Filename is the download name for an export taken on day.
func Filename(day time.Time, f Format) string {
	return fmt.Sprintf("fundraising_report_%s.%s", day.Format(domain.DateLayout), f)
}

// Write renders rows in the requested format.
func Write(w io.Writer, f Format, rows []Row) error {
	if f == FormatXLSX {
		return WriteXLSX(w, rows)
	}
	return WriteCSV(w, rows)
}

// WriteCSV writes a header line followed by one line per row.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.record()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

const sheetName = "Fundraising"

// WriteXLSX writes a single-sheet workbook. Amounts are stored as numbers so
// spreadsheet formulas work on them.
func WriteXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("xlsx: rename sheet: %w", err)
	}
	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return fmt.Errorf("xlsx: header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx: style: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "F1", bold); err != nil {
		return fmt.Errorf("xlsx: style: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{
			r.Name,
			r.Email,
			r.CurrentAmount.InexactFloat64(),
			r.Goal.InexactFloat64(),
			r.ProgressLabel(),
			r.TotalDonations,
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("xlsx: row %d: %w", i+2, err)
		}
	}
	if err := f.SetColWidth(sheetName, "A", "B", 28); err != nil {
		return fmt.Errorf("xlsx: column width: %w", err)
	}
	if err := f.SetColWidth(sheetName, "C", "F", 16); err != nil {
		return fmt.Errorf("xlsx: column width: %w", err)
	}
	return f.Write(w)
}
