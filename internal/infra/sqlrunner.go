package infra

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// SQLExecutor is the query surface shared by repositories and tests.
type SQLExecutor interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
}

// ErrMissingMarker is returned for statements without a leading "--sql <uuid>" line.
var ErrMissingMarker = errors.New("sql marker missing or invalid")

var markerRegexp = regexp.MustCompile(`^--sql ([0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12})$`)

// SQLRunner executes marker-tagged statements on any SQLExecutor (usually a
// pgxpool.Pool) and logs each call by marker so slow or failing statements can
// be traced back to their definition in sqlinline.
type SQLRunner struct {
	next   SQLExecutor
	logger zerolog.Logger
}

// NewSQLRunner wraps next.
func NewSQLRunner(next SQLExecutor, logger zerolog.Logger) *SQLRunner {
	return &SQLRunner{next: next, logger: logger.With().Str("component", "sql").Logger()}
}

func (r *SQLRunner) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	marker, body, err := SplitMarker(query)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	start := time.Now()
	tag, err := r.next.Exec(ctx, body, args...)
	r.done(marker, "exec", start, err)
	return tag, err
}

func (r *SQLRunner) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	marker, body, err := SplitMarker(query)
	if err != nil {
		return errorRow{err: err}
	}
	return &loggedRow{
		row:    r.next.QueryRow(ctx, body, args...),
		runner: r,
		marker: marker,
		start:  time.Now(),
	}
}

func (r *SQLRunner) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	marker, body, err := SplitMarker(query)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	rows, err := r.next.Query(ctx, body, args...)
	if err != nil {
		r.done(marker, "query", start, err)
		return nil, err
	}
	return &loggedRows{Rows: rows, runner: r, marker: marker, start: start}, nil
}

func (r *SQLRunner) done(marker, op string, start time.Time, err error) {
	if err != nil && !IsNoRows(err) {
		r.logger.Error().Err(err).Str("marker", marker).Str("op", op).Msg("sql failed")
		return
	}
	r.logger.Debug().Str("marker", marker).Str("op", op).Dur("took", time.Since(start)).Msg("sql ok")
}

type loggedRow struct {
	row    pgx.Row
	runner *SQLRunner
	marker string
	start  time.Time
}

func (l *loggedRow) Scan(dest ...any) error {
	err := l.row.Scan(dest...)
	l.runner.done(l.marker, "query_row", l.start, err)
	return err
}

type loggedRows struct {
	pgx.Rows
	runner *SQLRunner
	marker string
	start  time.Time
}

func (l *loggedRows) Close() {
	l.Rows.Close()
	l.runner.done(l.marker, "query", l.start, l.Rows.Err())
}

type errorRow struct {
	err error
}

func (e errorRow) Scan(...any) error {
	return e.err
}

// SplitMarker separates the marker id from the statement body.
func SplitMarker(query string) (marker, body string, err error) {
	trimmed := strings.TrimSpace(query)
	first, rest, _ := strings.Cut(trimmed, "\n")
	m := markerRegexp.FindStringSubmatch(strings.TrimSpace(first))
	if m == nil {
		return "", "", ErrMissingMarker
	}
	return m[1], rest, nil
}

var _ SQLExecutor = (*SQLRunner)(nil)
