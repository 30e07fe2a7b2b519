package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"fundtrack/internal/adapter/repo"
	"fundtrack/internal/infra"
	"fundtrack/internal/report"
	"fundtrack/internal/snapshot"
)

func main() {
	var (
		formatFlag  string
		outFlag     string
		timeoutFlag time.Duration
	)

	flag.StringVar(&formatFlag, "format", "csv", "report format (csv, xlsx)")
	flag.StringVar(&outFlag, "out", "", "output path (defaults to fundraising_report_<date>.<format>)")
	flag.DurationVar(&timeoutFlag, "timeout", 30*time.Second, "time allowed for loading data")
	flag.Parse()

	infra.LoadEnvFiles()

	format, err := report.ParseFormat(strings.ToLower(strings.TrimSpace(formatFlag)))
	if err != nil {
		exitWithError(err)
	}

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeoutFlag)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	logger := infra.NewLogger("cli", "").With().Str("cmd", "report").Logger()
	runner := infra.NewSQLRunner(pool, logger)
	loader := snapshot.NewLoader(
		repo.NewUserRepository(runner),
		repo.NewDonationRepository(runner),
		repo.NewAnnouncementRepository(runner),
		timeoutFlag,
		logger,
	)

	snap, err := loader.Load(ctx)
	if err != nil {
		exitWithError(fmt.Errorf("failed to load data: %w", err))
	}

	now := time.Now().UTC()
	path := strings.TrimSpace(outFlag)
	if path == "" {
		path = report.Filename(now, format)
	}
	f, err := os.Create(path)
	if err != nil {
		exitWithError(fmt.Errorf("failed to create %s: %w", path, err))
	}
	rows := report.BuildRows(now, snap.Interns, snap.Donations)
	if err := report.Write(f, format, rows); err != nil {
		_ = f.Close()
		exitWithError(fmt.Errorf("failed to write report: %w", err))
	}
	if err := f.Close(); err != nil {
		exitWithError(fmt.Errorf("failed to write report: %w", err))
	}

	fmt.Printf("Wrote %d interns to %s\n", len(rows), path)
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
