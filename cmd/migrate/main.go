package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"fundtrack/internal/infra"
	"fundtrack/internal/schema"
)

func main() {
	var (
		dryRun      bool
		timeoutFlag time.Duration
	)
	flag.BoolVar(&dryRun, "dry-run", false, "print the statements without applying them")
	flag.DurationVar(&timeoutFlag, "timeout", time.Minute, "time allowed for the migration")
	flag.Parse()

	if dryRun {
		fmt.Print(schema.Source())
		return
	}

	infra.LoadEnvFiles()
	logger := infra.NewLogger("cli", "").With().Str("cmd", "migrate").Logger()

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to open database: %w", err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeoutFlag)
	defer cancel()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		exitWithError(fmt.Errorf("failed to begin migration: %w", err))
	}
	stmts := schema.Statements()
	for i, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			exitWithError(fmt.Errorf("statement %d failed: %w", i+1, err))
		}
	}
	if err := tx.Commit(); err != nil {
		exitWithError(fmt.Errorf("failed to commit migration: %w", err))
	}
	logger.Info().Int("statements", len(stmts)).Msg("schema applied")
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
