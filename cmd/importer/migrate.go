package main

import (
	"context"
	"database/sql"
	"fmt"

	"donor-finder-api/internal/repository"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the users and messages tables if they do not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrate(cmd.Context(), cfg.DBSource)
		},
	}
}

func migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.ExecContext(ctx, repository.Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	log.Info().Msg("schema ready")
	return nil
}
