package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"pokecatcher/internal/catalog"
)

func newWarmCmd(g *globalOptions) *cobra.Command {
	var (
		dsn       string
		pages     int
		freshness time.Duration
	)

	cmd := &cobra.Command{
		Use:   "warm",
		Short: "Fill the Postgres catalog cache used by the API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dsn == "" {
				return fmt.Errorf("--dsn or DB_DSN is required")
			}

			pool, err := pgxpool.New(cmd.Context(), dsn)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer pool.Close()
			if err := pool.Ping(cmd.Context()); err != nil {
				return fmt.Errorf("ping database: %w", err)
			}

			start := time.Now()
			svc := g.newService(catalog.NewPostgresRepo(pool, freshness, 0))
			sum, err := loadPages(cmd.Context(), svc, pages, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "cached %s Pokemon in %s (%s dropped), started %s\n",
				humanize.Comma(int64(sum.loaded)),
				time.Since(start).Round(time.Millisecond),
				humanize.Comma(int64(sum.dropped)),
				humanize.Time(start))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&dsn, "dsn", os.Getenv("DB_DSN"), "Postgres connection string")
	f.IntVar(&pages, "pages", 0, "pages to load, 0 loads the whole catalog")
	f.DurationVar(&freshness, "freshness", 7*24*time.Hour, "re-fetch cached entries older than this")
	return cmd
}
