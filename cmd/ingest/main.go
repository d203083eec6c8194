// Command ingest is the Ringside data ingestion CLI.
//
// Usage:
//
//	ringside-ingest load
//	ringside-ingest load --wrestler CM_Punk --wrestler John_Cena --json
//	ringside-ingest wrestlers --min-matches 20 --search cena
//	ringside-ingest wrestlers --from-db
//	ringside-ingest seed
//	ringside-ingest migrate
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/ringside-data/internal/aggregate"
	"github.com/albapepper/ringside-data/internal/config"
	"github.com/albapepper/ringside-data/internal/db"
	"github.com/albapepper/ringside-data/internal/provider"
	"github.com/albapepper/ringside-data/internal/provider/csvsource"
	"github.com/albapepper/ringside-data/internal/seed"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:          "ringside-ingest",
		Short:        "Ringside match record ingestion CLI",
		SilenceUsage: true,
	}

	root.AddCommand(loadCmd())
	root.AddCommand(wrestlersCmd())
	root.AddCommand(seedCmd())
	root.AddCommand(migrateCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// load command
// --------------------------------------------------------------------------

// loadReport is the --json output of the load command.
type loadReport struct {
	Sources       int                        `json:"sources"`
	SourcesFailed int                        `json:"sources_failed"`
	RowsSkipped   int                        `json:"rows_skipped"`
	Metrics       provider.DashboardMetrics  `json:"metrics"`
	Timeline      []aggregate.YearCount      `json:"timeline"`
	Promotions    []aggregate.PromotionShare `json:"promotions"`
	Venues        []aggregate.VenueStat      `json:"venues"`
	Errors        []string                   `json:"errors,omitempty"`
}

func loadCmd() *cobra.Command {
	var (
		wrestlers []string
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Fetch and normalize the roster's match records, then print dashboard metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(func(ctx context.Context, cfg *config.Config) error {
				roster := cfg.Roster
				if len(wrestlers) > 0 {
					roster = wrestlers
				}
				start := time.Now()
				result := newHTTPLoader(cfg).Load(ctx, roster)
				logger.Info("Load finished", "duration", time.Since(start).Round(time.Millisecond), "summary", result.Summary())
				for _, e := range result.Errors {
					logger.Warn("load error", "error", e)
				}
				if result.AllFailed() {
					return fmt.Errorf("every record source failed")
				}

				profiles := aggregate.Summarize(result.Matches)
				report := loadReport{
					Sources:       result.Sources,
					SourcesFailed: result.SourcesFailed,
					RowsSkipped:   result.RowsSkipped,
					Metrics:       aggregate.ComputeMetrics(result.Matches, profiles),
					Timeline:      aggregate.Timeline(result.Matches),
					Promotions:    aggregate.PromotionBreakdown(result.Matches),
					Venues:        aggregate.VenueBreakdown(result.Matches),
					Errors:        result.Errors,
				}
				if asJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(report)
				}
				return printReport(cmd, report)
			})
		},
	}
	cmd.Flags().StringSliceVar(&wrestlers, "wrestler", nil, "Source identity to load (repeatable); defaults to WRESTLER_ROSTER")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	return cmd
}

const topVenues = 10

func printReport(cmd *cobra.Command, r loadReport) error {
	m := r.Metrics
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Total matches\t%d\n", m.TotalMatches)
	fmt.Fprintf(tw, "Total wrestlers\t%d\n", m.TotalWrestlers)
	fmt.Fprintf(tw, "Avg matches per wrestler\t%d\n", m.AvgMatchesPerWrestler)
	fmt.Fprintf(tw, "Sources\t%d (%d failed)\n", r.Sources, r.SourcesFailed)
	fmt.Fprintf(tw, "Rows skipped\t%d\n", r.RowsSkipped)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "PROMOTION\tMATCHES\tSHARE")
	for _, p := range r.Promotions {
		fmt.Fprintf(tw, "%s\t%d\t%.1f%%\n", p.Promotion, p.Count, p.Percent)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "VENUE\tCITY\tMATCHES\tWRESTLERS")
	for _, v := range r.Venues[:min(len(r.Venues), topVenues)] {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", v.Name, v.City, v.Matches, len(v.Wrestlers))
	}
	return tw.Flush()
}

// --------------------------------------------------------------------------
// wrestlers command
// --------------------------------------------------------------------------

func wrestlersCmd() *cobra.Command {
	var (
		minMatches int
		search     string
		fromDB     bool
	)
	cmd := &cobra.Command{
		Use:   "wrestlers",
		Short: "List wrestler profiles, most active first",
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := provider.FilterState{SearchTerm: search, MinMatches: minMatches}

			if fromDB {
				return runSeed(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
					profiles, err := seed.ListWrestlers(ctx, pool.Pool)
					if err != nil {
						return err
					}
					return printProfiles(cmd, aggregate.ListProfiles(profiles, filters))
				})
			}

			return runLoad(func(ctx context.Context, cfg *config.Config) error {
				result := newHTTPLoader(cfg).Load(ctx, cfg.Roster)
				logger.Info("Load finished", "summary", result.Summary())
				if result.AllFailed() {
					return fmt.Errorf("every record source failed")
				}
				profiles := aggregate.Summarize(result.Matches)
				return printProfiles(cmd, aggregate.ListProfiles(profiles, filters))
			})
		},
	}
	cmd.Flags().IntVar(&minMatches, "min-matches", 0, "Hide wrestlers with fewer matches")
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive name substring")
	cmd.Flags().BoolVar(&fromDB, "from-db", false, "Read stored summaries from Postgres instead of fetching")
	return cmd
}

func printProfiles(cmd *cobra.Command, profiles []provider.WrestlerProfile) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPROMOTION\tMATCHES\tPPV\tW-L-D\tWIN%\tLAST MATCH")
	for _, p := range profiles {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d-%d-%d\t%d\t%s\n",
			p.Name, p.Promotion, p.TotalMatches, p.PPVMatches,
			p.Wins, p.Losses, p.Draws, p.WinRate,
			p.LastMatch.Format(time.DateOnly))
	}
	return tw.Flush()
}

// --------------------------------------------------------------------------
// seed command
// --------------------------------------------------------------------------

func seedCmd() *cobra.Command {
	var wrestlers []string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the roster and replace its stored matches in Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				roster := cfg.Roster
				if len(wrestlers) > 0 {
					roster = wrestlers
				}
				start := time.Now()
				result := seed.SeedRoster(ctx, pool.Pool, newHTTPLoader(cfg), roster, logger)
				logger.Info("Roster seed finished", "duration", time.Since(start).Round(time.Second), "summary", result.Summary())
				if len(result.Errors) > 0 {
					for _, e := range result.Errors {
						logger.Error("seed error", "error", e)
					}
				}
				if result.WrestlersUpserted == 0 {
					return fmt.Errorf("nothing was seeded")
				}
				return nil
			})
		},
	}
	cmd.Flags().StringSliceVar(&wrestlers, "wrestler", nil, "Source identity to seed (repeatable); defaults to WRESTLER_ROSTER")
	return cmd
}

// --------------------------------------------------------------------------
// migrate command
// --------------------------------------------------------------------------

func migrateCmd() *cobra.Command {
	var printOnly bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the matches and wrestlers tables if missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			if printOnly {
				_, err := fmt.Fprint(cmd.OutOrStdout(), db.Schema())
				return err
			}
			return runLoad(func(ctx context.Context, cfg *config.Config) error {
				if !cfg.HasDatabase() {
					return fmt.Errorf("DATABASE_URL is not set")
				}
				connCfg, err := pgx.ParseConfig(cfg.DatabaseURL)
				if err != nil {
					return fmt.Errorf("parse database url: %w", err)
				}
				if err := db.Migrate(ctx, connCfg); err != nil {
					return err
				}
				logger.Info("Schema applied")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the schema instead of applying it")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

func newHTTPLoader(cfg *config.Config) *csvsource.Loader {
	client := csvsource.NewClient(csvsource.ClientOptions{
		BaseURL:           cfg.RecordsBaseURL,
		FileSuffix:        cfg.RecordsFileSuffix,
		MaxBytes:          cfg.RecordsMaxBytes,
		RequestsPerMinute: cfg.FetchRequestsPerMin,
		Timeout:           cfg.FetchTimeout,
	}, logger)
	return csvsource.NewLoader(client, provider.NewNormalizer(), cfg.FetchWorkers, logger)
}

// runLoad handles config loading and context cancellation.
func runLoad(fn func(ctx context.Context, cfg *config.Config) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return fn(ctx, cfg)
}

// runSeed is runLoad plus a database connection.
func runSeed(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	return runLoad(func(ctx context.Context, cfg *config.Config) error {
		pool, err := db.New(ctx, cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()

		return fn(ctx, cfg, pool)
	})
}
