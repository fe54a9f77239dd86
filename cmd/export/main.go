// Command export is the Vandringspris operations CLI.
//
// Usage:
//
//	vandringspris-export results --club 461 --year 2025 --out results.csv
//	vandringspris-export results --club 114 --person 12345
//	vandringspris-export leaderboards --club 461 --year 2025
//	vandringspris-export warnings list --include-hidden
//	vandringspris-export warnings hide --ids 12,34,56
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vandringspris/vandringspris-data/internal/config"
	"github.com/vandringspris/vandringspris-data/internal/csvexport"
	"github.com/vandringspris/vandringspris-data/internal/db"
	"github.com/vandringspris/vandringspris-data/internal/scoring"
	"github.com/vandringspris/vandringspris-data/internal/warnings"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "vandringspris-export",
		Short: "Vandringspris operations CLI",
	}

	root.AddCommand(resultsCmd())
	root.AddCommand(leaderboardsCmd())
	root.AddCommand(warningsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// withPool loads config, connects, runs fn, and closes the pool.
func withPool(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}

// --------------------------------------------------------------------------
// results command
// --------------------------------------------------------------------------

func resultsCmd() *cobra.Command {
	var club, year, person int
	var out string

	cmd := &cobra.Command{
		Use:   "results",
		Short: "Export enriched results as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			if club <= 0 {
				return fmt.Errorf("--club is required and must be positive")
			}
			var yearArg, personArg *int
			if year > 0 {
				if year < 1900 || year > 2100 {
					return fmt.Errorf("--year must be between 1900 and 2100")
				}
				yearArg = &year
			}
			if person > 0 {
				personArg = &person
			}

			return withPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				start := time.Now()
				records, err := db.ResultsEnrichedAll(ctx, pool, db.ResultsQuery{
					Club:     &club,
					Year:     yearArg,
					PersonID: personArg,
				}, config.ExportPageLimit)
				if err != nil {
					return err
				}

				body := csvexport.Encode(records)
				path := out
				if path == "" {
					path = csvexport.Filename(club, personArg, yearArg,
						time.Now().Format("20060102-150405"))
				}
				if path == "-" {
					fmt.Print(body)
				} else if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				logger.Info("Export finished",
					"rows", len(records),
					"file", path,
					"duration", time.Since(start).Round(time.Millisecond))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&club, "club", 0, "club id (required)")
	cmd.Flags().IntVar(&year, "year", 0, "restrict to one year")
	cmd.Flags().IntVar(&person, "person", 0, "restrict to one person id")
	cmd.Flags().StringVar(&out, "out", "", "output file, - for stdout (default: generated name)")
	return cmd
}

// --------------------------------------------------------------------------
// leaderboards command
// --------------------------------------------------------------------------

func leaderboardsCmd() *cobra.Command {
	var club, year int
	var out string

	cmd := &cobra.Command{
		Use:   "leaderboards",
		Short: "Export the award tables for a club year as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			if club <= 0 {
				return fmt.Errorf("--club is required and must be positive")
			}
			var yearArg *int
			if year > 0 {
				if year < 1900 || year > 2100 {
					return fmt.Errorf("--year must be between 1900 and 2100")
				}
				yearArg = &year
			}

			return withPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				start := time.Now()
				records, err := db.ResultsEnrichedAll(ctx, pool, db.ResultsQuery{
					Club: &club,
					Year: yearArg,
				}, config.ExportPageLimit)
				if err != nil {
					return err
				}

				var sb strings.Builder
				sb.WriteString(csvexport.BOM)
				sb.WriteString("table,title,position,personid,name,value\n")
				rowCount := 0
				for _, tbl := range scoring.Tables {
					rows := scoring.Leaderboard(records, tbl)
					for i, row := range rows {
						fmt.Fprintf(&sb, "%s,%s,%d,%d,%s,%s\n",
							csvexport.Escape(tbl.ID),
							csvexport.Escape(tbl.Title),
							i+1,
							row.PersonID,
							csvexport.Escape(row.Name),
							strconv.FormatFloat(row.Value, 'f', -1, 64))
						rowCount++
					}
				}

				path := out
				if path == "" {
					yearPart := "all"
					if yearArg != nil {
						yearPart = strconv.Itoa(*yearArg)
					}
					path = fmt.Sprintf("leaderboards_%d-%s_%s.csv",
						club, yearPart, time.Now().Format("20060102-150405"))
				}
				if path == "-" {
					fmt.Print(sb.String())
				} else if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				logger.Info("Leaderboard export finished",
					"rows", rowCount,
					"file", path,
					"duration", time.Since(start).Round(time.Millisecond))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&club, "club", 0, "club id (required)")
	cmd.Flags().IntVar(&year, "year", 0, "restrict to one year")
	cmd.Flags().StringVar(&out, "out", "", "output file, - for stdout (default: generated name)")
	return cmd
}

// --------------------------------------------------------------------------
// warnings command
// --------------------------------------------------------------------------

func warningsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "warnings",
		Short: "Inspect and moderate import warnings",
	}
	cmd.AddCommand(warningsListCmd())
	cmd.AddCommand(warningsHideCmd())
	return cmd
}

func warningsListCmd() *cobra.Command {
	var includeHidden bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List import warnings, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				list, err := warnings.List(ctx, pool, includeHidden)
				if err != nil {
					return err
				}
				for _, w := range list {
					msg := ""
					if w.Message != nil {
						msg = *w.Message
					}
					state := " "
					if w.Hidden() {
						state = "h"
					}
					fmt.Printf("%6d %s %s %s\n",
						w.ID, state, w.Created.Format("2006-01-02 15:04"), msg)
				}
				logger.Info("Warnings listed", "count", len(list))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&includeHidden, "include-hidden", false, "also show moderated warnings")
	return cmd
}

func warningsHideCmd() *cobra.Command {
	var ids []int
	var unhide bool

	cmd := &cobra.Command{
		Use:   "hide",
		Short: "Hide (or unhide) warnings by id",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(ids) == 0 {
				return fmt.Errorf("--ids is required")
			}
			return withPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				res := warnings.BatchSetHide(ctx, pool, ids, !unhide)
				for _, e := range res.Errors {
					logger.Warn("Row failed", "error", e)
				}
				logger.Info("Moderation finished", "summary", res.Summary())
				if res.Failed > 0 {
					return fmt.Errorf("%d of %d updates failed", res.Failed, len(ids))
				}
				return nil
			})
		},
	}

	cmd.Flags().IntSliceVar(&ids, "ids", nil, "warning ids (comma separated)")
	cmd.Flags().BoolVar(&unhide, "unhide", false, "clear the hide flag instead of setting it")
	return cmd
}
