package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"watchlog/internal/config"
	"watchlog/internal/convert"
	"watchlog/internal/tmdb"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var inputFlag string
	var outputFlag string
	var errorLogFlag string
	var dryRun bool
	var noDedupe bool

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert the viewing history into a Yamtrack import file",
		Long: `Convert a semicolon-delimited viewing-history export into a Yamtrack
import file. Every record is resolved against TMDB; records that cannot be
resolved are listed in the error log with a reason and the run continues.

Examples:
  watchlog convert
  watchlog convert -i disney_plus_export.csv -o yamtrack_import.csv
  watchlog convert --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if err := applyPathOverride(&cfg.Files.Input, inputFlag); err != nil {
				return err
			}
			if err := applyPathOverride(&cfg.Files.Output, outputFlag); err != nil {
				return err
			}
			if err := applyPathOverride(&cfg.Files.ErrorLog, errorLogFlag); err != nil {
				return err
			}

			logger, err := ctx.buildLogger(cfg)
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}

			client, err := newCatalogClient(cfg)
			if err != nil {
				return err
			}

			runner := convert.NewRunner(cfg, client, logger)
			runner.SetDryRun(dryRun)
			if noDedupe {
				runner.SetDedupe(false)
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			summary, err := runner.Run(runCtx)
			if err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFlag, "input", "i", "", "Viewing-history export to convert (default: files.input)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Import file to write (default: files.output)")
	cmd.Flags().StringVar(&errorLogFlag, "error-log", "", "Error-log file to append to (default: files.error_log)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Resolve every record without writing any file")
	cmd.Flags().BoolVar(&noDedupe, "no-dedupe", false, "Keep every rewatch instead of only the most recent one")

	return cmd
}

// newCatalogClient builds the TMDB client with the configured request
// timeout.
func newCatalogClient(cfg *config.Config) (*tmdb.Client, error) {
	httpClient := &http.Client{Timeout: time.Duration(cfg.Pacing.RequestTimeoutSeconds) * time.Second}
	client, err := tmdb.New(cfg.TMDB.AccessToken, cfg.TMDB.BaseURL, cfg.TMDB.Language, tmdb.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("create TMDB client: %w", err)
	}
	return client, nil
}

func applyPathOverride(target *string, flagValue string) error {
	value := strings.TrimSpace(flagValue)
	if value == "" {
		return nil
	}
	expanded, err := config.ExpandPath(value)
	if err != nil {
		return err
	}
	*target = expanded
	return nil
}

func printSummary(out io.Writer, summary *convert.Summary) {
	rows := [][]string{
		{"Input records", strconv.Itoa(summary.InputRecords)},
		{"Rewatches deduplicated", strconv.Itoa(summary.Deduped)},
		{"Show rows", strconv.Itoa(summary.ShowRows)},
		{"Season rows", strconv.Itoa(summary.SeasonRows)},
		{"Episode rows", strconv.Itoa(summary.EpisodeRows)},
		{"Movie rows", strconv.Itoa(summary.MovieRows)},
		{"Flagged episodes", strconv.Itoa(summary.FlaggedEpisodes)},
		{"Failures", strconv.Itoa(summary.FailureCount())},
		{"Cache hits", strconv.Itoa(summary.CacheHits)},
		{"Cache misses", strconv.Itoa(summary.CacheMisses)},
		{"Elapsed", summary.Elapsed.Round(time.Millisecond).String()},
	}
	fmt.Fprintln(out, renderTable(out, []string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))

	if len(summary.Failures) > 0 {
		reasons := make([]string, 0, len(summary.Failures))
		for reason := range summary.Failures {
			reasons = append(reasons, reason)
		}
		sort.Strings(reasons)
		failureRows := make([][]string, 0, len(reasons))
		for _, reason := range reasons {
			failureRows = append(failureRows, []string{reason, strconv.Itoa(summary.Failures[reason])})
		}
		fmt.Fprintln(out, renderTable(out, []string{"Failure", "Count"}, failureRows, []columnAlignment{alignLeft, alignRight}))
	}

	if summary.DryRun {
		fmt.Fprintln(out, "Dry run: no files were written.")
		return
	}
	fmt.Fprintf(out, "Done! Import file %q was created. See errors at %q.\n", summary.OutputPath, summary.ErrorLogPath)
}
