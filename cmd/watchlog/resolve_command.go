package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"watchlog/internal/history"
	"watchlog/internal/resolve"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var seasonTitle string
	var watchDate string
	var kind string

	cmd := &cobra.Command{
		Use:   "resolve <title>",
		Short: "Resolve a single title against the catalog",
		Long: `Resolve one title the way a conversion run would, without reading or
writing any file. Useful for checking why a record landed in the error log.

Examples:
  watchlog resolve "Heat"
  watchlog resolve "Bluff" --season "Prison Break"
  watchlog resolve "The Bear" --kind tv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			logger, err := ctx.buildLogger(cfg)
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}
			client, err := newCatalogClient(cfg)
			if err != nil {
				return err
			}

			req := resolve.Request{
				ProgramTitle: strings.TrimSpace(args[0]),
				SeasonTitle:  strings.TrimSpace(seasonTitle),
			}
			if value := strings.TrimSpace(watchDate); value != "" {
				parsed, err := history.ParseWatchDate(value)
				if err != nil {
					return fmt.Errorf("parse --date: %w", err)
				}
				req.WatchedOn = parsed
			}

			resolver := resolve.New(client, resolve.NewCache(), nil, logger)

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var match resolve.Match
			switch strings.ToLower(strings.TrimSpace(kind)) {
			case "", "auto":
				match, err = resolver.Resolve(runCtx, req)
			case "movie":
				match, err = resolver.ResolveMovie(runCtx, req.ProgramTitle)
			case "tv":
				match, err = resolver.ResolveShow(runCtx, req)
			default:
				return fmt.Errorf("unknown --kind %q (expected auto, movie, or tv)", kind)
			}
			if err != nil {
				return err
			}

			printMatch(cmd.OutOrStdout(), req, match)
			return nil
		},
	}

	cmd.Flags().StringVar(&seasonTitle, "season", "", "Season title column value to resolve with")
	cmd.Flags().StringVar(&watchDate, "date", "", "Watch date used for air-date matching (e.g. 2024-03-09)")
	cmd.Flags().StringVar(&kind, "kind", "auto", "Force the lookup kind: auto, movie, or tv")

	return cmd
}

func printMatch(out io.Writer, req resolve.Request, match resolve.Match) {
	rows := [][]string{
		{"Kind", string(match.Kind)},
		{"Catalog ID", strconv.FormatInt(match.ID, 10)},
		{"Title", match.Title},
	}
	if match.Kind == resolve.KindShow && (req.SeasonTitle != "" || match.EpisodeResolved()) {
		rows = append(rows, []string{"Season", strconv.Itoa(match.SeasonNumber)})
		episode := "not matched"
		if match.EpisodeResolved() {
			episode = strconv.Itoa(match.EpisodeNumber)
		}
		rows = append(rows, []string{"Episode", episode})
	}
	fmt.Fprintln(out, renderTable(out, []string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignLeft}))
}
