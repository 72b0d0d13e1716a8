package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"watchlog/internal/config"
	"watchlog/internal/history"
	"watchlog/internal/logging"
	"watchlog/internal/resolve"
	"watchlog/internal/tmdb"
	"watchlog/internal/yamtrack"
)

var _ resolve.Catalog = (*tmdb.Client)(nil)

// Failure reasons for records rejected before they reach the catalog.
const (
	ReasonMissingTitle = "MissingTitle"
	ReasonBadDate      = "BadDate"
)

// Runner executes conversion runs against a catalog.
type Runner struct {
	cfg      *config.Config
	resolver *resolve.Resolver
	logger   *slog.Logger
	dryRun   bool
	dedupe   bool
}

// NewRunner wires a Runner from configuration: a run-scoped cache and a
// pacing limiter at one request per configured delay, wrapped around the
// supplied catalog. A zero delay disables pacing.
func NewRunner(cfg *config.Config, catalog resolve.Catalog, logger *slog.Logger) *Runner {
	var pacer *rate.Limiter
	if cfg.Pacing.RequestDelayMS > 0 {
		delay := time.Duration(cfg.Pacing.RequestDelayMS) * time.Millisecond
		pacer = rate.NewLimiter(rate.Every(delay), 1)
	}
	return &Runner{
		cfg:      cfg,
		resolver: resolve.New(catalog, resolve.NewCache(), pacer, logger),
		logger:   logging.NewComponentLogger(logger, "convert"),
		dedupe:   cfg.Convert.DedupeRewatches,
	}
}

// SetDryRun makes Run resolve everything without writing any file.
func (r *Runner) SetDryRun(dryRun bool) {
	r.dryRun = dryRun
}

// SetDedupe overrides the configured rewatch deduplication.
func (r *Runner) SetDedupe(dedupe bool) {
	r.dedupe = dedupe
}

// Run executes one conversion run and returns its summary. Every prepared
// record either contributes output rows or one error-log entry; only a
// rejected access token, context cancellation, or file-level failures abort
// the run as a whole.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	lock := flock.New(r.cfg.Files.Output + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another conversion is already writing %s", r.cfg.Files.Output)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, r.logger)
	started := time.Now()

	records, err := history.Read(r.cfg.Files.Input)
	if err != nil {
		return nil, err
	}
	prepared := history.Preprocess(records, r.dedupe)

	logger.Info("conversion started", logging.Args(
		logging.String("input", r.cfg.Files.Input),
		logging.Int("records", len(records)),
		logging.Int("after_dedup", len(prepared)),
		logging.Bool("dry_run", r.dryRun),
	)...)

	builder := yamtrack.NewBuilder()
	errorLog := &ErrorLog{}

	for index, record := range prepared {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("conversion interrupted: %w", err)
		}
		recordCtx := logging.WithRecordIndex(ctx, index+1)
		if err := r.convertRecord(recordCtx, record, builder, errorLog); err != nil {
			return nil, err
		}
	}

	if !r.dryRun {
		if err := yamtrack.WriteFile(r.cfg.Files.Output, builder.Rows()); err != nil {
			return nil, err
		}
		if err := errorLog.AppendTo(r.cfg.Files.ErrorLog); err != nil {
			return nil, err
		}
	}

	counts := builder.Counts()
	stats := r.resolver.Cache().Stats()
	summary := &Summary{
		RunID:           runID,
		InputRecords:    len(records),
		Deduped:         len(records) - len(prepared),
		ShowRows:        counts.Shows,
		SeasonRows:      counts.Seasons,
		EpisodeRows:     counts.Episodes,
		MovieRows:       counts.Movies,
		FlaggedEpisodes: counts.FlaggedEpisodes,
		Failures:        make(map[string]int),
		CacheHits:       stats.Hits,
		CacheMisses:     stats.Misses,
		Elapsed:         time.Since(started),
		OutputPath:      r.cfg.Files.Output,
		ErrorLogPath:    r.cfg.Files.ErrorLog,
		DryRun:          r.dryRun,
	}
	for _, entry := range errorLog.Entries() {
		summary.Failures[entry.Reason]++
	}

	logger.Info("conversion finished", logging.Args(
		logging.Int("rows", summary.TotalRows()),
		logging.Int("failures", summary.FailureCount()),
		logging.Int("flagged_episodes", summary.FlaggedEpisodes),
		logging.Int("cache_hits", summary.CacheHits),
		logging.Duration("elapsed", summary.Elapsed),
	)...)
	return summary, nil
}

// convertRecord turns one prepared record into output rows or one error-log
// entry. The returned error is nil except for run-fatal conditions.
func (r *Runner) convertRecord(ctx context.Context, record history.Record, builder *yamtrack.Builder, errorLog *ErrorLog) error {
	logger := logging.WithContext(ctx, r.logger)

	if record.ProgramTitle == "" {
		errorLog.Add(record.ProgramTitle, record.SeasonTitle, ReasonMissingTitle)
		logging.WarnWithContext(logger, "record skipped", "record_skipped",
			logging.String(logging.FieldSeasonTitle, record.SeasonTitle),
			logging.String(logging.FieldReason, ReasonMissingTitle),
			logging.String(logging.FieldErrorHint, "the export row has no episode title"),
			logging.String(logging.FieldImpact, "record is listed in the error log"),
		)
		return nil
	}
	if record.WatchedOn.IsZero() {
		errorLog.Add(record.ProgramTitle, record.SeasonTitle, ReasonBadDate)
		logging.WarnWithContext(logger, "record skipped", "record_skipped",
			logging.String(logging.FieldTitle, record.ProgramTitle),
			logging.String(logging.FieldReason, ReasonBadDate),
			logging.String(logging.FieldErrorHint, fmt.Sprintf("date %q is not in a recognized format", record.WatchedOnRaw)),
			logging.String(logging.FieldImpact, "record is listed in the error log"),
		)
		return nil
	}

	match, err := r.resolver.Resolve(ctx, resolve.Request{
		ProgramTitle: record.ProgramTitle,
		SeasonTitle:  record.SeasonTitle,
		WatchedOn:    record.WatchedOn,
	})
	if err != nil {
		// A cancelled context surfaces as a failed catalog call; report the
		// interruption rather than a bogus service error.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("conversion interrupted: %w", ctxErr)
		}
		if errors.Is(err, resolve.ErrAuth) {
			return err
		}
		reason := resolve.Reason(err)
		errorLog.Add(record.ProgramTitle, record.SeasonTitle, reason)
		logging.WarnWithContext(logger, "record not resolved", "record_unresolved",
			logging.String(logging.FieldTitle, record.ProgramTitle),
			logging.String(logging.FieldSeasonTitle, record.SeasonTitle),
			logging.String(logging.FieldReason, reason),
			logging.Error(err),
			logging.String(logging.FieldImpact, "record is listed in the error log"),
		)
		return nil
	}

	builder.Add(record.Profile, record.ProgramTitle, record.WatchedOn, match)
	return nil
}
