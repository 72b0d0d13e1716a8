package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for conversion run identifiers.
	FieldRunID = "run_id"
	// FieldRecordIndex is the standardized structured logging key for the 1-based input record position.
	FieldRecordIndex = "record_index"
	// FieldTitle is the standardized structured logging key for program titles.
	FieldTitle = "title"
	// FieldSeasonTitle is the standardized structured logging key for raw season titles.
	FieldSeasonTitle = "season_title"
	// FieldKind is the standardized structured logging key for the resolved media kind.
	FieldKind = "kind"
	// FieldReason is the standardized structured logging key for failure reasons.
	FieldReason = "reason"
	// FieldEventType is the standardized structured logging key for event classification.
	FieldEventType = "event_type"
	// FieldErrorHint suggests the operator's next step after a warning or error.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for the user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldDecisionType is the standardized structured logging key for disambiguation decisions.
	FieldDecisionType = "decision_type"
)

type contextKey int

const (
	runIDKey contextKey = iota
	recordIndexKey
)

// WithRunID stores the conversion run identifier on the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	if runID == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFromContext extracts the run identifier, if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok && id != ""
}

// WithRecordIndex stores the 1-based input record position on the context.
func WithRecordIndex(ctx context.Context, index int) context.Context {
	if index <= 0 {
		return ctx
	}
	return context.WithValue(ctx, recordIndexKey, index)
}

// RecordIndexFromContext extracts the record position, if present.
func RecordIndexFromContext(ctx context.Context) (int, bool) {
	index, ok := ctx.Value(recordIndexKey).(int)
	return index, ok && index > 0
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if id, ok := RunIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRunID, id))
	}
	if index, ok := RecordIndexFromContext(ctx); ok {
		fields = append(fields, slog.Int(FieldRecordIndex, index))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from
// the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
