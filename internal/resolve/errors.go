package resolve

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel markers for resolution failures. Callers classify with errors.Is;
// only ErrAuth is fatal to a run, everything else skips the single record.
var (
	ErrNotFound       = errors.New("title not found")
	ErrSeasonNotFound = errors.New("season not found")
	ErrService        = errors.New("catalog service failure")
	ErrAuth           = errors.New("catalog authentication failure")
)

// Failure-reason labels written to the error log and counted in the run
// summary. Stable strings; downstream tooling matches on them.
const (
	ReasonNotFound       = "NotFound"
	ReasonSeasonNotFound = "SeasonNotFound"
	ReasonService        = "ServiceError"
	ReasonAuth           = "AuthError"
)

// Wrap builds an error message that includes operation context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if marker == nil {
		marker = ErrService
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Reason maps a resolution error to its error-log label. Unclassified errors
// count as service failures so a transient outage is never mistaken for a
// title that does not exist.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return ReasonNotFound
	case errors.Is(err, ErrSeasonNotFound):
		return ReasonSeasonNotFound
	case errors.Is(err, ErrAuth):
		return ReasonAuth
	default:
		return ReasonService
	}
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "resolution failure"
	}
	return strings.Join(parts, ": ")
}
