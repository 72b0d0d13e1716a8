package history

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"
)

// Record is one row of the viewing-history export. WatchedOn is the zero
// time when the date field was empty or unparseable; WatchedOnRaw keeps the
// original text for error reporting.
type Record struct {
	Profile      string
	ProgramTitle string
	SeasonTitle  string
	WatchedOn    time.Time
	WatchedOnRaw string
}

// Episode reports whether the record references a TV episode. The export
// marks episodes by filling the season title; movies leave it empty.
func (r Record) Episode() bool {
	return r.SeasonTitle != ""
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Read parses a viewing-history export file. The first row is treated as the
// header and discarded. Rows whose title fields are both empty carry nothing
// to convert and are skipped without being counted; every other row becomes
// a Record even when its date does not parse, so callers can report it.
func Read(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open viewing history: %w", err)
	}
	defer file.Close()

	buffered := bufio.NewReader(file)
	if prefix, err := buffered.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = buffered.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(buffered)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("viewing history %s is empty", path)
		}
		return nil, fmt.Errorf("read header row: %w", err)
	}

	var records []Record
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read viewing history row: %w", err)
		}

		record := Record{
			Profile:      fieldAt(fields, 0),
			ProgramTitle: fieldAt(fields, 1),
			SeasonTitle:  fieldAt(fields, 2),
			WatchedOnRaw: fieldAt(fields, 3),
		}
		if record.ProgramTitle == "" && record.SeasonTitle == "" {
			continue
		}
		if parsed, err := ParseWatchDate(record.WatchedOnRaw); err == nil {
			record.WatchedOn = parsed
		}
		records = append(records, record)
	}
	return records, nil
}

func fieldAt(fields []string, index int) string {
	if index >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[index])
}

// watchDateLayouts lists the date formats seen in export files, ISO first.
// The day-first layouts accept both padded and unpadded numbers.
var watchDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2.1.2006",
	"2.1.2006 15:04:05",
}

// ParseWatchDate parses a watch date from the export. Time-of-day components
// are accepted and preserved; output formatting decides what to keep.
func ParseWatchDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("date is empty")
	}
	for _, layout := range watchDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// Preprocess sorts records by watch date ascending (records without a date
// first) and, when dedupeRewatches is set, collapses records sharing the
// same program and season title down to the last occurrence, so a rewatch
// keeps only its most recent date. The input slice is not modified.
func Preprocess(records []Record, dedupeRewatches bool) []Record {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].WatchedOn.Before(sorted[j].WatchedOn)
	})
	if !dedupeRewatches {
		return sorted
	}

	type titleKey struct {
		program string
		season  string
	}
	last := make(map[titleKey]int, len(sorted))
	for i, record := range sorted {
		last[titleKey{record.ProgramTitle, record.SeasonTitle}] = i
	}
	deduped := make([]Record, 0, len(last))
	for i, record := range sorted {
		if last[titleKey{record.ProgramTitle, record.SeasonTitle}] == i {
			deduped = append(deduped, record)
		}
	}
	return deduped
}
