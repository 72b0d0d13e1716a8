package convert

import (
	"fmt"
	"os"
	"strings"
)

// Entry is one line of the error log: the record that produced no output
// rows and the reason label explaining why.
type Entry struct {
	ProgramTitle string
	SeasonTitle  string
	Reason       string
}

// ErrorLog collects per-record failures during a run and flushes them to the
// error-log file once the run finishes.
type ErrorLog struct {
	entries []Entry
}

// Add records one failed record.
func (l *ErrorLog) Add(programTitle, seasonTitle, reason string) {
	l.entries = append(l.entries, Entry{
		ProgramTitle: programTitle,
		SeasonTitle:  seasonTitle,
		Reason:       reason,
	})
}

// Entries returns the collected failures in input order.
func (l *ErrorLog) Entries() []Entry {
	return l.entries
}

// Len returns the number of collected failures.
func (l *ErrorLog) Len() int {
	return len(l.entries)
}

// AppendTo appends the collected failures to the file at path, one
// semicolon-delimited line per entry, creating the file first when needed.
// The file is created even for a clean run so its presence always answers
// whether a conversion happened.
func (l *ErrorLog) AppendTo(path string) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open error log: %w", err)
	}

	var lines strings.Builder
	for _, entry := range l.entries {
		lines.WriteString(entry.ProgramTitle)
		lines.WriteByte(';')
		lines.WriteString(entry.SeasonTitle)
		lines.WriteByte(';')
		lines.WriteString(entry.Reason)
		lines.WriteByte('\n')
	}
	if _, err := file.WriteString(lines.String()); err != nil {
		file.Close()
		return fmt.Errorf("append error log: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close error log: %w", err)
	}
	return nil
}
