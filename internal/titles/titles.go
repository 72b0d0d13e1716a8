package titles

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Season/part decoration words in the locales Disney+ exports use.
const qualifierWords = `(?:season|staffel|saison|volume|vol\.?|part|teil|book|buch|chapter|kapitel)`

var (
	whitespacePattern = regexp.MustCompile(`\s+`)

	trailingQualifierPattern = regexp.MustCompile(`(?i)(?:\s*[:\-–—|]\s*|\s+)` + qualifierWords + `\s*(\d{1,2})\s*$`)
	trailingCompactPattern   = regexp.MustCompile(`(?i)(?:\s*[:\-–—|]\s*|\s+)S(\d{1,2})\s*$`)
	bareQualifierPattern     = regexp.MustCompile(`(?i)^` + qualifierWords + `\s*(\d{1,2})$`)
	bareCompactPattern       = regexp.MustCompile(`(?i)^S(\d{1,2})$`)
)

const edgeNoise = " \t\"'´`„“”‚‘’«»:;,|-–—"

// Normalize returns the catalog search key for an export title. It applies
// Unicode NFC, collapses whitespace, and strips trailing season or part
// qualifiers until the string no longer changes. A non-empty input never
// normalizes to the empty string; when stripping would consume everything the
// trimmed original is returned instead. Normalize is idempotent.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := norm.NFC.String(trimmed)
	cleaned = whitespacePattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)
	for cleaned != "" {
		next := trailingQualifierPattern.ReplaceAllString(cleaned, "")
		next = trailingCompactPattern.ReplaceAllString(next, "")
		next = strings.Trim(next, edgeNoise)
		if next == cleaned {
			break
		}
		cleaned = next
	}
	if cleaned == "" {
		return trimmed
	}
	return cleaned
}

// SplitSeason detects a season qualifier in a raw season title and returns
// the base title alongside the season number it named. The base follows the
// Normalize rules, so a title that consists of nothing but a qualifier
// ("Staffel 3") keeps its original text as the base. ok reports whether a
// numbered qualifier was present.
func SplitSeason(raw string) (string, int, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", 0, false
	}
	cleaned := norm.NFC.String(trimmed)
	cleaned = strings.TrimSpace(whitespacePattern.ReplaceAllString(cleaned, " "))

	for _, pattern := range []*regexp.Regexp{
		trailingQualifierPattern,
		trailingCompactPattern,
		bareQualifierPattern,
		bareCompactPattern,
	} {
		match := pattern.FindStringSubmatch(cleaned)
		if len(match) != 2 {
			continue
		}
		number, err := strconv.Atoi(match[1])
		if err != nil || number <= 0 {
			continue
		}
		return Normalize(cleaned), number, true
	}
	return Normalize(cleaned), 0, false
}

// Fold builds the comparison key used to match export names against catalog
// names: accents removed, lowercased, whitespace collapsed. Exact but
// diacritic- and case-insensitive, which is how episode titles line up
// between a localized export and the catalog's localized metadata.
func Fold(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripMarks, value)
	if err != nil {
		folded = value
	}
	folded = strings.ToLower(folded)
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(folded, " "))
}
