// Package texttable recovers per-weekday menu data from layout-preserving
// plain text, as produced by pdftotext -layout from weekly menu flyers.
// Column boundaries are inferred from marker-phrase positions in anchor
// lines, dish and price tokens are recovered by pattern matching, and
// structurally anomalous weeks fail closed instead of misaligning columns.
//
// The package contains one parser per text provider (FMI Bistro, IPP
// Bistro, Mediziner Mensa); all of them implement mensa.WeekParser.
package texttable

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// maxStripIterations bounds the fixed-point marker stripping loop so that
// adversarial input cannot spin it forever.
const maxStripIterations = 10

// Normalize canonicalizes extracted text: NFKC folds decomposed diacritics
// (e.g. SMALL_LETTER_A + COMBINING_DIAERESIS) into single runes, and runs
// of whitespace collapse to one space.
func Normalize(s string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
}

// StripAll repeatedly extracts and removes all matches of re from s until
// no further matches appear. Adjacent marker runs can re-expose nested
// matches after the first strip, which is why a single pass is not enough.
// Matches are replaced by a single space to keep token boundaries intact.
func StripAll(re *regexp.Regexp, s string) (matches []string, rest string) {
	for range maxStripIterations {
		found := re.FindAllString(s, -1)
		if len(found) == 0 {
			break
		}
		matches = append(matches, found...)
		s = re.ReplaceAllString(s, " ")
	}
	return matches, s
}

// ParsePrice converts a German decimal-comma amount ("3,50") to a float.
func ParsePrice(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "€", ""))
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

// runeIndex returns the rune offset of the first occurrence of substr in s,
// or -1. Column arithmetic works in runes because pdftotext aligns columns
// by character, not by byte.
func runeIndex(s, substr string) int {
	i := strings.Index(s, substr)
	if i < 0 {
		return -1
	}
	return utf8.RuneCountInString(s[:i])
}

// findAllRuneIndex is FindAllStringIndex with offsets converted to runes.
func findAllRuneIndex(re *regexp.Regexp, s string) [][2]int {
	var spans [][2]int
	for _, loc := range re.FindAllStringIndex(s, -1) {
		spans = append(spans, [2]int{
			utf8.RuneCountInString(s[:loc[0]]),
			utf8.RuneCountInString(s[:loc[1]]),
		})
	}
	return spans
}
