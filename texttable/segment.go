package texttable

import (
	"sort"
	"strings"
)

// Anchor marks where one weekday's column begins in the anchor line(s).
// Offsets are rune positions.
type Anchor struct {
	Weekday int // ISO ordinal, 1=Monday .. 7=Sunday
	Offset  int
}

// SplitColumns carves every line into per-weekday substrings at consecutive
// anchor offsets (the last column extends to end of line) and concatenates
// the slices across lines, yielding one text blob per weekday. Embedded
// newlines never survive: slices are joined with single spaces.
func SplitColumns(lines []string, anchors []Anchor) map[int]string {
	sorted := append([]Anchor(nil), anchors...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })

	blobs := make(map[int]*strings.Builder, len(sorted))
	for _, a := range sorted {
		blobs[a.Weekday] = &strings.Builder{}
	}

	for _, line := range lines {
		runes := []rune(line)
		for i, a := range sorted {
			start := min(a.Offset, len(runes))
			end := len(runes)
			if i+1 < len(sorted) {
				end = min(sorted[i+1].Offset, len(runes))
			}
			b := blobs[a.Weekday]
			b.WriteString(" ")
			b.WriteString(string(runes[start:end]))
		}
	}

	out := make(map[int]string, len(blobs))
	for weekday, b := range blobs {
		out[weekday] = b.String()
	}
	return out
}
