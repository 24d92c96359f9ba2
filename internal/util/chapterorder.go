// Canonical chapter ordering. Chapters are sorted by volume, then by display
// number, then by id, so that "next chapter" resolution and chapter listings
// are deterministic regardless of insertion order.

package util

import (
	"strconv"
	"strings"
)

// ChapterKey carries the fields that participate in canonical ordering.
type ChapterKey struct {
	Volume        *int
	DisplayNumber string
	ID            int64
}

// CompareChapterKeys is a total, deterministic comparator:
//   - volume ascending, chapters without a volume after those with one;
//   - display number numerically when both sides parse as numbers
//     (supporting values like "10.5"), case-insensitive lexicographic
//     otherwise; numeric display numbers sort before non-numeric ones;
//   - chapter id as the final tie-break.
func CompareChapterKeys(a, b ChapterKey) int {
	if c := compareVolumes(a.Volume, b.Volume); c != 0 {
		return c
	}
	if c := CompareDisplayNumbers(a.DisplayNumber, b.DisplayNumber); c != 0 {
		return c
	}
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	}
	return 0
}

// CompareDisplayNumbers compares two chapter display numbers, numerically
// when possible.
func CompareDisplayNumbers(a, b string) int {
	na, aOK := parseNumber(a)
	nb, bOK := parseNumber(b)
	switch {
	case aOK && bOK:
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	case aOK:
		return -1
	case bOK:
		return 1
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func compareVolumes(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	}
	return 0
}

func parseNumber(s string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return n, err == nil
}
