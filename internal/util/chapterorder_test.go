package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func key(vol *int, display string, id int64) ChapterKey {
	return ChapterKey{Volume: vol, DisplayNumber: display, ID: id}
}

func intPtr(n int) *int { return &n }

func TestCompareDisplayNumbers(t *testing.T) {
	// Numeric tokens compare as numbers, not strings.
	assert.Negative(t, CompareDisplayNumbers("2", "10"))
	assert.Negative(t, CompareDisplayNumbers("10", "10.5"))
	assert.Zero(t, CompareDisplayNumbers("10.0", "10"))

	// Numeric tokens sort before free-form ones.
	assert.Negative(t, CompareDisplayNumbers("100", "Extra"))
	assert.Positive(t, CompareDisplayNumbers("Omake", "1"))

	// Free-form tokens fall back to case-insensitive ordering.
	assert.Negative(t, CompareDisplayNumbers("extra", "Omake"))
	assert.Zero(t, CompareDisplayNumbers("EXTRA", "extra"))
}

func TestCompareChapterKeys(t *testing.T) {
	// Volume is primary; nil volumes sort last.
	assert.Negative(t, CompareChapterKeys(key(intPtr(1), "99", 1), key(intPtr(2), "1", 2)))
	assert.Negative(t, CompareChapterKeys(key(intPtr(5), "1", 1), key(nil, "1", 2)))

	// Same volume falls through to the display number.
	assert.Negative(t, CompareChapterKeys(key(intPtr(1), "2", 9), key(intPtr(1), "10", 3)))

	// Full tie breaks on id so the order is total.
	assert.Negative(t, CompareChapterKeys(key(nil, "1", 3), key(nil, "1", 7)))
	assert.Zero(t, CompareChapterKeys(key(nil, "1", 3), key(nil, "1", 3)))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "one-punch-man", Slugify("One-Punch Man"))
	assert.Equal(t, "berserk", Slugify("  Berserk  "))
	assert.Equal(t, "dr-stone", Slugify("Dr. STONE!"))
	assert.Equal(t, "", Slugify("!!!"))
}
