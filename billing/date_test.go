package billing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborview/rental-engine/billing"
)

func TestParseDate(t *testing.T) {
	got, err := billing.ParseDate("2025-03-15")
	require.NoError(t, err)
	assert.True(t, got.Equal(d(2025, time.March, 15)))

	_, err = billing.ParseDate("15/03/2025")
	assert.Error(t, err)

	_, err = billing.ParseDate("")
	assert.Error(t, err)
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 31, billing.DaysBetween(d(2025, time.January, 1), d(2025, time.February, 1)))
	assert.Equal(t, 0, billing.DaysBetween(d(2025, time.January, 1), d(2025, time.January, 1)))
	assert.Equal(t, -5, billing.DaysBetween(d(2025, time.January, 6), d(2025, time.January, 1)))
	// Across a leap February
	assert.Equal(t, 29, billing.DaysBetween(d(2024, time.February, 1), d(2024, time.March, 1)))
}

func TestWholeMonths(t *testing.T) {
	tests := []struct {
		name      string
		from, to  billing.Date
		months    int
		remainder int
	}{
		{"exact month", d(2025, time.January, 1), d(2025, time.February, 1), 1, 0},
		{"two months", d(2025, time.January, 1), d(2025, time.March, 1), 2, 0},
		{"month and a half", d(2025, time.January, 1), d(2025, time.February, 15), 1, 14},
		{"under a month", d(2025, time.January, 1), d(2025, time.January, 20), 0, 19},
		// Anchored walk: Jan 31 + 2 months is Mar 31 exactly, even though
		// the single intermediate step would normalize through February.
		{"end-of-month anchor", d(2025, time.January, 31), d(2025, time.March, 31), 2, 0},
		// A single step through a short month still normalizes (Jan 31 +
		// 1 month is Mar 3), so Jan 31 -> Feb 28 is not yet a whole month.
		{"short february", d(2025, time.January, 31), d(2025, time.February, 28), 0, 28},
		{"zero span", d(2025, time.January, 1), d(2025, time.January, 1), 0, 0},
		{"inverted", d(2025, time.March, 1), d(2025, time.January, 1), 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			months, rem := billing.WholeMonths(tt.from, tt.to)
			assert.Equal(t, tt.months, months)
			assert.Equal(t, tt.remainder, rem)
		})
	}
}

func TestMinDate(t *testing.T) {
	a, b := d(2025, time.January, 1), d(2025, time.June, 1)
	assert.True(t, billing.MinDate(a, b).Equal(a))
	assert.True(t, billing.MinDate(b, a).Equal(a))
	assert.True(t, billing.MinDate(a, a).Equal(a))
}

func TestDateString(t *testing.T) {
	assert.Equal(t, "2025-03-05", d(2025, time.March, 5).String())
}
