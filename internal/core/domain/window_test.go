package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWindow_String tests provenance rendering
func TestWindow_String(t *testing.T) {
	w := NewWindow(2024, time.July, 1, 2024, time.December, 31)
	assert.Equal(t, "2024-07-01 to 2024-12-31", w.String())
}

// TestWindow_Qualifier tests search qualifier rendering
func TestWindow_Qualifier(t *testing.T) {
	w := NewWindow(2024, time.November, 1, 2024, time.November, 30)
	assert.Equal(t, "2024-11-01..2024-11-30", w.Qualifier())
}

// TestPartitionWindows_Default tests the full default coverage table:
// monthly windows from 2023-07, half-month windows from 2025-03
func TestPartitionWindows_Default(t *testing.T) {
	windows := PartitionWindows(DefaultWindowStart, DefaultWindowEnd, DefaultFineAfter)

	require.Len(t, windows, 24)
	assert.Equal(t, "2023-07-01..2023-07-31", windows[0].Qualifier())
	assert.Equal(t, "2023-12-01..2023-12-31", windows[5].Qualifier())
	assert.Equal(t, "2024-02-01..2024-02-29", windows[7].Qualifier())
	assert.Equal(t, "2025-02-01..2025-02-28", windows[19].Qualifier())
	assert.Equal(t, "2025-03-01..2025-03-15", windows[20].Qualifier())
	assert.Equal(t, "2025-03-16..2025-03-31", windows[21].Qualifier())
	assert.Equal(t, "2025-04-01..2025-04-15", windows[22].Qualifier())
	assert.Equal(t, "2025-04-16..2025-04-30", windows[23].Qualifier())
}

// TestPartitionWindows_Coverage tests that windows are chronologically
// ordered, disjoint, and cover the range without gaps
func TestPartitionWindows_Coverage(t *testing.T) {
	start := Date(2023, time.July, 1)
	end := Date(2025, time.April, 30)
	windows := PartitionWindows(start, end, Date(2025, time.March, 1))

	require.NotEmpty(t, windows)
	assert.Equal(t, start, windows[0].Start)
	assert.Equal(t, end, windows[len(windows)-1].End)
	for i, w := range windows {
		assert.False(t, w.Start.After(w.End), "window %d inverted", i)
		if i > 0 {
			assert.Equal(t, windows[i-1].End.AddDate(0, 0, 1), w.Start,
				"gap or overlap before window %d", i)
		}
	}
}

// TestPartitionWindows_LeapFebruary tests leap-year month ends
func TestPartitionWindows_LeapFebruary(t *testing.T) {
	windows := PartitionWindows(Date(2024, time.February, 1), Date(2024, time.February, 29), Date(2026, time.January, 1))

	require.Len(t, windows, 1)
	assert.Equal(t, "2024-02-01..2024-02-29", windows[0].Qualifier())
}

// TestPartitionWindows_PartialFinalWindow tests clamping the last window
// to a range end inside a month
func TestPartitionWindows_PartialFinalWindow(t *testing.T) {
	windows := PartitionWindows(Date(2024, time.January, 1), Date(2024, time.March, 10), Date(2026, time.January, 1))

	require.Len(t, windows, 3)
	assert.Equal(t, "2024-03-01..2024-03-10", windows[2].Qualifier())
}

// TestPartitionWindows_FineClampedEnd tests a fine month cut short before
// its second half begins
func TestPartitionWindows_FineClampedEnd(t *testing.T) {
	fine := Date(2025, time.March, 1)
	windows := PartitionWindows(Date(2025, time.March, 1), Date(2025, time.March, 10), fine)

	require.Len(t, windows, 1)
	assert.Equal(t, "2025-03-01..2025-03-10", windows[0].Qualifier())
}

// TestPartitionWindows_AllFine tests a range entirely under fine
// granularity
func TestPartitionWindows_AllFine(t *testing.T) {
	windows := PartitionWindows(Date(2025, time.March, 1), Date(2025, time.April, 30), Date(2025, time.March, 1))

	require.Len(t, windows, 4)
	assert.Equal(t, "2025-03-01..2025-03-15", windows[0].Qualifier())
	assert.Equal(t, "2025-03-16..2025-03-31", windows[1].Qualifier())
	assert.Equal(t, "2025-04-01..2025-04-15", windows[2].Qualifier())
	assert.Equal(t, "2025-04-16..2025-04-30", windows[3].Qualifier())
}

// TestPartitionWindows_InvertedRange tests that an inverted range yields
// nothing
func TestPartitionWindows_InvertedRange(t *testing.T) {
	windows := PartitionWindows(Date(2025, time.May, 1), Date(2025, time.April, 1), Date(2025, time.March, 1))
	assert.Empty(t, windows)
}

// TestPartitionWindows_SingleDay tests a one-day range
func TestPartitionWindows_SingleDay(t *testing.T) {
	day := Date(2024, time.June, 15)
	windows := PartitionWindows(day, day, Date(2026, time.January, 1))

	require.Len(t, windows, 1)
	assert.Equal(t, day, windows[0].Start)
	assert.Equal(t, day, windows[0].End)
}
