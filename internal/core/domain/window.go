package domain

import "time"

// DateLayout is the date format used in search qualifiers, provenance
// tags, and configuration values.
const DateLayout = "2006-01-02"

// Window is a closed date interval [Start, End]. Both bounds are
// inclusive and carry date precision only (midnight UTC).
type Window struct {
	// Start is the first day covered by the window.
	Start time.Time

	// End is the last day covered by the window.
	End time.Time
}

// NewWindow builds a window from date-only components.
func NewWindow(startYear int, startMonth time.Month, startDay, endYear int, endMonth time.Month, endDay int) Window {
	return Window{
		Start: Date(startYear, startMonth, startDay),
		End:   Date(endYear, endMonth, endDay),
	}
}

// Date returns midnight UTC on the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// String renders the window for provenance tags, e.g.
// "2024-07-01 to 2024-12-31".
func (w Window) String() string {
	return w.Start.Format(DateLayout) + " to " + w.End.Format(DateLayout)
}

// Qualifier renders the window as a search range qualifier value, e.g.
// "2024-07-01..2024-12-31".
func (w Window) Qualifier() string {
	return w.Start.Format(DateLayout) + ".." + w.End.Format(DateLayout)
}

// IsZero reports whether the window is unset.
func (w Window) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

// PartitionWindows slices the coverage range [start, end] into ordered,
// disjoint windows whose union is exactly the range. Granularity is one
// window per calendar month; months beginning on or after fineAfter are
// split into two half-month windows (1st-15th and 16th-end), since
// recent periods carry enough volume to blow past the per-query result
// cap on a full month. The final window is clamped to end and may be
// shorter than its nominal span.
func PartitionWindows(start, end, fineAfter time.Time) []Window {
	var out []Window
	if start.After(end) {
		return out
	}
	cur := start
	for !cur.After(end) {
		monthStart := Date(cur.Year(), cur.Month(), 1)
		monthEnd := monthStart.AddDate(0, 1, -1)
		if monthEnd.After(end) {
			monthEnd = end
		}
		if !monthStart.Before(fineAfter) {
			mid := Date(cur.Year(), cur.Month(), 15)
			if cur.After(mid) {
				out = append(out, Window{Start: cur, End: monthEnd})
			} else if monthEnd.After(mid) {
				out = append(out, Window{Start: cur, End: mid})
				out = append(out, Window{Start: mid.AddDate(0, 0, 1), End: monthEnd})
			} else {
				out = append(out, Window{Start: cur, End: monthEnd})
			}
		} else {
			out = append(out, Window{Start: cur, End: monthEnd})
		}
		cur = monthEnd.AddDate(0, 0, 1)
	}
	return out
}
