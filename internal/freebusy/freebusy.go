package freebusy

import (
	"sort"
	"time"
)

// Interval is a busy time range, Start < End. Intervals from different
// calendars may overlap or nest before merging.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Slot is a free time range of at least the requested minimum duration.
// Slots never overlap any busy interval.
type Slot struct {
	Start time.Time
	End   time.Time
}

// Duration returns the length of the slot.
func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// FindGaps returns the free slots of at least min duration between
// windowStart and windowEnd, in chronological order.
//
// The input is sorted by start (stable, preserving original order on ties)
// and swept with a pointer that only moves forward: a gap between the
// pointer and the next interval's start is emitted when long enough, then
// the pointer advances to max(pointer, interval.End). The max keeps nested
// and overlapping intervals from dragging the pointer backwards, which
// would manufacture free time inside a busy block. A trailing gap up to
// windowEnd is checked last.
func FindGaps(busy []Interval, windowStart, windowEnd time.Time, min time.Duration) []Slot {
	sorted := make([]Interval, len(busy))
	copy(sorted, busy)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	var slots []Slot
	pointer := windowStart
	for _, iv := range sorted {
		if iv.Start.Sub(pointer) >= min {
			slots = append(slots, Slot{Start: pointer, End: iv.Start})
		}
		if iv.End.After(pointer) {
			pointer = iv.End
		}
	}
	if windowEnd.Sub(pointer) >= min {
		slots = append(slots, Slot{Start: pointer, End: windowEnd})
	}
	return slots
}
