package freebusy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 7, 14, 9, 0, 0, 0, time.UTC)

// at returns base shifted by h hours.
func at(h int) time.Time {
	return base.Add(time.Duration(h) * time.Hour)
}

func TestFindGaps(t *testing.T) {
	hour := time.Hour

	tests := []struct {
		name     string
		busy     []Interval
		min      time.Duration
		expected []Slot
	}{
		{
			name:     "no busy intervals gives the whole window",
			busy:     nil,
			min:      hour,
			expected: []Slot{{Start: at(0), End: at(8)}},
		},
		{
			name: "single interval splits the window",
			busy: []Interval{{Start: at(2), End: at(3)}},
			min:  hour,
			expected: []Slot{
				{Start: at(0), End: at(2)},
				{Start: at(3), End: at(8)},
			},
		},
		{
			name: "gap shorter than minimum is skipped",
			busy: []Interval{
				{Start: at(1), End: at(2)},
				{Start: at(2).Add(30 * time.Minute), End: at(8)},
			},
			min:      hour,
			expected: []Slot{{Start: at(0), End: at(1)}},
		},
		{
			name: "unsorted input is sorted before the sweep",
			busy: []Interval{
				{Start: at(5), End: at(6)},
				{Start: at(1), End: at(2)},
			},
			min: hour,
			expected: []Slot{
				{Start: at(0), End: at(1)},
				{Start: at(2), End: at(5)},
				{Start: at(6), End: at(8)},
			},
		},
		{
			name: "nested interval does not reopen busy time",
			busy: []Interval{
				{Start: at(1), End: at(5)},
				{Start: at(2), End: at(3)},
			},
			min: hour,
			expected: []Slot{
				{Start: at(0), End: at(1)},
				{Start: at(5), End: at(8)},
			},
		},
		{
			name: "overlapping intervals merge",
			busy: []Interval{
				{Start: at(1), End: at(3)},
				{Start: at(2), End: at(4)},
			},
			min: hour,
			expected: []Slot{
				{Start: at(0), End: at(1)},
				{Start: at(4), End: at(8)},
			},
		},
		{
			name:     "fully busy window",
			busy:     []Interval{{Start: at(0), End: at(8)}},
			min:      hour,
			expected: nil,
		},
		{
			name:     "interval flush with window end leaves no trailing slot",
			busy:     []Interval{{Start: at(7), End: at(8)}},
			min:      hour,
			expected: []Slot{{Start: at(0), End: at(7)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindGaps(tt.busy, at(0), at(8), tt.min)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// The union of free slots and merged busy time must span exactly the
// window, and no slot may overlap any busy interval.
func TestFindGapsCoversWindow(t *testing.T) {
	busy := []Interval{
		{Start: at(1), End: at(2)},
		{Start: at(3), End: at(4)},
		{Start: at(6), End: at(7)},
	}
	slots := FindGaps(busy, at(0), at(8), time.Minute)

	require.Len(t, slots, 4)
	// Slots and busy intervals tile the window without gaps.
	assert.Equal(t, at(0), slots[0].Start)
	assert.Equal(t, at(8), slots[len(slots)-1].End)
	for _, s := range slots {
		for _, b := range busy {
			overlap := s.Start.Before(b.End) && b.Start.Before(s.End)
			assert.False(t, overlap, "slot %v overlaps busy %v", s, b)
		}
	}
}

// Slots come out in chronological order and the input slice is not mutated.
func TestFindGapsInputUntouched(t *testing.T) {
	busy := []Interval{
		{Start: at(5), End: at(6)},
		{Start: at(1), End: at(2)},
	}
	_ = FindGaps(busy, at(0), at(8), time.Hour)

	assert.Equal(t, at(5), busy[0].Start, "caller's slice must keep its order")
}

func TestSlotDuration(t *testing.T) {
	s := Slot{Start: at(0), End: at(2)}
	assert.Equal(t, 2*time.Hour, s.Duration())
}
