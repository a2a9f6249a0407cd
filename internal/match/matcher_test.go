package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedbot/internal/calendar"
	"schedbot/internal/contacts"
	"schedbot/internal/intent"
)

func day(d, h int) time.Time {
	return time.Date(2025, 7, d, h, 0, 0, 0, time.UTC)
}

func fixtures() []calendar.Event {
	return []calendar.Event{
		{
			ID:        "evt1",
			Summary:   "Standup",
			Start:     day(15, 9),
			End:       day(15, 10),
			Attendees: []string{"vlds@umich.edu"},
		},
		{
			ID:        "evt2",
			Summary:   "Design review",
			Start:     day(15, 14),
			End:       day(15, 15),
			Attendees: []string{"akashmehta556@gmail.com", "eliana@gocadre.ai"},
		},
		{
			ID:        "evt3",
			Summary:   "1:1 akashmehta556@gmail.com",
			Start:     day(16, 11),
			End:       day(16, 12),
			Attendees: []string{"srilakp@pdx.edu"},
		},
	}
}

func TestSelectByAttendeeSuperset(t *testing.T) {
	in := intent.Intent{
		Summary:   intent.DefaultSummary,
		Attendees: []contacts.Attendee{{Email: "eliana@gocadre.ai"}},
	}

	got, ok := Select(fixtures(), in)
	require.True(t, ok)
	assert.Equal(t, "evt2", got.ID)
}

// When two events qualify, the chronologically earlier one wins because
// the gateway hands events over in start order.
func TestSelectTieGoesToEarlier(t *testing.T) {
	events := []calendar.Event{
		{ID: "early", Start: day(15, 9), Attendees: []string{"vlds@umich.edu"}},
		{ID: "late", Start: day(16, 9), Attendees: []string{"vlds@umich.edu"}},
	}
	in := intent.Intent{
		Summary:   intent.DefaultSummary,
		Attendees: []contacts.Attendee{{Email: "vlds@umich.edu"}},
	}

	got, ok := Select(events, in)
	require.True(t, ok)
	assert.Equal(t, "early", got.ID)
}

func TestSelectSummaryMustMatchWhenGiven(t *testing.T) {
	in := intent.Intent{
		Summary:   "design REVIEW",
		Attendees: []contacts.Attendee{{Email: "akashmehta556@gmail.com"}},
	}

	got, ok := Select(fixtures(), in)
	require.True(t, ok)
	assert.Equal(t, "evt2", got.ID)

	in.Summary = "Retro"
	_, ok = Select(fixtures(), in)
	assert.False(t, ok)
}

// With no attendee superset anywhere, the fallback finds the event whose
// summary mentions the address.
func TestSelectSummaryFallback(t *testing.T) {
	in := intent.Intent{
		Summary: intent.DefaultSummary,
		Attendees: []contacts.Attendee{
			{Email: "akashmehta556@gmail.com"},
			{Email: "odelllaxx@gmail.com"},
		},
	}

	got, ok := Select(fixtures(), in)
	require.True(t, ok)
	assert.Equal(t, "evt3", got.ID)
}

func TestSelectNoMatch(t *testing.T) {
	in := intent.Intent{
		Summary:   intent.DefaultSummary,
		Attendees: []contacts.Attendee{{Email: "nobody@example.com"}},
	}

	got, ok := Select(fixtures(), in)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestSelectCaseInsensitiveAttendees(t *testing.T) {
	in := intent.Intent{
		Summary:   intent.DefaultSummary,
		Attendees: []contacts.Attendee{{Email: "ELIANA@GOCADRE.AI"}},
	}

	got, ok := Select(fixtures(), in)
	require.True(t, ok)
	assert.Equal(t, "evt2", got.ID)
}

func TestFirstOnDate(t *testing.T) {
	got, ok := FirstOnDate(fixtures(), day(15, 0))
	require.True(t, ok)
	assert.Equal(t, "evt1", got.ID, "earliest event on the date wins")

	got, ok = FirstOnDate(fixtures(), day(16, 23))
	require.True(t, ok)
	assert.Equal(t, "evt3", got.ID)

	_, ok = FirstOnDate(fixtures(), day(20, 0))
	assert.False(t, ok)
}
