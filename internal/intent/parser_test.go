package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"schedbot/internal/contacts"
)

func TestParse(t *testing.T) {
	p := NewParser(nil, nil)

	tests := []struct {
		name     string
		query    string
		expected Intent
	}{
		{
			name:  "create with address and time",
			query: "create a meeting with odelllaxx@gmail.com at 5pm tomorrow",
			expected: Intent{
				Summary:   "Meeting",
				When:      "5pm tomorrow",
				Attendees: []contacts.Attendee{{Email: "odelllaxx@gmail.com"}},
				Rule:      "create",
			},
		},
		{
			name:  "schedule without article",
			query: "schedule meeting with Akash at 3pm",
			expected: Intent{
				Summary:   "Meeting",
				When:      "3pm",
				Attendees: []contacts.Attendee{{Email: "akashmehta556@gmail.com"}},
				Rule:      "create",
			},
		},
		{
			name:  "create with two names",
			query: "create a meeting with Akash and Eliana at 2pm thursday",
			expected: Intent{
				Summary: "Meeting",
				When:    "2pm thursday",
				Attendees: []contacts.Attendee{
					{Email: "akashmehta556@gmail.com"},
					{Email: "eliana@gocadre.ai"},
				},
				Rule: "create",
			},
		},
		{
			name:  "reschedule by attendee",
			query: "reschedule meeting with odelllaxx@gmail.com to 6pm saturday",
			expected: Intent{
				Summary:   "Meeting",
				When:      "6pm saturday",
				Attendees: []contacts.Attendee{{Email: "odelllaxx@gmail.com"}},
				Rule:      "reschedule",
			},
		},
		{
			name:  "reschedule with prior day",
			query: "reschedule the meeting with Akash on tuesday to 5pm thursday",
			expected: Intent{
				Summary:   "Meeting",
				When:      "5pm thursday",
				OldWhen:   "tuesday",
				Attendees: []contacts.Attendee{{Email: "akashmehta556@gmail.com"}},
				Rule:      "reschedule",
			},
		},
		{
			name:  "reschedule first meeting by date",
			query: "reschedule the first meeting tomorrow to thursday at 5pm",
			expected: Intent{
				Summary: "Meeting",
				When:    "thursday at 5pm",
				OldWhen: "tomorrow",
				IsFirst: true,
				Rule:    "reschedule-first",
			},
		},
		{
			name:  "cancel by attendee",
			query: "cancel the meeting with Akash",
			expected: Intent{
				Summary:   "Meeting",
				Attendees: []contacts.Attendee{{Email: "akashmehta556@gmail.com"}},
				Rule:      "cancel",
			},
		},
		{
			name:  "cancel with day filter keeps attendees intact",
			query: "cancel meeting with Akash and odell on saturday",
			expected: Intent{
				Summary: "Meeting",
				Attendees: []contacts.Attendee{
					{Email: "akashmehta556@gmail.com"},
					{Email: "odelllaxx@gmail.com"},
				},
				Rule: "cancel",
			},
		},
		{
			name:  "generic summary phrase",
			query: "Team sync with Akash and Eliana at 2pm",
			expected: Intent{
				Summary: "Team sync",
				When:    "2pm",
				Attendees: []contacts.Attendee{
					{Email: "akashmehta556@gmail.com"},
					{Email: "eliana@gocadre.ai"},
				},
				Rule: "generic",
			},
		},
		{
			name:     "no rule matches",
			query:    "what does my week look like",
			expected: Intent{Summary: "Meeting"},
		},
		{
			name:     "empty query",
			query:    "",
			expected: Intent{Summary: "Meeting"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, p.Parse(tt.query))
		})
	}
}

// The word "first" anywhere forces IsFirst regardless of the matched rule.
func TestParseFirstFlag(t *testing.T) {
	p := NewParser(nil, nil)

	got := p.Parse("cancel the meeting with Akash, the first one")
	assert.True(t, got.IsFirst)

	got = p.Parse("reschedule meeting with Akash to 5pm")
	assert.False(t, got.IsFirst)
}

// Rule order is a contract: specific phrasings must win over the generic
// catch-all even though the catch-all would also match.
func TestParseRuleOrder(t *testing.T) {
	p := NewParser(nil, nil)

	// "reschedule meeting with X ... at ..." also fits the generic
	// "<summary> with <attendees> at <time>" shape.
	got := p.Parse("reschedule meeting with Akash to saturday at 6pm")
	assert.Equal(t, "reschedule", got.Rule)

	got = p.Parse("cancel the meeting with Eliana at 3pm")
	assert.Equal(t, "cancel", got.Rule)

	got = p.Parse("create a meeting with Faraz at noon")
	assert.Equal(t, "create", got.Rule)
}

func TestParseMatchingIsCaseInsensitive(t *testing.T) {
	p := NewParser(nil, nil)

	got := p.Parse("CREATE A MEETING WITH AKASH AT 5PM")
	assert.Equal(t, "create", got.Rule)
	assert.Equal(t, []contacts.Attendee{{Email: "akashmehta556@gmail.com"}}, got.Attendees)
}
