package match

import (
	"strings"
	"time"

	"schedbot/internal/calendar"
	"schedbot/internal/contacts"
	"schedbot/internal/intent"
)

// Select returns the first event matching the intent, scanning in the
// order given (gateways return chronological order, so ties go to the
// earlier event).
//
// An event qualifies when its attendee set is a superset of the intent's
// attendees and the intent either carries the default summary or matches
// the event summary case-insensitively. If no event qualifies, a second
// pass returns the first event whose summary contains any intent attendee
// address as a substring. Nothing matching means (nil, false); the caller
// reports it, never guesses.
func Select(events []calendar.Event, in intent.Intent) (*calendar.Event, bool) {
	for i := range events {
		if !hasAllAttendees(events[i], in.Attendees) {
			continue
		}
		if in.Summary != intent.DefaultSummary && !strings.EqualFold(events[i].Summary, in.Summary) {
			continue
		}
		return &events[i], true
	}

	for i := range events {
		summary := strings.ToLower(events[i].Summary)
		for _, a := range in.Attendees {
			if strings.Contains(summary, strings.ToLower(a.Email)) {
				return &events[i], true
			}
		}
	}

	return nil, false
}

// FirstOnDate returns the first event falling on the given calendar day
// (UTC), scanning in the order given.
func FirstOnDate(events []calendar.Event, day time.Time) (*calendar.Event, bool) {
	y, m, d := day.UTC().Date()
	for i := range events {
		ey, em, ed := events[i].Start.UTC().Date()
		if ey == y && em == m && ed == d {
			return &events[i], true
		}
	}
	return nil, false
}

func hasAllAttendees(event calendar.Event, attendees []contacts.Attendee) bool {
	for _, a := range attendees {
		if !event.HasAttendee(a.Email) {
			return false
		}
	}
	return true
}
