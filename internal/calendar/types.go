package calendar

import (
	"context"
	"errors"
	"strings"
	"time"

	calendar "google.golang.org/api/calendar/v3"
)

// ErrNotFound is returned when a referenced event does not exist on the
// queried calendar.
var ErrNotFound = errors.New("event not found")

// Gateway is the narrow read/write surface the scheduling core consumes.
// Implementations are bound to a single user's credentials; calendarID
// selects the calendar within that user's account ("primary" in practice).
type Gateway interface {
	ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]Event, error)
	GetEvent(ctx context.Context, calendarID, eventID string) (*Event, error)
	InsertEvent(ctx context.Context, calendarID string, input EventInput) (*Event, error)
	UpdateEventTime(ctx context.Context, calendarID, eventID string, start, end time.Time) (*Event, error)
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
}

// EventInput represents the input for creating a calendar event.
type EventInput struct {
	Summary   string
	Start     time.Time
	End       time.Time
	TimeZone  string
	Attendees []string

	// WithConference requests provider-generated conferencing data
	// (a Google Meet link) for the event.
	WithConference bool
}

// Event is the read view of a calendar entry. The scheduling core only
// reads it and, for the winning match of a reschedule, writes back updated
// start/end through the gateway.
type Event struct {
	ID        string
	Summary   string
	Start     time.Time
	End       time.Time
	Attendees []string
	MeetLink  string
	HTMLLink  string
}

// HasAttendee reports whether the event's attendee set contains the given
// address, compared case-insensitively.
func (e Event) HasAttendee(email string) bool {
	for _, a := range e.Attendees {
		if strings.EqualFold(a, email) {
			return true
		}
	}
	return false
}

// toEvent converts a Google Calendar event to the gateway's Event view.
func toEvent(event *calendar.Event) Event {
	out := Event{
		ID:       event.Id,
		Summary:  event.Summary,
		HTMLLink: event.HtmlLink,
	}

	if event.Start != nil {
		if event.Start.DateTime != "" {
			if t, err := time.Parse(time.RFC3339, event.Start.DateTime); err == nil {
				out.Start = t
			}
		} else if event.Start.Date != "" {
			if t, err := time.Parse("2006-01-02", event.Start.Date); err == nil {
				out.Start = t
			}
		}
	}

	if event.End != nil {
		if event.End.DateTime != "" {
			if t, err := time.Parse(time.RFC3339, event.End.DateTime); err == nil {
				out.End = t
			}
		} else if event.End.Date != "" {
			if t, err := time.Parse("2006-01-02", event.End.Date); err == nil {
				out.End = t
			}
		}
	}

	for _, att := range event.Attendees {
		out.Attendees = append(out.Attendees, att.Email)
	}

	if event.ConferenceData != nil {
		for _, ep := range event.ConferenceData.EntryPoints {
			if ep.EntryPointType == "video" {
				out.MeetLink = ep.Uri
				break
			}
		}
	}

	return out
}
