package scheduler

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"schedbot/internal/calendar"
	"schedbot/internal/contacts"
	"schedbot/internal/logging"
	"schedbot/internal/match"
	"schedbot/internal/timeparse"
)

var (
	cancelIDPattern = regexp.MustCompile(`(?i)cancel\s+event\s+([A-Za-z0-9_-]+)`)
	eventIDPattern  = regexp.MustCompile(`(?i)\bid\s*:\s*([A-Za-z0-9_-]+)`)
)

const timeFormatHint = "Please use a format like 'Saturday at 3pm' or 'July 16th at 6pm'."

// Create parses the query into a new event and inserts it on the first
// roster user's calendar, with provider conferencing requested. The reply
// is a confirmation or a failure message; Create never returns an error to
// the caller.
func (a *Assistant) Create(ctx context.Context, query string) string {
	if len(a.users) == 0 {
		return "Failed to create event: no calendars configured."
	}
	in := a.parser.Parse(query)
	if in.When == "" {
		return "Failed to create event: no valid time specified."
	}
	if len(in.Attendees) == 0 {
		return "Failed to create event: no valid attendees specified."
	}

	start, err := a.times.Parse(in.When, a.clock())
	if err != nil {
		a.log.Warn("time parse failed", logging.Operation("create"), logging.Err(err))
		return fmt.Sprintf("Failed to create event: could not parse time %q. %s", in.When, timeFormatHint)
	}
	// The weekday may sit outside the captured time text (the generic rule
	// leaves it in the summary), so the correction scans the whole query.
	start = timeparse.NextWeekday(query, start)
	end := start.Add(a.eventLen)

	owner := a.users[0]
	emails := contacts.Emails(in.Attendees)
	event, err := owner.Cal.InsertEvent(ctx, a.calID, calendar.EventInput{
		Summary:        in.Summary,
		Start:          start,
		End:            end,
		TimeZone:       "UTC",
		Attendees:      emails,
		WithConference: true,
	})
	if err != nil {
		a.log.Error("insert failed", logging.Operation("create"),
			logging.User(owner.ID), logging.Err(err))
		return fmt.Sprintf("Failed to create event: %v", err)
	}

	a.log.Info("event created", logging.Operation("create"),
		logging.User(owner.ID), logging.EventID(event.ID))
	return confirmCreated(event, emails)
}

func confirmCreated(event *calendar.Event, emails []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Created %q on %s at %s with %s.",
		event.Summary,
		event.Start.Format("Monday, January 2"),
		event.Start.Format("3:04 PM"),
		strings.Join(emails, ", "))
	if event.MeetLink != "" {
		fmt.Fprintf(&b, " Meet link: %s", event.MeetLink)
	}
	fmt.Fprintf(&b, " (ID: %s)", event.ID)
	return b.String()
}

// Cancel deletes one event. A query of the form "cancel event <id>" skips
// parsing and targets the ID directly across all roster calendars.
// Otherwise the query's attendees, plus optional "on <weekday>" and
// "at <h[:mm]> am/pm" filters, select the event to delete.
func (a *Assistant) Cancel(ctx context.Context, query string) string {
	if m := cancelIDPattern.FindStringSubmatch(query); m != nil {
		return a.cancelByID(ctx, m[1])
	}

	in := a.parser.Parse(query)
	if len(in.Attendees) == 0 {
		return "Failed to cancel event: no attendees or event ID in your request."
	}

	now := a.clock()
	events := a.collectEvents(ctx, now, now.Add(a.lookahead))

	day, hasDay := timeparse.DayFilter(query)
	hour, minute, hasClock := timeparse.ClockFilter(query)

	for _, e := range events {
		if !hasAll(e.Event, in.Attendees) {
			continue
		}
		if hasDay && e.Start.Weekday() != day {
			continue
		}
		if hasClock && (e.Start.Hour() != hour || e.Start.Minute() != minute) {
			continue
		}
		if err := e.Owner.Cal.DeleteEvent(ctx, a.calID, e.ID); err != nil {
			a.log.Error("delete failed", logging.Operation("cancel"),
				logging.User(e.Owner.ID), logging.EventID(e.ID), logging.Err(err))
			return fmt.Sprintf("Failed to cancel event %s: %v", e.ID, err)
		}
		a.log.Info("event cancelled", logging.Operation("cancel"),
			logging.User(e.Owner.ID), logging.EventID(e.ID))
		return fmt.Sprintf("Cancelled %q on %s at %s (ID: %s).",
			e.Summary, e.Start.Format("Monday, January 2"), e.Start.Format("3:04 PM"), e.ID)
	}

	return fmt.Sprintf("Failed to cancel: couldn't find an event with %s.",
		strings.Join(contacts.Emails(in.Attendees), ", "))
}

func (a *Assistant) cancelByID(ctx context.Context, eventID string) string {
	for _, user := range a.users {
		event, err := user.Cal.GetEvent(ctx, a.calID, eventID)
		if errors.Is(err, calendar.ErrNotFound) {
			continue
		}
		if err != nil {
			a.log.Error("lookup failed", logging.Operation("cancel"),
				logging.User(user.ID), logging.EventID(eventID), logging.Err(err))
			continue
		}
		if err := user.Cal.DeleteEvent(ctx, a.calID, eventID); err != nil {
			return fmt.Sprintf("Failed to cancel event %s: %v", eventID, err)
		}
		a.log.Info("event cancelled", logging.Operation("cancel"),
			logging.User(user.ID), logging.EventID(eventID))
		return fmt.Sprintf("Cancelled %q (ID: %s).", event.Summary, eventID)
	}
	return fmt.Sprintf("Couldn't find event %s. Try 'show upcoming events' to list event IDs.", eventID)
}

// Reschedule moves one existing event to a new start, keeping its length.
// The target can be named by "ID: <id>", by attendees, or as "the first
// meeting on <date>"; "whenever I'm free" picks the session's last
// suggested slot or computes a fresh one.
func (a *Assistant) Reschedule(ctx context.Context, session *Session, query string) string {
	in := a.parser.Parse(query)
	now := a.clock()

	var newStart time.Time
	switch {
	case wantsFreeSlot(query):
		slot, ok := a.freeSlot(ctx, session)
		if !ok {
			return fmt.Sprintf("No free slots of at least %s in the next %d days to move the event into.",
				a.slotMin, int(a.lookahead.Hours()/24))
		}
		newStart = slot.Start
	case in.When == "":
		return "Failed to reschedule: no target time specified. " + timeFormatHint
	default:
		start, err := a.times.Parse(in.When, now)
		if err != nil {
			a.log.Warn("time parse failed", logging.Operation("reschedule"), logging.Err(err))
			return fmt.Sprintf("Failed to reschedule: could not parse time %q. %s", in.When, timeFormatHint)
		}
		// Correction stays scoped to the captured fragment: a reschedule
		// query can name two weekdays (the old one and the new one), and
		// the rule puts everything after "to" in the fragment anyway.
		newStart = timeparse.NextWeekday(in.When, start)
	}

	if m := eventIDPattern.FindStringSubmatch(query); m != nil {
		return a.rescheduleByID(ctx, m[1], newStart)
	}

	windowStart, windowEnd := now, now.Add(a.lookahead)
	var oldDay time.Time
	if in.OldWhen != "" {
		t, err := a.times.Parse(in.OldWhen, now)
		if err != nil {
			return fmt.Sprintf("Failed to reschedule: could not parse date %q. %s", in.OldWhen, timeFormatHint)
		}
		t = timeparse.NextWeekday(in.OldWhen, t)
		oldDay = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		windowStart, windowEnd = oldDay, oldDay.Add(24*time.Hour)
	}

	events := a.collectEvents(ctx, windowStart, windowEnd)

	var target *calendar.Event
	var found bool
	if in.IsFirst {
		if in.OldWhen == "" {
			return "Please include the date of the first meeting, e.g. 'reschedule the first meeting on Friday to 5pm'."
		}
		target, found = match.FirstOnDate(stripOwners(events), oldDay)
	} else {
		if len(in.Attendees) == 0 {
			return "Failed to reschedule: no attendees, date or event ID in your request."
		}
		target, found = match.Select(stripOwners(events), in)
	}
	if !found {
		return "Failed to reschedule: couldn't find a matching event. Try 'show upcoming events' to list event IDs."
	}

	owner, ok := a.ownerOf(events, target.ID)
	if !ok {
		return "Failed to reschedule: couldn't find a matching event. Try 'show upcoming events' to list event IDs."
	}
	return a.moveEvent(ctx, owner, target, newStart)
}

func (a *Assistant) rescheduleByID(ctx context.Context, eventID string, newStart time.Time) string {
	for _, user := range a.users {
		event, err := user.Cal.GetEvent(ctx, a.calID, eventID)
		if errors.Is(err, calendar.ErrNotFound) {
			continue
		}
		if err != nil {
			a.log.Error("lookup failed", logging.Operation("reschedule"),
				logging.User(user.ID), logging.EventID(eventID), logging.Err(err))
			continue
		}
		return a.moveEvent(ctx, user, event, newStart)
	}
	return fmt.Sprintf("Couldn't find event %s. Try 'show upcoming events' to list event IDs.", eventID)
}

func (a *Assistant) moveEvent(ctx context.Context, owner User, event *calendar.Event, newStart time.Time) string {
	length := event.End.Sub(event.Start)
	if length <= 0 {
		length = a.eventLen
	}
	updated, err := owner.Cal.UpdateEventTime(ctx, a.calID, event.ID, newStart, newStart.Add(length))
	if err != nil {
		a.log.Error("update failed", logging.Operation("reschedule"),
			logging.User(owner.ID), logging.EventID(event.ID), logging.Err(err))
		return fmt.Sprintf("Failed to reschedule event %s: %v", event.ID, err)
	}
	a.log.Info("event rescheduled", logging.Operation("reschedule"),
		logging.User(owner.ID), logging.EventID(event.ID))
	return fmt.Sprintf("Rescheduled %q to %s at %s (ID: %s).",
		updated.Summary, updated.Start.Format("Monday, January 2"),
		updated.Start.Format("3:04 PM"), updated.ID)
}

func (a *Assistant) ownerOf(events []ownedEvent, eventID string) (User, bool) {
	for _, e := range events {
		if e.ID == eventID {
			return e.Owner, true
		}
	}
	return User{}, false
}

func hasAll(event calendar.Event, attendees []contacts.Attendee) bool {
	for _, att := range attendees {
		if !event.HasAttendee(att.Email) {
			return false
		}
	}
	return true
}

func wantsFreeSlot(query string) bool {
	lower := strings.ToLower(query)
	return strings.Contains(lower, "whenever") ||
		strings.Contains(lower, "free slot") ||
		strings.Contains(lower, "i'm free") ||
		strings.Contains(lower, "im free")
}
