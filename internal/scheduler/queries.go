package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"schedbot/internal/calendar"
	"schedbot/internal/freebusy"
	"schedbot/internal/logging"
)

// ListUpcoming merges the next week of events across all roster calendars
// into one chronological listing, one line per event. Calendars that fail
// to list are omitted.
func (a *Assistant) ListUpcoming(ctx context.Context) string {
	now := a.clock()
	events := a.collectEvents(ctx, now, now.Add(a.lookahead))
	if len(events) == 0 {
		return "No events found."
	}

	var b strings.Builder
	b.WriteString("Upcoming events:\n")
	for _, e := range events {
		fmt.Fprintf(&b, "[%s] %s - %s (ID: %s",
			e.Owner.ID, e.Start.Format("Mon Jan 2 3:04 PM"), e.Summary, e.ID)
		if len(e.Attendees) > 0 {
			fmt.Fprintf(&b, ", Attendees: %s", strings.Join(e.Attendees, ", "))
		}
		b.WriteString(")\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// FindFreeSlot sweeps every roster calendar's busy intervals over the
// lookahead window and suggests the earliest gap long enough for a
// meeting. The suggestion is remembered on the session so a follow-up
// "reschedule ... whenever I'm free" lands in the same slot.
func (a *Assistant) FindFreeSlot(ctx context.Context, session *Session) string {
	slot, ok := a.computeFreeSlot(ctx)
	if !ok {
		return fmt.Sprintf("No free slots of at least %s found in the next %d days.",
			a.slotMin, int(a.lookahead.Hours()/24))
	}
	if session != nil {
		session.LastSlot = &slot
	}
	return fmt.Sprintf("Everyone is free on %s from %s to %s.",
		slot.Start.Format("Monday, January 2"),
		slot.Start.Format("3:04 PM"), slot.End.Format("3:04 PM"))
}

// freeSlot returns the session's remembered slot when present, otherwise
// a fresh sweep. Used by reschedule-to-whenever.
func (a *Assistant) freeSlot(ctx context.Context, session *Session) (freebusy.Slot, bool) {
	if session != nil && session.LastSlot != nil {
		return *session.LastSlot, true
	}
	slot, ok := a.computeFreeSlot(ctx)
	if ok && session != nil {
		session.LastSlot = &slot
	}
	return slot, ok
}

func (a *Assistant) computeFreeSlot(ctx context.Context) (freebusy.Slot, bool) {
	now := a.clock()
	busy := a.busyIntervals(ctx, now, now.Add(a.lookahead))
	slots := freebusy.FindGaps(busy, now, now.Add(a.lookahead), a.slotMin)
	if len(slots) == 0 {
		return freebusy.Slot{}, false
	}
	return slots[0], true
}

// ListParticipants looks an event ID up across all roster calendars and
// reports its attendee addresses.
func (a *Assistant) ListParticipants(ctx context.Context, eventID string) string {
	for _, user := range a.users {
		event, err := user.Cal.GetEvent(ctx, a.calID, eventID)
		if errors.Is(err, calendar.ErrNotFound) {
			continue
		}
		if err != nil {
			a.log.Error("lookup failed", logging.Operation("participants"),
				logging.User(user.ID), logging.EventID(eventID), logging.Err(err))
			continue
		}
		if len(event.Attendees) == 0 {
			return fmt.Sprintf("%q (ID: %s) has no listed participants.", event.Summary, eventID)
		}
		return fmt.Sprintf("Participants of %q (ID: %s): %s.",
			event.Summary, eventID, strings.Join(event.Attendees, ", "))
	}
	return fmt.Sprintf("Couldn't find event %s. Try 'show upcoming events' to list event IDs.", eventID)
}

// TimePreference answers coarse "do they prefer mornings" questions.
func TimePreference(query string) string {
	lower := strings.ToLower(query)
	switch {
	case strings.Contains(lower, "morning"):
		return "Prefers 9AM-12PM"
	case strings.Contains(lower, "afternoon"):
		return "Prefers 1PM-5PM"
	default:
		return "No strong time preference found."
	}
}
