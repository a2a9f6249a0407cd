package scheduler

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"schedbot/internal/calendar"
	"schedbot/internal/contacts"
	"schedbot/internal/freebusy"
	"schedbot/internal/instrumentation"
	"schedbot/internal/intent"
	"schedbot/internal/logging"
	"schedbot/internal/timeparse"
)

// Defaults for the scheduling window and event shape.
const (
	DefaultLookahead   = 7 * 24 * time.Hour
	DefaultSlotMinimum = time.Hour
	DefaultEventLength = time.Hour
	DefaultCalendarID  = "primary"
)

// User is one calendar on the roster: an identifier and the gateway bound
// to that user's credentials.
type User struct {
	ID  string
	Cal calendar.Gateway
}

// Options tune an Assistant. Zero values fall back to the defaults above.
type Options struct {
	Lookahead   time.Duration
	SlotMinimum time.Duration
	EventLength time.Duration
	CalendarID  string
	// Contacts overrides the attendee name directory. Only consulted when
	// no parser is injected; nil keeps the built-in directory.
	Contacts map[string]string
	Clock    func() time.Time
	Logger   *slog.Logger
	Metrics  *instrumentation.Metrics
}

// Assistant executes scheduling actions against an injected roster of
// calendars. It is not safe for concurrent use; callers serialize
// requests (one query is fully executed before the next is accepted).
type Assistant struct {
	users     []User
	parser    *intent.Parser
	times     *timeparse.Parser
	calID     string
	lookahead time.Duration
	slotMin   time.Duration
	eventLen  time.Duration
	clock     func() time.Time
	log       *slog.Logger
	metrics   *instrumentation.Metrics
}

// New creates an Assistant over the given roster. A nil parser gets the
// default rule set and contact directory.
func New(users []User, parser *intent.Parser, opts Options) *Assistant {
	if opts.Lookahead <= 0 {
		opts.Lookahead = DefaultLookahead
	}
	if opts.SlotMinimum <= 0 {
		opts.SlotMinimum = DefaultSlotMinimum
	}
	if opts.EventLength <= 0 {
		opts.EventLength = DefaultEventLength
	}
	if opts.CalendarID == "" {
		opts.CalendarID = DefaultCalendarID
	}
	if opts.Clock == nil {
		opts.Clock = func() time.Time { return time.Now().UTC() }
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if parser == nil {
		parser = intent.NewParser(contacts.NewResolver(opts.Contacts, opts.Logger), opts.Logger)
	}
	return &Assistant{
		users:     users,
		parser:    parser,
		times:     timeparse.New(),
		calID:     opts.CalendarID,
		lookahead: opts.Lookahead,
		slotMin:   opts.SlotMinimum,
		eventLen:  opts.EventLength,
		clock:     opts.Clock,
		log:       opts.Logger,
		metrics:   opts.Metrics,
	}
}

// RosterSize returns the number of calendars on the roster.
func (a *Assistant) RosterSize() int {
	return len(a.users)
}

// ownedEvent carries the event together with the roster user whose
// calendar holds it, so writes land on the right gateway.
type ownedEvent struct {
	calendar.Event
	Owner User
}

// collectEvents fetches events from every roster calendar in the window
// and merges them chronologically. A gateway failure on one calendar is
// logged and that calendar's contribution omitted; the sweep goes on.
func (a *Assistant) collectEvents(ctx context.Context, timeMin, timeMax time.Time) []ownedEvent {
	var all []ownedEvent
	for _, user := range a.users {
		events, err := user.Cal.ListEvents(ctx, a.calID, timeMin, timeMax)
		if err != nil {
			a.log.Error("failed to fetch events, omitting calendar",
				logging.User(user.ID), logging.Err(err))
			continue
		}
		for _, e := range events {
			all = append(all, ownedEvent{Event: e, Owner: user})
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Start.Before(all[j].Start)
	})
	return all
}

// busyIntervals projects the roster's events in the window onto busy
// intervals for the free/busy sweep.
func (a *Assistant) busyIntervals(ctx context.Context, timeMin, timeMax time.Time) []freebusy.Interval {
	events := a.collectEvents(ctx, timeMin, timeMax)
	intervals := make([]freebusy.Interval, 0, len(events))
	for _, e := range events {
		if e.Start.IsZero() || e.End.IsZero() {
			continue
		}
		intervals = append(intervals, freebusy.Interval{Start: e.Start, End: e.End})
	}
	return intervals
}

// events strips ownership for matcher calls.
func stripOwners(owned []ownedEvent) []calendar.Event {
	events := make([]calendar.Event, len(owned))
	for i, e := range owned {
		events[i] = e.Event
	}
	return events
}
