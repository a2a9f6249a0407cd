package timeparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var weekdayNames = []string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

var (
	clockFilterPattern = regexp.MustCompile(`(?i)\bat\s+(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`)
	dayFilterPattern   = regexp.MustCompile(`(?i)\bon\s+([a-z]+)\b`)
)

// Parser resolves natural-language time text relative to a reference
// instant.
type Parser struct {
	w *when.Parser
}

// New creates a parser with the English and common rule sets.
func New() *Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Parser{w: w}
}

// Parse resolves text like "5pm tomorrow" or "Thursday at 6pm" against
// ref. The result is normalized to UTC. Text with no recognizable time
// yields an error naming the fragment.
func (p *Parser) Parse(text string, ref time.Time) (time.Time, error) {
	r, err := p.w.Parse(text, ref)
	if err != nil {
		return time.Time{}, fmt.Errorf("could not parse time %q: %w", text, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("could not parse time %q", text)
	}
	return r.Time.UTC(), nil
}

// NextWeekday corrects t against a weekday named in the query: when the
// query names a weekday and t falls on a different one, t advances forward
// to the next occurrence of that weekday (1 to 7 days, never 0, never
// backward), preserving the time of day. Queries naming no weekday, or
// naming the weekday t already has, leave t unchanged.
func NextWeekday(query string, t time.Time) time.Time {
	lower := strings.ToLower(query)
	for i, day := range weekdayNames {
		if !strings.Contains(lower, day) {
			continue
		}
		want := time.Weekday(i)
		if t.Weekday() == want {
			return t
		}
		ahead := (int(want) - int(t.Weekday()) + 7) % 7
		if ahead == 0 {
			ahead = 7
		}
		return t.AddDate(0, 0, ahead)
	}
	return t
}

// ClockFilter extracts an "at h[:mm] am/pm" constraint from a query.
// Returns the hour (24h) and minute, and whether a constraint was found.
func ClockFilter(query string) (hour, minute int, ok bool) {
	m := clockFilterPattern.FindStringSubmatch(query)
	if m == nil {
		return 0, 0, false
	}
	hour, _ = strconv.Atoi(m[1])
	if hour > 12 {
		return 0, 0, false
	}
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	if strings.EqualFold(m[3], "pm") && hour != 12 {
		hour += 12
	}
	if strings.EqualFold(m[3], "am") && hour == 12 {
		hour = 0
	}
	return hour, minute, true
}

// DayFilter extracts an "on <weekday>" constraint from a query. Returns
// the weekday and whether a constraint was found; "on" followed by a
// non-weekday word is no constraint.
func DayFilter(query string) (time.Weekday, bool) {
	m := dayFilterPattern.FindStringSubmatch(query)
	if m == nil {
		return 0, false
	}
	name := strings.ToLower(m[1])
	for i, day := range weekdayNames {
		if name == day {
			return time.Weekday(i), true
		}
	}
	return 0, false
}
