package intent

import (
	"log/slog"
	"regexp"
	"strings"

	"schedbot/internal/contacts"
	"schedbot/internal/logging"
)

// DefaultSummary is used when a query carries no summary of its own.
const DefaultSummary = "Meeting"

// Intent is the structured result of parsing one scheduling request.
// Time fields hold raw text; turning them into instants is the caller's
// job. An Intent is produced fresh per query and not mutated afterwards.
type Intent struct {
	Summary   string
	When      string // raw target time text, e.g. "5pm tomorrow"
	OldWhen   string // raw prior time text for reschedule-by-date
	Attendees []contacts.Attendee
	IsFirst   bool   // query referenced the "first" meeting
	Rule      string // name of the rule that matched, "" if none
}

// rule pairs a name with its phrase pattern. Named capture groups
// (attendees, time, old_time, summary) populate the Intent directly.
type rule struct {
	name string
	re   *regexp.Regexp
}

// defaultRules is the ordered rule set. Order is load-bearing and covered
// by TestParseRuleOrder; edit with care.
var defaultRules = []rule{
	{
		name: "create",
		re:   regexp.MustCompile(`(?i)^(?:create|schedule)\s+(?:a\s+)?meeting\s+(?:with\s+)?(?P<attendees>.+?)\s+at\s+(?P<time>.+)$`),
	},
	{
		name: "reschedule",
		re:   regexp.MustCompile(`(?i)^reschedule\s+(?:a\s+|the\s+)?meeting\s+(?:with\s+)?(?P<attendees>.+?)(?:\s+on\s+(?P<old_time>.+?))?\s+to\s+(?P<time>.+)$`),
	},
	{
		name: "reschedule-first",
		re:   regexp.MustCompile(`(?i)^reschedule\s+(?:the\s+)?first\s+meeting\s+(?:on\s+|of\s+)?(?P<old_time>.+?)\s+to\s+(?P<time>.+)$`),
	},
	{
		name: "cancel",
		re:   regexp.MustCompile(`(?i)^cancel\s+(?:a\s+|the\s+)?meeting\s+(?:with\s+)?(?P<attendees>.+?)(?:\s+(?:on|at)\s+.+)?$`),
	},
	{
		name: "generic",
		re:   regexp.MustCompile(`(?i)^(?P<summary>.+?)\s+with\s+(?P<attendees>.+?)\s+at\s+(?P<time>.+)$`),
	},
}

// Parser applies the rule set to queries and resolves attendee text.
type Parser struct {
	rules    []rule
	resolver *contacts.Resolver
	log      *slog.Logger
}

// NewParser creates a parser with the default rule set. A nil resolver
// gets a resolver over the default contact directory.
func NewParser(resolver *contacts.Resolver, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	if resolver == nil {
		resolver = contacts.NewResolver(nil, logger)
	}
	return &Parser{rules: defaultRules, resolver: resolver, log: logger}
}

// Parse extracts an Intent from a query. A query no rule matches yields an
// Intent with empty fields and the default summary; that is not an error
// and callers must handle it.
func (p *Parser) Parse(query string) Intent {
	query = strings.TrimSpace(query)
	out := Intent{Summary: DefaultSummary}

	var rawAttendees string
	for _, r := range p.rules {
		m := r.re.FindStringSubmatch(query)
		if m == nil {
			continue
		}
		out.Rule = r.name
		for i, group := range r.re.SubexpNames() {
			if i == 0 || group == "" || m[i] == "" {
				continue
			}
			switch group {
			case "summary":
				out.Summary = m[i]
			case "time":
				out.When = m[i]
			case "old_time":
				out.OldWhen = m[i]
			case "attendees":
				rawAttendees = m[i]
			}
		}
		break
	}

	if strings.Contains(strings.ToLower(query), "first") {
		out.IsFirst = true
	}
	if rawAttendees != "" {
		out.Attendees = p.resolver.Resolve(rawAttendees)
	}
	if out.Summary == "" {
		out.Summary = DefaultSummary
	}

	if out.Rule == "" {
		p.log.Warn("no rule matched query", slog.Int(logging.KeyQueryLen, len(query)))
	} else {
		p.log.Debug("query matched rule", logging.Rule(out.Rule),
			slog.Int("attendees", len(out.Attendees)), slog.Bool("is_first", out.IsFirst))
	}
	return out
}
