package contacts

import (
	"log/slog"
	"regexp"
	"strings"

	"schedbot/internal/logging"
)

// Attendee is a single meeting participant, identified by email address.
// Uniqueness is by address; display names do not survive resolution.
type Attendee struct {
	Email string
}

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	splitPattern = regexp.MustCompile(`(?i),|\band\b`)
)

// DefaultDirectory is the built-in name-to-address table for the product
// roster. A deployment can replace it entirely via NewResolver.
var DefaultDirectory = map[string]string{
	"akash":  "akashmehta556@gmail.com",
	"eliana": "eliana@gocadre.ai",
	"srilak": "srilakp@pdx.edu",
	"faraz":  "gurramkondafaraz@gmail.com",
	"vlds":   "vlds@umich.edu",
	"odell":  "odelllaxx@gmail.com",
}

// Resolver maps free-text attendee references to Attendees.
type Resolver struct {
	directory map[string]string
	log       *slog.Logger
}

// NewResolver creates a resolver over the given directory. A nil directory
// uses DefaultDirectory; a nil logger uses slog.Default().
func NewResolver(directory map[string]string, logger *slog.Logger) *Resolver {
	if directory == nil {
		directory = DefaultDirectory
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{directory: directory, log: logger}
}

// Resolve extracts attendees from raw text.
//
// If the text contains anything shaped like an email address, every such
// substring is returned verbatim and the rest of the text is ignored,
// including any bare names next to the addresses. Mixed name-and-address
// input therefore resolves to the addresses only; this matches the
// documented product behavior and is covered by tests rather than "fixed".
//
// Otherwise the text is split on commas and the standalone word "and",
// fragments are trimmed and lowercased, and each is looked up in the
// directory. Discovery order is preserved and duplicates are not filtered;
// callers must tolerate them. An empty slice means nothing resolved.
func (r *Resolver) Resolve(raw string) []Attendee {
	var attendees []Attendee

	if found := emailPattern.FindAllString(raw, -1); len(found) > 0 {
		for _, email := range found {
			attendees = append(attendees, Attendee{Email: email})
			r.log.Debug("extracted attendee address", logging.UserHash(email))
		}
		return attendees
	}

	for _, fragment := range splitPattern.Split(raw, -1) {
		name := strings.TrimSpace(fragment)
		if name == "" {
			continue
		}
		if email, ok := r.directory[strings.ToLower(name)]; ok {
			attendees = append(attendees, Attendee{Email: email})
			r.log.Debug("mapped attendee name", logging.UserHash(email))
		} else {
			r.log.Warn("invalid attendee, dropping", slog.String("name", name))
		}
	}
	return attendees
}

// Emails returns the plain address list for a set of attendees.
func Emails(attendees []Attendee) []string {
	emails := make([]string, 0, len(attendees))
	for _, a := range attendees {
		emails = append(emails, a.Email)
	}
	return emails
}
