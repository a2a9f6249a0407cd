package scheduler

import (
	"context"
	"log/slog"
	"strings"

	"schedbot/internal/freebusy"
	"schedbot/internal/logging"
)

// Session is conversational state owned by the caller (a REPL loop, an
// MCP session). The Assistant reads and updates it but never stores it.
type Session struct {
	// LastSlot is the most recently suggested free slot, consumed by
	// "reschedule ... whenever I'm free".
	LastSlot *freebusy.Slot
}

// Action names label handled queries in logs and metrics.
const (
	ActionCreate       = "create"
	ActionCancel       = "cancel"
	ActionReschedule   = "reschedule"
	ActionList         = "list"
	ActionFreeSlot     = "free_slot"
	ActionParticipants = "participants"
	ActionPreference   = "preference"
)

// failurePrefixes opens every reply that reports the query was not
// fulfilled. "No events found." and "No strong time preference found."
// answer their queries and are deliberately absent.
var failurePrefixes = []string{"Failed", "Couldn't", "Please ", "No free slots"}

// IsFailure reports whether a reply describes a request the assistant
// could not fulfil. Callers translating replies into metrics or tool
// results use it instead of inspecting the text themselves.
func IsFailure(reply string) bool {
	for _, p := range failurePrefixes {
		if strings.HasPrefix(reply, p) {
			return true
		}
	}
	return false
}

// Handle routes one query to the matching action and returns its reply.
// Routing is keyword-based and deterministic; a query that matches nothing
// specific is treated as a create request. Handle never returns an error:
// failures come back as reply text.
func (a *Assistant) Handle(ctx context.Context, session *Session, query string) string {
	started := a.clock()
	action, reply := a.dispatch(ctx, session, query)

	status := logging.StatusSuccess
	if IsFailure(reply) {
		status = logging.StatusError
	}
	elapsed := a.clock().Sub(started)
	if a.metrics != nil {
		a.metrics.RecordQuery(ctx, action, status, elapsed)
	}
	a.log.Info("query handled",
		logging.Operation(action),
		logging.Status(status),
		slog.Int(logging.KeyQueryLen, len(query)),
		slog.Duration(logging.KeyDuration, elapsed))
	return reply
}

func (a *Assistant) dispatch(ctx context.Context, session *Session, query string) (action, reply string) {
	lower := strings.ToLower(query)
	switch {
	case strings.Contains(lower, "cancel"):
		return ActionCancel, a.Cancel(ctx, query)
	case strings.Contains(lower, "reschedule"):
		return ActionReschedule, a.Reschedule(ctx, session, query)
	case strings.Contains(lower, "participant"), strings.Contains(lower, "who is in"), strings.Contains(lower, "who's in"):
		return ActionParticipants, a.participantsQuery(ctx, query)
	case strings.Contains(lower, "prefer"):
		return ActionPreference, TimePreference(query)
	case strings.Contains(lower, "free slot"), strings.Contains(lower, "whenever"),
		strings.Contains(lower, "when are"), strings.Contains(lower, "available"):
		return ActionFreeSlot, a.FindFreeSlot(ctx, session)
	case strings.Contains(lower, "events"), strings.Contains(lower, "upcoming"),
		strings.Contains(lower, "show"), strings.Contains(lower, "list"):
		return ActionList, a.ListUpcoming(ctx)
	default:
		return ActionCreate, a.Create(ctx, query)
	}
}

func (a *Assistant) participantsQuery(ctx context.Context, query string) string {
	m := eventIDPattern.FindStringSubmatch(query)
	if m == nil {
		return "Please include the event ID, e.g. 'who is in the meeting ID: abc123'."
	}
	return a.ListParticipants(ctx, m[1])
}
