// Package scheduler_tools provides MCP tools for the scheduling assistant.
//
// The tools expose the assistant's operations to MCP clients:
//   - schedule_meeting: create an event from a natural-language request
//   - cancel_meeting: cancel by event ID or description
//   - reschedule_meeting: move an event to a new time or the next free slot
//   - list_events: merged upcoming events across the roster
//   - find_free_slot: earliest common gap of at least an hour
//   - list_participants: attendee addresses of an event by ID
//   - scheduling_query: free-form request, routed like the CLI REPL
//
// Failure replies from the assistant surface as MCP error results.
// Conversational state (the last suggested free slot) is kept per MCP
// client session.
package scheduler_tools
