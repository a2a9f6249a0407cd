// Package scheduler composes the parser, matcher and free/busy engine
// into the scheduling actions: create, cancel, reschedule, list, and
// conflict-free slot discovery across every calendar on the roster.
//
// Requests are processed sequentially; each action issues at most one
// write against exactly one calendar, so no locking is needed and a
// failure never leaves a partially-applied change. During multi-calendar
// sweeps a failing calendar is logged and skipped; partial results beat
// total failure.
//
// Every action returns a single human-readable confirmation line; errors
// are reported in that line, never raised to the caller.
package scheduler
