package scheduler_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"schedbot/internal/scheduler"
	"schedbot/internal/server"
	"schedbot/internal/tools/common"
)

// RegisterSchedulerTools registers all scheduling tools with the MCP server.
func RegisterSchedulerTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	if sc.Assistant() == nil {
		return fmt.Errorf("scheduling assistant is required to register scheduler tools")
	}

	scheduleMeetingTool := mcp.NewTool("schedule_meeting",
		mcp.WithDescription("Schedule a meeting from a natural-language request, e.g. 'Schedule a meeting with Akash at 5pm tomorrow'. Creates a one-hour calendar event with a Meet link."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Natural-language scheduling request naming the attendees and the time"),
		),
	)
	s.AddTool(scheduleMeetingTool, common.InstrumentedToolHandler("schedule_meeting", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleQueryTool(ctx, request, func(ctx context.Context, _ *scheduler.Session, query string) string {
				return sc.Assistant().Create(ctx, query)
			}, sc)
		}))

	cancelMeetingTool := mcp.NewTool("cancel_meeting",
		mcp.WithDescription("Cancel a meeting, either by event ID ('cancel event abc123') or by describing it ('Cancel the meeting with Akash on Saturday')."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Natural-language cancellation request, or 'cancel event <id>'"),
		),
	)
	s.AddTool(cancelMeetingTool, common.InstrumentedToolHandler("cancel_meeting", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleQueryTool(ctx, request, func(ctx context.Context, _ *scheduler.Session, query string) string {
				return sc.Assistant().Cancel(ctx, query)
			}, sc)
		}))

	rescheduleMeetingTool := mcp.NewTool("reschedule_meeting",
		mcp.WithDescription("Move an existing meeting to a new time, e.g. 'Reschedule the meeting with Akash to Friday 6pm', 'Reschedule the first meeting on Tuesday to 3pm', or '... to whenever I'm free'."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Natural-language reschedule request; may reference an event ID ('ID: abc123')"),
		),
	)
	s.AddTool(rescheduleMeetingTool, common.InstrumentedToolHandler("reschedule_meeting", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleQueryTool(ctx, request, func(ctx context.Context, session *scheduler.Session, query string) string {
				return sc.Assistant().Reschedule(ctx, session, query)
			}, sc)
		}))

	listEventsTool := mcp.NewTool("list_events",
		mcp.WithDescription("List the upcoming week of events across all configured calendars, with event IDs and attendees."),
	)
	s.AddTool(listEventsTool, common.InstrumentedToolHandler("list_events", sc,
		func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return resultFor(sc.Assistant().ListUpcoming(ctx)), nil
		}))

	findFreeSlotTool := mcp.NewTool("find_free_slot",
		mcp.WithDescription("Find the earliest time in the upcoming week when everyone on the roster is free for at least an hour."),
	)
	s.AddTool(findFreeSlotTool, common.InstrumentedToolHandler("find_free_slot", sc,
		func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			session := sc.Sessions().SessionFor(sessionID(ctx))
			return resultFor(sc.Assistant().FindFreeSlot(ctx, session)), nil
		}))

	listParticipantsTool := mcp.NewTool("list_participants",
		mcp.WithDescription("List the attendee addresses of an event by its ID."),
		mcp.WithString("eventId",
			mcp.Required(),
			mcp.Description("Calendar event ID, as shown by list_events"),
		),
	)
	s.AddTool(listParticipantsTool, common.InstrumentedToolHandler("list_participants", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			eventID, ok := request.GetArguments()["eventId"].(string)
			if !ok || eventID == "" {
				return mcp.NewToolResultError("eventId is required"), nil
			}
			return resultFor(sc.Assistant().ListParticipants(ctx, eventID)), nil
		}))

	schedulingQueryTool := mcp.NewTool("scheduling_query",
		mcp.WithDescription("Handle any scheduling request in natural language; routes to create, cancel, reschedule, list, free-slot or participant lookup."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Natural-language scheduling request"),
		),
	)
	s.AddTool(schedulingQueryTool, common.InstrumentedToolHandler("scheduling_query", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleQueryTool(ctx, request, func(ctx context.Context, session *scheduler.Session, query string) string {
				return sc.Assistant().Handle(ctx, session, query)
			}, sc)
		}))

	return nil
}

// handleQueryTool extracts the query argument, resolves the caller's
// session, and maps assistant failure replies to MCP error results.
func handleQueryTool(
	ctx context.Context,
	request mcp.CallToolRequest,
	run func(ctx context.Context, session *scheduler.Session, query string) string,
	sc *server.ServerContext,
) (*mcp.CallToolResult, error) {
	query, ok := request.GetArguments()["query"].(string)
	if !ok || strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("query is required"), nil
	}
	session := sc.Sessions().SessionFor(sessionID(ctx))
	return resultFor(run(ctx, session, query)), nil
}

// resultFor maps an assistant reply onto an MCP result; failure replies
// become error results so agents can branch on them.
func resultFor(reply string) *mcp.CallToolResult {
	if scheduler.IsFailure(reply) {
		return mcp.NewToolResultError(reply)
	}
	return mcp.NewToolResultText(reply)
}

// sessionID keys conversational state per caller. The HTTP transport
// resolves an ID from the request's Authorization header; otherwise the
// MCP client session is used, and stdio clients without one share
// "default".
func sessionID(ctx context.Context) string {
	if id := server.SessionIDFromContext(ctx); id != "" {
		return id
	}
	if cs := mcpserver.ClientSessionFromContext(ctx); cs != nil {
		return cs.SessionID()
	}
	return "default"
}
