package instrumentation

import (
	"log/slog"
	"time"

	"schedbot/internal/logging"
)

// ToolInvocation captures one MCP tool call for audit logging.
//
// # Privacy Considerations
//
// Attendee addresses are PII. Unless IncludePII is configured, only
// anonymized identifiers and counts land in the log stream.
type ToolInvocation struct {
	// Tool name
	Tool string

	// Account is the roster account the tool acted on.
	Account string

	// Action is the routed scheduling action, when known.
	Action string

	// Attendees are the resolved attendee addresses of the request.
	Attendees []string

	// Execution details
	StartTime time.Time
	Duration  time.Duration
	Success   bool
	Error     string
}

// NewToolInvocation creates a ToolInvocation with timing started.
// Call Complete when the tool finishes.
func NewToolInvocation(tool string) *ToolInvocation {
	return &ToolInvocation{
		Tool:      tool,
		StartTime: time.Now(),
	}
}

// WithAccount sets the roster account the tool acted on.
func (ti *ToolInvocation) WithAccount(account string) *ToolInvocation {
	ti.Account = account
	return ti
}

// WithAction sets the routed scheduling action.
func (ti *ToolInvocation) WithAction(action string) *ToolInvocation {
	ti.Action = action
	return ti
}

// WithAttendees sets the resolved attendee addresses.
func (ti *ToolInvocation) WithAttendees(emails []string) *ToolInvocation {
	ti.Attendees = emails
	return ti
}

// Complete marks the invocation finished and computes its duration.
func (ti *ToolInvocation) Complete(err error) *ToolInvocation {
	ti.Duration = time.Since(ti.StartTime)
	ti.Success = err == nil
	if err != nil {
		ti.Error = err.Error()
	}
	return ti
}

// Status returns "success" or "error" based on the Success field.
func (ti *ToolInvocation) Status() string {
	if ti.Success {
		return StatusSuccess
	}
	return StatusError
}

// LogAttrs returns anonymized slog attributes: attendee addresses are
// reduced to hashes, suitable for general operational logging.
func (ti *ToolInvocation) LogAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("tool", ti.Tool),
		slog.Duration("duration", ti.Duration),
		slog.Bool("success", ti.Success),
	}
	if ti.Account != "" {
		attrs = append(attrs, slog.String("account", ti.Account))
	}
	if ti.Action != "" {
		attrs = append(attrs, slog.String("action", ti.Action))
	}
	if len(ti.Attendees) > 0 {
		hashed := make([]string, len(ti.Attendees))
		for i, email := range ti.Attendees {
			hashed[i] = logging.AnonymizeEmail(email)
		}
		attrs = append(attrs, slog.Any("attendees", hashed))
	}
	if ti.Error != "" {
		attrs = append(attrs, slog.String("error", ti.Error))
	}
	return attrs
}

// LogAuditAttrs returns slog attributes with full attendee addresses for
// compliance logging.
//
// # Security Warning
//
// The result includes PII. Route audit logs to storage with appropriate
// access controls.
func (ti *ToolInvocation) LogAuditAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("tool", ti.Tool),
		slog.Duration("duration", ti.Duration),
		slog.Bool("success", ti.Success),
	}
	if ti.Account != "" {
		attrs = append(attrs, slog.String("account", ti.Account))
	}
	if ti.Action != "" {
		attrs = append(attrs, slog.String("action", ti.Action))
	}
	if len(ti.Attendees) > 0 {
		attrs = append(attrs, slog.Any("attendees", ti.Attendees))
	}
	if ti.Error != "" {
		attrs = append(attrs, slog.String("error", ti.Error))
	}
	return attrs
}

// AuditLogger provides structured audit logging for tool invocations.
type AuditLogger struct {
	logger     *slog.Logger
	includePII bool
	enabled    bool
}

// NewAuditLogger creates an AuditLogger that anonymizes attendee
// addresses. A nil logger means slog.Default().
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	return NewAuditLoggerWithConfig(logger, AuditLoggingConfig{Enabled: true})
}

// NewAuditLoggerWithConfig creates an AuditLogger with the given
// configuration.
func NewAuditLoggerWithConfig(logger *slog.Logger, config AuditLoggingConfig) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger:     logger,
		includePII: config.IncludePII,
		enabled:    config.Enabled,
	}
}

// LogToolInvocation logs a finished tool invocation. Whether attendee
// addresses appear verbatim follows the IncludePII configuration.
func (al *AuditLogger) LogToolInvocation(ti *ToolInvocation) {
	if !al.enabled {
		return
	}

	var attrs []slog.Attr
	if al.includePII {
		attrs = ti.LogAuditAttrs()
	} else {
		attrs = ti.LogAttrs()
	}

	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}

	if ti.Success {
		al.logger.Info("tool_executed", args...)
	} else {
		al.logger.Warn("tool_failed", args...)
	}
}
