// Package instrumentation provides OpenTelemetry metrics for the schedbot
// scheduling assistant.
//
// # Metrics
//
// Scheduling Metrics:
//   - scheduler_queries_total: Counter of handled queries by action and status
//   - scheduler_query_duration_seconds: Histogram of query handling durations
//
// Calendar Gateway Metrics:
//   - calendar_api_operations_total: Counter of gateway operations by operation and status
//   - calendar_api_operation_duration_seconds: Histogram of gateway operation durations
//
// MCP Tool Metrics:
//   - mcp_tool_invocations_total: Counter of MCP tool invocations by tool name and status
//   - mcp_tool_duration_seconds: Histogram of MCP tool execution durations
//   - active_sessions: Gauge of active user sessions
//
// # Exporters
//
// Metrics export via the Prometheus reader (served by the metrics HTTP
// server on /metrics) or, for development, the stdout exporter. The
// exporter is selected with METRICS_EXPORTER.
//
// # Audit Logging
//
// ToolInvocation and AuditLogger record every MCP tool call. Attendee
// addresses are anonymized unless AUDIT_LOGGING_INCLUDE_PII is set; audit
// streams carrying PII belong in access-controlled storage.
//
// # Cardinality
//
// Account labels on tool metrics are gated behind METRICS_DETAILED_LABELS
// to keep label cardinality bounded in production.
package instrumentation
