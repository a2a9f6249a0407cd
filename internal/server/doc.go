// Package server provides the MCP server context, session management,
// and metrics/health HTTP endpoints for the schedbot application.
//
// # Key Components
//
// ServerContext builds the calendar roster from the configured accounts
// and owns the scheduling assistant over it. Accounts without stored
// tokens are skipped at startup so a partially authorized roster still
// serves.
//
// SessionManager maps connection identities (Bearer tokens on the
// streamable-http transport, "default" on stdio) to scheduling sessions.
// The session carries conversational state such as the last suggested
// free slot; idle sessions are evicted in the background.
//
// MetricsServer serves Prometheus metrics on a dedicated port, isolating
// operational metrics from MCP traffic. HealthChecker provides liveness
// and readiness handlers for Kubernetes probes; readiness covers the
// roster having at least one authorized calendar.
package server
