// Package cmd implements the command-line interface for schedbot.
//
// This package provides the following commands:
//   - ask: Run a scheduling request, or an interactive session when no query is given
//   - serve: Start the MCP server to provide scheduling tools for AI assistants
//   - auth: Authorize Google Calendar access for roster accounts
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
//
// The ask command is the default command when no subcommand is specified.
package cmd
