// Package logging provides slog helpers shared across the application:
// canonical attribute keys, error attributes, and PII-safe representations
// of attendee addresses.
package logging
