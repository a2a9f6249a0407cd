// Package match selects the single calendar event a parsed intent refers
// to. Candidates are scanned in gateway order (chronological by start) and
// the first qualifying event wins; there is no secondary ranking.
package match
