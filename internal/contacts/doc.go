// Package contacts resolves free-text attendee references to canonical
// email addresses.
//
// Raw addresses embedded in the text are taken verbatim. Bare names are
// split on commas or the standalone word "and" and looked up in a static
// name-to-address directory; names without a directory entry are logged
// and dropped, never treated as an error.
package contacts
