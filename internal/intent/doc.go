// Package intent turns a free-text scheduling request into a structured
// Intent by applying an ordered list of phrase rules.
//
// Rules are evaluated in order and the first match wins; there is no
// scoring and no combining of partial matches. The ordering is a tested
// contract: more specific phrasings (reschedule, cancel) run before the
// generic "<summary> with <attendees> at <time>" catch-all, which would
// otherwise shadow them.
package intent
