// Package flags resolves lists of human-readable option names into a single
// bitmask.
//
// Resolution is two-phase: names are case folded and stably partitioned into
// the ones a Table knows and the ones it doesn't, then the known prefix is
// OR-ed together. Unknown names are not errors. They are handed to a Sink so
// callers can report them while still using the partial mask.
package flags
