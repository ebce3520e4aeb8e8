// Package load coerces configuration nodes into native Go values.
//
// The set of loadable types is closed (see Value). Each type maps to exactly
// one node kind; a node of any other kind is a TypeMismatchError rather than
// something to convert. Integers are range checked against the target type.
//
// Get and Array are strict and report why a value could not be loaded. GetOr
// never fails and is meant for optional settings.
package load
