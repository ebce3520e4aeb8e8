// Package config defines the format-agnostic configuration tree that every
// loader produces and every resolver consumes: the Node tagged union, dotted
// Paths, path resolution, table merging and the error taxonomy used to
// report configuration mistakes.
//
// Concrete parsers live in the source package; they only have to satisfy
// Loader and hand back a Node.
package config
