// Package resource assembles the descriptors a graphics runtime needs (the
// subsystems to initialize, a window, a renderer, a draw color) from a
// configuration tree.
//
// Every assembler comes in two forms: LoadX returns the descriptor, and XInto
// is a pipeline step writing it through a pointer so it can sit inside a
// larger chain. Unknown flag names are handed to the caller's sink and never
// fail a load.
package resource
