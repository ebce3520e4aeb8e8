// Package backend is the boundary between assembled descriptors and the
// runtime that turns them into live resources.
//
// The Runtime interface mirrors the handful of calls a graphics runtime
// exposes. Recorder is the implementation shipped here: it hands out
// handles, keeps track of what is alive and writes one line per resource it
// creates, which makes the whole load-and-create sequence observable from
// the command line and in tests.
package backend
