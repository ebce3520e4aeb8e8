// Package cli turns bitconf's command line into an app.Config. It owns usage
// errors and their exit codes, and prints the known flag names of every
// domain for -list-flags.
package cli
