// Package source turns configuration files into config trees.
//
// A Loader picks a decoder by file extension (TOML, YAML, JSON with or
// without comments, HCL), walks directories for files it knows, and merges
// everything it read into a single tree with later files taking precedence.
// Whatever the format, the same document yields the same tree: datetimes
// become RFC 3339 strings and nulls read as missing keys.
package source
