package pipeline

import (
	"github.com/vk/bitconf/internal/config"
	"github.com/vk/bitconf/internal/flags"
	"github.com/vk/bitconf/internal/load"
)

// Subtable narrows the chain to the table stored at path.
func Subtable(path string) Step {
	return func(tbl config.Node) (config.Node, error) {
		return config.Subtable(tbl, path)
	}
}

// Require fails unless something is stored at path.
func Require(path string) Step {
	return func(tbl config.Node) (config.Node, error) {
		if _, err := config.Resolve(tbl, path); err != nil {
			return config.Absent, err
		}
		return tbl, nil
	}
}

// Load stores the value at path into dst.
func Load[T load.Value](path string, dst *T) Step {
	return func(tbl config.Node) (config.Node, error) {
		v, err := load.Get[T](tbl, path)
		if err != nil {
			return config.Absent, err
		}
		*dst = v
		return tbl, nil
	}
}

// LoadOr stores the value at path into dst, or fallback if it can't be loaded.
func LoadOr[T load.Value](path string, dst *T, fallback T) Effect {
	return func(tbl config.Node) {
		*dst = load.GetOr(tbl, path, fallback)
	}
}

// LoadArray stores the array at path into dst and its length into n.
func LoadArray[T load.Value](path string, dst []T, n *int) Step {
	return func(tbl config.Node) (config.Node, error) {
		written, err := load.Array(tbl, path, dst)
		if err != nil {
			return config.Absent, err
		}
		*n = written
		return tbl, nil
	}
}

// Exactly stores the array at path into dst, which it must fill completely.
func Exactly[T load.Value](path string, dst []T) Step {
	return func(tbl config.Node) (config.Node, error) {
		if err := load.Exactly(tbl, path, dst); err != nil {
			return config.Absent, err
		}
		return tbl, nil
	}
}

// Flags resolves the list of names at path against table into dst. Unknown
// names go to sink.
func Flags[M flags.Mask](path string, dst *M, table flags.Table[M], sink flags.Sink) Step {
	return func(tbl config.Node) (config.Node, error) {
		mask, err := flags.Load(tbl, path, table, sink)
		if err != nil {
			return config.Absent, err
		}
		*dst = mask
		return tbl, nil
	}
}

// OptionalFlags is Flags for a list that may be left out, in which case dst
// becomes zero. A list that is present but malformed still fails.
func OptionalFlags[M flags.Mask](path string, dst *M, table flags.Table[M], sink flags.Sink) Step {
	required := Flags(path, dst, table, sink)
	return func(tbl config.Node) (config.Node, error) {
		next, err := required(tbl)
		if config.IsMissing(err) {
			*dst = 0
			return tbl, nil
		}
		return next, err
	}
}
