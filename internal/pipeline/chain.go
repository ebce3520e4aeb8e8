package pipeline

import "github.com/vk/bitconf/internal/config"

// Step is a fallible stage. It receives the current table and returns the
// table the next stage should see, usually the same one.
type Step func(tbl config.Node) (config.Node, error)

// Effect is an infallible stage run only for its side effect.
type Effect func(tbl config.Node)

// Chain is the in-progress state of a pipeline: a table, or the first error.
type Chain struct {
	tbl config.Node
	err error
}

// From starts a chain over tbl.
func From(tbl config.Node) Chain {
	return Chain{tbl: tbl}
}

// Fail starts a chain that has already failed with err.
func Fail(err error) Chain {
	return Chain{err: err}
}

// AndThen runs step unless the chain already failed.
func (c Chain) AndThen(step Step) Chain {
	if c.err != nil {
		return c
	}
	next, err := step(c.tbl)
	if err != nil {
		return Chain{err: err}
	}
	return Chain{tbl: next}
}

// Map runs effect unless the chain already failed, and passes the table on.
func (c Chain) Map(effect Effect) Chain {
	if c.err != nil {
		return c
	}
	effect(c.tbl)
	return c
}

// Err returns the first error raised by the chain, if any.
func (c Chain) Err() error { return c.err }

// Result returns the table the last step produced, or the first error.
func (c Chain) Result() (config.Node, error) {
	if c.err != nil {
		return config.Absent, c.err
	}
	return c.tbl, nil
}

// Assemble builds a D by running build over a chain started at tbl. The
// descriptor is only returned when the chain succeeds; on failure the zero D
// is returned with the chain's error, so partially filled values never leak.
func Assemble[D any](tbl config.Node, build func(c Chain, d *D) Chain) (D, error) {
	var d D
	if err := build(From(tbl), &d).Err(); err != nil {
		var zero D
		return zero, err
	}
	return d, nil
}
