package flags

import (
	"github.com/vk/bitconf/internal/config"
	"github.com/vk/bitconf/internal/load"
)

// MaxNames is how many names a single flag list may hold when loaded with
// Load. A longer list is a configuration mistake and fails loudly.
const MaxNames = 32

// Load reads the array of names stored at path below tbl, resolves it against
// table and hands the unknown names to sink (which may be nil). Only the
// shape of the array can make it fail; unknown names never do.
func Load[M Mask](tbl config.Node, path string, table Table[M], sink Sink) (M, error) {
	return LoadN(tbl, path, table, sink, MaxNames)
}

// LoadN is Load with an explicit limit on the number of names.
func LoadN[M Mask](tbl config.Node, path string, table Table[M], sink Sink, limit int) (M, error) {
	names := make([]string, limit)
	n, err := load.Array(tbl, path, names)
	if err != nil {
		return 0, err
	}

	res := Resolve(names[:n], table)
	if sink != nil && len(res.Invalid) > 0 {
		sink.Collect(res.Invalid...)
	}
	return res.Mask, nil
}
