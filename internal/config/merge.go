package config

// Merge returns base overlaid with over. Tables present on both sides merge
// key by key; for every other combination the value from over replaces the
// one from base. Neither input is modified.
func Merge(base, over Node) Node {
	if base.kind != KindTable || over.kind != KindTable {
		if over.IsAbsent() {
			return base
		}
		return over
	}

	t := &table{values: make(map[string]Node, len(base.tbl.keys)+len(over.tbl.keys))}
	for _, k := range base.tbl.keys {
		t.set(k, base.tbl.values[k])
	}
	for _, k := range over.tbl.keys {
		if prev, ok := t.values[k]; ok {
			t.set(k, Merge(prev, over.tbl.values[k]))
			continue
		}
		t.set(k, over.tbl.values[k])
	}
	return Node{kind: KindTable, path: base.path, tbl: t}
}
