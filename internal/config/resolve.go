package config

// Resolve returns the node stored at the dotted path below root. The returned
// node carries its full location (root's location joined with path).
//
// A key absent at any level, a descent through a non-table (or, for index
// segments, non-array) node, and an out of range index all fail with a
// MissingPathError naming the full requested path.
func Resolve(root Node, path string) (Node, error) {
	p, err := ParsePath(path)
	if err != nil {
		return Absent, err
	}
	return ResolvePath(root, p)
}

// ResolvePath is Resolve for an already parsed path.
func ResolvePath(root Node, p Path) (Node, error) {
	cur := root
	for _, seg := range p {
		var ok bool
		if seg.IsIndex {
			cur, ok = cur.Index(seg.Index)
		} else {
			cur, ok = cur.Get(seg.Key)
		}
		if !ok || cur.IsAbsent() {
			return Absent, &MissingPathError{Path: root.path.Join(p).String()}
		}
	}
	return cur, nil
}

// Subtable resolves path below root and requires the result to be a table.
func Subtable(root Node, path string) (Node, error) {
	n, err := Resolve(root, path)
	if err != nil {
		return Absent, err
	}
	if n.Kind() != KindTable {
		return Absent, &NotATableError{Path: n.path.String(), Actual: n.Kind()}
	}
	return n, nil
}

// Exists reports whether something is stored at path below root.
func Exists(root Node, path string) bool {
	_, err := Resolve(root, path)
	return err == nil
}
