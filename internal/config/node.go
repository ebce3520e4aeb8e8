package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which variant of the Node union is populated.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindBool
	KindInteger
	KindFloat
	KindString
	KindArray
	KindTable
)

var kindNames = [...]string{
	KindAbsent:  "nothing",
	KindBool:    "boolean",
	KindInteger: "integer",
	KindFloat:   "float",
	KindString:  "string",
	KindArray:   "array",
	KindTable:   "table",
}

// String returns the user-facing name of the kind, as used in error messages.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Node is a single value in a parsed configuration document. It is a tagged
// union: exactly one of the payload fields is meaningful, selected by kind.
//
// Nodes are immutable. A node returned by Resolve remembers the path it was
// found at, so errors raised against it can name the full location even when
// the caller only holds a narrowed subtable.
type Node struct {
	kind  Kind
	path  Path
	b     bool
	i     int64
	f     float64
	s     string
	items []Node
	tbl   *table
}

// table keeps insertion order so that dumps and merges are deterministic.
type table struct {
	keys   []string
	values map[string]Node
}

// Absent is the zero Node.
var Absent = Node{}

// Bool returns a boolean leaf.
func Bool(v bool) Node { return Node{kind: KindBool, b: v} }

// Int returns an integer leaf.
func Int(v int64) Node { return Node{kind: KindInteger, i: v} }

// Float returns a floating point leaf.
func Float(v float64) Node { return Node{kind: KindFloat, f: v} }

// String returns a string leaf.
func String(v string) Node { return Node{kind: KindString, s: v} }

// Array returns an array node holding items in order.
func Array(items ...Node) Node {
	cp := make([]Node, len(items))
	copy(cp, items)
	return Node{kind: KindArray, items: cp}
}

// Entry is a single key/value pair used to build tables.
type Entry struct {
	Key   string
	Value Node
}

// Field is shorthand for building an Entry.
func Field(key string, value Node) Entry {
	return Entry{Key: key, Value: value}
}

// Table returns a table node with the given entries. A later entry with the
// same key replaces the earlier one but keeps its position.
func Table(entries ...Entry) Node {
	t := &table{values: make(map[string]Node, len(entries))}
	for _, e := range entries {
		t.set(e.Key, e.Value)
	}
	return Node{kind: KindTable, tbl: t}
}

func (t *table) set(key string, v Node) {
	if _, ok := t.values[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.values[key] = v
}

// Kind reports the node's variant.
func (n Node) Kind() Kind { return n.kind }

// Path reports where the node was resolved from. The root and nodes built
// by hand have an empty path.
func (n Node) Path() Path { return n.path }

// IsAbsent reports whether the node holds nothing.
func (n Node) IsAbsent() bool { return n.kind == KindAbsent }

// AsBool returns the boolean payload and whether the node is a boolean.
func (n Node) AsBool() (bool, bool) { return n.b, n.kind == KindBool }

// AsInt returns the integer payload and whether the node is an integer.
func (n Node) AsInt() (int64, bool) { return n.i, n.kind == KindInteger }

// AsFloat returns the float payload and whether the node is a float.
func (n Node) AsFloat() (float64, bool) { return n.f, n.kind == KindFloat }

// AsString returns the string payload and whether the node is a string.
func (n Node) AsString() (string, bool) { return n.s, n.kind == KindString }

// Len returns the number of array items or table keys, 0 for leaves.
func (n Node) Len() int {
	switch n.kind {
	case KindArray:
		return len(n.items)
	case KindTable:
		return len(n.tbl.keys)
	}
	return 0
}

// Index returns the i-th array item, located under the node's path.
func (n Node) Index(i int) (Node, bool) {
	if n.kind != KindArray || i < 0 || i >= len(n.items) {
		return Absent, false
	}
	item := n.items[i]
	item.path = n.path.Index(i)
	return item, true
}

// Items returns every array item, each located under the node's path.
func (n Node) Items() []Node {
	if n.kind != KindArray {
		return nil
	}
	out := make([]Node, len(n.items))
	for i := range n.items {
		out[i], _ = n.Index(i)
	}
	return out
}

// Get returns the value stored under key, located under the node's path.
func (n Node) Get(key string) (Node, bool) {
	if n.kind != KindTable {
		return Absent, false
	}
	v, ok := n.tbl.values[key]
	if !ok {
		return Absent, false
	}
	v.path = n.path.Key(key)
	return v, true
}

// Keys returns the table keys in insertion order.
func (n Node) Keys() []string {
	if n.kind != KindTable {
		return nil
	}
	out := make([]string, len(n.tbl.keys))
	copy(out, n.tbl.keys)
	return out
}

// Equal reports whether two nodes hold the same value. Locations are ignored
// and table key order does not matter.
func (n Node) Equal(o Node) bool {
	if n.kind != o.kind {
		return false
	}
	switch n.kind {
	case KindAbsent:
		return true
	case KindBool:
		return n.b == o.b
	case KindInteger:
		return n.i == o.i
	case KindFloat:
		return n.f == o.f
	case KindString:
		return n.s == o.s
	case KindArray:
		if len(n.items) != len(o.items) {
			return false
		}
		for i := range n.items {
			if !n.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case KindTable:
		if len(n.tbl.keys) != len(o.tbl.keys) {
			return false
		}
		for k, v := range n.tbl.values {
			ov, ok := o.tbl.values[k]
			if !ok || !v.Equal(ov) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders the node in a compact, TOML-like inline form.
func (n Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n Node) write(sb *strings.Builder) {
	switch n.kind {
	case KindAbsent:
		sb.WriteString("<absent>")
	case KindBool:
		sb.WriteString(strconv.FormatBool(n.b))
	case KindInteger:
		sb.WriteString(strconv.FormatInt(n.i, 10))
	case KindFloat:
		sb.WriteString(strconv.FormatFloat(n.f, 'g', -1, 64))
	case KindString:
		sb.WriteString(strconv.Quote(n.s))
	case KindArray:
		sb.WriteByte('[')
		for i, item := range n.items {
			if i > 0 {
				sb.WriteString(", ")
			}
			item.write(sb)
		}
		sb.WriteByte(']')
	case KindTable:
		sb.WriteByte('{')
		for i, k := range n.tbl.keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "%s = ", k)
			n.tbl.values[k].write(sb)
		}
		sb.WriteByte('}')
	}
}
