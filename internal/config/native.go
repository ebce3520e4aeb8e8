package config

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// number is satisfied by json.Number and friends, so decoders that keep
// numbers in their textual form can be converted without a dependency here.
type number interface {
	Int64() (int64, error)
	Float64() (float64, error)
	String() string
}

// FromNative converts the generic Go representation produced by most
// decoders (map[string]any, []any, scalars) into a Node tree.
//
// Integers of every width become KindInteger, floats become KindFloat, and
// time values become RFC 3339 strings. nil map values are dropped so that the
// key reads as missing. Map keys are visited in sorted order because Go maps
// carry no document order.
func FromNative(v any) (Node, error) {
	return fromNative(v, nil)
}

func fromNative(v any, at Path) (Node, error) {
	switch x := v.(type) {
	case nil:
		return Absent, nil
	case Node:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return fromUnsigned(uint64(x), at)
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		return fromUnsigned(x, at)
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case time.Time:
		return String(x.Format(time.RFC3339Nano)), nil
	case fmt.Stringer:
		if num, ok := x.(number); ok {
			if i, err := num.Int64(); err == nil {
				return Int(i), nil
			}
			f, err := num.Float64()
			if err != nil {
				return Absent, fmt.Errorf("%s: invalid number %q: %w", displayPath(at), num.String(), err)
			}
			return Float(f), nil
		}
		// TOML local dates and times land here.
		return String(x.String()), nil
	case []any:
		items := make([]Node, 0, len(x))
		for i, item := range x {
			n, err := fromNative(item, at.Index(i))
			if err != nil {
				return Absent, err
			}
			items = append(items, n)
		}
		return Node{kind: KindArray, items: items}, nil
	case []map[string]any:
		items := make([]Node, 0, len(x))
		for i, item := range x {
			n, err := fromNative(item, at.Index(i))
			if err != nil {
				return Absent, err
			}
			items = append(items, n)
		}
		return Node{kind: KindArray, items: items}, nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		t := &table{values: make(map[string]Node, len(x))}
		for _, k := range keys {
			n, err := fromNative(x[k], at.Key(k))
			if err != nil {
				return Absent, err
			}
			if n.IsAbsent() {
				continue
			}
			t.set(k, n)
		}
		return Node{kind: KindTable, tbl: t}, nil
	}
	return Absent, fmt.Errorf("%s: unsupported value of type %T", displayPath(at), v)
}

func fromUnsigned(v uint64, at Path) (Node, error) {
	if v > math.MaxInt64 {
		return Absent, fmt.Errorf("%s: value %d does not fit in int64", displayPath(at), v)
	}
	return Int(int64(v)), nil
}

func displayPath(p Path) string {
	if len(p) == 0 {
		return "<root>"
	}
	return p.String()
}
