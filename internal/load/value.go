package load

import (
	"fmt"
	"math"

	"github.com/vk/bitconf/internal/config"
)

// Value is the closed set of types a leaf can be loaded as.
type Value interface {
	bool | string |
		int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64
}

// Kind returns the only node kind a T can be loaded from.
func Kind[T Value]() config.Kind {
	var zero T
	switch any(zero).(type) {
	case bool:
		return config.KindBool
	case string:
		return config.KindString
	case float32, float64:
		return config.KindFloat
	default:
		return config.KindInteger
	}
}

// As coerces a single node into T.
func As[T Value](n config.Node) (T, error) {
	var out T
	want := Kind[T]()
	if n.Kind() != want {
		if n.IsAbsent() {
			return out, &config.MissingPathError{Path: n.Path().String()}
		}
		return out, &config.TypeMismatchError{Path: n.Path().String(), Expected: want, Actual: n.Kind()}
	}

	switch p := any(&out).(type) {
	case *bool:
		*p, _ = n.AsBool()
	case *string:
		*p, _ = n.AsString()
	case *float64:
		*p, _ = n.AsFloat()
	case *float32:
		f, _ := n.AsFloat()
		*p = float32(f)
	default:
		v, _ := n.AsInt()
		if !setInt(p, v) {
			return out, &config.RangeError{Path: n.Path().String(), Value: v, Type: fmt.Sprintf("%T", out)}
		}
	}
	return out, nil
}

// Get loads the value stored at path below tbl.
func Get[T Value](tbl config.Node, path string) (T, error) {
	n, err := config.Resolve(tbl, path)
	if err != nil {
		var zero T
		return zero, err
	}
	return As[T](n)
}

// GetOr loads the value stored at path below tbl, or returns fallback when
// it is missing, of the wrong kind, or out of range for T.
func GetOr[T Value](tbl config.Node, path string, fallback T) T {
	v, err := Get[T](tbl, path)
	if err != nil {
		return fallback
	}
	return v
}

// setInt stores v through dst if it fits the pointed-to integer type.
func setInt(dst any, v int64) bool {
	switch p := dst.(type) {
	case *int:
		if v < math.MinInt || v > math.MaxInt {
			return false
		}
		*p = int(v)
	case *int8:
		if v < math.MinInt8 || v > math.MaxInt8 {
			return false
		}
		*p = int8(v)
	case *int16:
		if v < math.MinInt16 || v > math.MaxInt16 {
			return false
		}
		*p = int16(v)
	case *int32:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return false
		}
		*p = int32(v)
	case *int64:
		*p = v
	case *uint:
		if v < 0 || uint64(v) > math.MaxUint {
			return false
		}
		*p = uint(v)
	case *uint8:
		if v < 0 || v > math.MaxUint8 {
			return false
		}
		*p = uint8(v)
	case *uint16:
		if v < 0 || v > math.MaxUint16 {
			return false
		}
		*p = uint16(v)
	case *uint32:
		if v < 0 || v > math.MaxUint32 {
			return false
		}
		*p = uint32(v)
	case *uint64:
		if v < 0 {
			return false
		}
		*p = uint64(v)
	default:
		return false
	}
	return true
}
