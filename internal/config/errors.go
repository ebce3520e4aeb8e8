package config

import (
	"errors"
	"fmt"
)

// MissingPathError reports that nothing is stored at Path, either because a
// key is absent or because an intermediate node cannot be descended into.
type MissingPathError struct {
	Path string
}

func (e *MissingPathError) Error() string {
	return fmt.Sprintf("expected %s to exist, but it doesn't", e.Path)
}

// NotATableError reports a node that was required to be a table.
type NotATableError struct {
	Path   string
	Actual Kind
}

func (e *NotATableError) Error() string {
	return fmt.Sprintf("expected %s to be a table, but it is %s", e.Path, article(e.Actual))
}

// NotAnArrayError reports a node that was required to be an array.
type NotAnArrayError struct {
	Path   string
	Actual Kind
}

func (e *NotAnArrayError) Error() string {
	return fmt.Sprintf("expected %s to be an array, but it is %s", e.Path, article(e.Actual))
}

// TypeMismatchError reports a leaf of the wrong kind.
type TypeMismatchError struct {
	Path     string
	Expected Kind
	Actual   Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("expected %s to be %s, but it is %s", e.Path, article(e.Expected), article(e.Actual))
}

// HeterogeneousArrayError reports the first array item whose kind differs
// from the kind every item was required to have.
type HeterogeneousArrayError struct {
	Path     string
	Index    int
	Expected Kind
	Actual   Kind
}

func (e *HeterogeneousArrayError) Error() string {
	return fmt.Sprintf("expected every item of %s to be %s, but item %d is %s",
		e.Path, article(e.Expected), e.Index, article(e.Actual))
}

// CapacityExceededError reports an array longer than the storage it is
// loaded into. Arrays are never truncated silently.
type CapacityExceededError struct {
	Path     string
	Capacity int
	Length   int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("%s can have at most %d items, but it has %d", e.Path, e.Capacity, e.Length)
}

// LengthError reports an array that must have an exact length.
type LengthError struct {
	Path   string
	Want   int
	Length int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("expected %s to have exactly %d items, but it has %d", e.Path, e.Want, e.Length)
}

// RangeError reports an integer that does not fit the requested Go type.
type RangeError struct {
	Path  string
	Value int64
	Type  string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: value %d does not fit in %s", e.Path, e.Value, e.Type)
}

// PathSyntaxError reports a malformed dotted path.
type PathSyntaxError struct {
	Path   string
	Reason string
}

func (e *PathSyntaxError) Error() string {
	return fmt.Sprintf("invalid path %q: %s", e.Path, e.Reason)
}

// IsMissing reports whether err is, or wraps, a MissingPathError.
func IsMissing(err error) bool {
	var missing *MissingPathError
	return errors.As(err, &missing)
}

func article(k Kind) string {
	switch k {
	case KindAbsent:
		return "nothing"
	case KindInteger, KindArray:
		return "an " + k.String()
	}
	return "a " + k.String()
}
