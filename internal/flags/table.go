package flags

import (
	"fmt"
	"sort"
	"strings"
)

// Mask is any unsigned integer type a flag domain can be expressed in.
type Mask interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Table maps lowercase flag names to their bit values. Tables are built once
// and never modified, so a single instance may be shared freely.
type Table[M Mask] struct {
	domain string
	bits   map[string]M
}

// NewTable builds a table for the named domain ("window", "renderer", ...).
// Names are case folded; two names that fold to the same key panic, since
// that is a programming error in the table literal.
func NewTable[M Mask](domain string, bits map[string]M) Table[M] {
	t := Table[M]{domain: domain, bits: make(map[string]M, len(bits))}
	for name, bit := range bits {
		key := strings.ToLower(name)
		if _, dup := t.bits[key]; dup {
			panic(fmt.Sprintf("flags: duplicate name %q in %s table", key, domain))
		}
		t.bits[key] = bit
	}
	return t
}

// Domain names the family of flags the table resolves.
func (t Table[M]) Domain() string { return t.domain }

// Lookup returns the bit value of an already case-folded name.
func (t Table[M]) Lookup(name string) (M, bool) {
	bit, ok := t.bits[name]
	return bit, ok
}

// Contains reports whether the case-folded name is known.
func (t Table[M]) Contains(name string) bool {
	_, ok := t.bits[name]
	return ok
}

// Names lists every known name in sorted order.
func (t Table[M]) Names() []string {
	names := make([]string, 0, len(t.bits))
	for name := range t.bits {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of known names.
func (t Table[M]) Len() int { return len(t.bits) }
