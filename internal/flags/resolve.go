package flags

import "strings"

// Resolution is the outcome of resolving a list of names.
type Resolution[M Mask] struct {
	// Mask is the OR of the bit values of every known name.
	Mask M
	// Invalid holds the case-folded unknown names in input order.
	Invalid []string
}

// Resolve folds names to lowercase, partitions them into known and unknown
// names, and reduces the known ones into a mask. Duplicates are kept: a known
// name repeated is OR-ed twice, an unknown one is reported twice. The input
// slice is not modified.
func Resolve[M Mask](names []string, table Table[M]) Resolution[M] {
	folded := make([]string, len(names))
	for i, name := range names {
		folded[i] = strings.ToLower(name)
	}

	split := partition(folded, table.Contains)

	var mask M
	for _, name := range folded[:split] {
		bit, _ := table.Lookup(name)
		mask |= bit
	}

	var invalid []string
	if split < len(folded) {
		invalid = folded[split:]
	}
	return Resolution[M]{Mask: mask, Invalid: invalid}
}

// partition reorders s so that every element satisfying keep precedes every
// element that doesn't, preserving relative order on both sides, and returns
// the index of the first rejected element.
func partition(s []string, keep func(string) bool) int {
	var rejected []string
	n := 0
	for _, v := range s {
		if keep(v) {
			s[n] = v
			n++
			continue
		}
		rejected = append(rejected, v)
	}
	copy(s[n:], rejected)
	return n
}
