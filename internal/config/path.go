package config

import (
	"strconv"
	"strings"
)

// Segment is one step of a Path: either a table key or an array index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Path addresses a node inside a tree. Its external form is dotted keys with
// optional array indexes, e.g. "renderer.flags[1]".
type Path []Segment

// ParsePath parses the external dotted form. The empty string is the root.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return nil, nil
	}
	var p Path
	i := 0
	for {
		start := i
		for i < len(s) && s[i] != '.' && s[i] != '[' && s[i] != ']' {
			i++
		}
		if i == start {
			return nil, &PathSyntaxError{Path: s, Reason: "empty key"}
		}
		p = append(p, Segment{Key: s[start:i]})

		for i < len(s) && s[i] == '[' {
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return nil, &PathSyntaxError{Path: s, Reason: "unterminated index"}
			}
			num := s[i+1 : i+end]
			n, err := strconv.Atoi(num)
			if err != nil || n < 0 {
				return nil, &PathSyntaxError{Path: s, Reason: "index " + strconv.Quote(num) + " is not a non-negative integer"}
			}
			p = append(p, Segment{Index: n, IsIndex: true})
			i += end + 1
		}

		if i == len(s) {
			return p, nil
		}
		if s[i] != '.' {
			return nil, &PathSyntaxError{Path: s, Reason: "unexpected " + strconv.Quote(s[i:i+1])}
		}
		i++
	}
}

// MustParsePath is ParsePath for literals known to be well formed.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Key returns a copy of p extended by a table key.
func (p Path) Key(k string) Path {
	return p.with(Segment{Key: k})
}

// Index returns a copy of p extended by an array index.
func (p Path) Index(i int) Path {
	return p.with(Segment{Index: i, IsIndex: true})
}

// Join returns a copy of p followed by every segment of q.
func (p Path) Join(q Path) Path {
	out := make(Path, 0, len(p)+len(q))
	out = append(out, p...)
	return append(out, q...)
}

func (p Path) with(s Segment) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, s)
}

// String renders the external dotted form.
func (p Path) String() string {
	var sb strings.Builder
	for i, s := range p {
		if s.IsIndex {
			sb.WriteByte('[')
			sb.WriteString(strconv.Itoa(s.Index))
			sb.WriteByte(']')
			continue
		}
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(s.Key)
	}
	return sb.String()
}
