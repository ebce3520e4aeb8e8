package source

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/vk/bitconf/internal/config"
	"gopkg.in/yaml.v3"
)

var yamlLine = regexp.MustCompile(`line (\d+)`)

// DecodeYAML decodes a YAML document. Mapping order is preserved, aliases are
// followed, and merge keys ("<<") supply defaults the mapping can override.
func DecodeYAML(name string, data []byte) (config.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		perr := &ParseError{File: name, Message: err.Error(), Err: err}
		if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
			perr.Line, _ = strconv.Atoi(m[1])
		}
		return config.Absent, perr
	}
	if doc.Kind == 0 {
		// Empty input.
		return config.Table(), nil
	}

	root, err := fromYAML(name, &doc)
	if err != nil {
		return config.Absent, err
	}
	if root.IsAbsent() {
		return config.Table(), nil
	}
	if root.Kind() != config.KindTable {
		return config.Absent, &ParseError{
			File:    name,
			Line:    doc.Line,
			Column:  doc.Column,
			Message: fmt.Sprintf("top level must be a mapping, found %s", root.Kind()),
		}
	}
	return root, nil
}

func fromYAML(name string, n *yaml.Node) (config.Node, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return config.Absent, nil
		}
		return fromYAML(name, n.Content[0])
	case yaml.AliasNode:
		return fromYAML(name, n.Alias)
	case yaml.SequenceNode:
		items := make([]config.Node, 0, len(n.Content))
		for _, c := range n.Content {
			item, err := fromYAML(name, c)
			if err != nil {
				return config.Absent, err
			}
			items = append(items, item)
		}
		return config.Array(items...), nil
	case yaml.MappingNode:
		return yamlMapping(name, n)
	case yaml.ScalarNode:
		return yamlScalar(name, n)
	}
	return config.Absent, yamlError(name, n, fmt.Sprintf("unexpected node kind %d", n.Kind))
}

// yamlMapping builds a table from a mapping. Merge keys are shallow: a key
// written in the mapping replaces the merged value whole, and among merge
// sources the first one naming a key wins.
func yamlMapping(name string, n *yaml.Node) (config.Node, error) {
	var fields yamlFields
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]

		if k.ShortTag() == "!!merge" {
			merged, err := fromYAML(name, v)
			if err != nil {
				return config.Absent, err
			}
			for _, src := range yamlMergeSources(merged) {
				if src.Kind() != config.KindTable {
					return config.Absent, yamlError(name, v, "merge key value must be a mapping")
				}
				for _, key := range src.Keys() {
					value, _ := src.Get(key)
					fields.fill(key, value)
				}
			}
			continue
		}

		if k.Kind != yaml.ScalarNode {
			return config.Absent, yamlError(name, k, "mapping keys must be scalars")
		}
		value, err := fromYAML(name, v)
		if err != nil {
			return config.Absent, err
		}
		fields.put(k.Value, value)
	}
	return fields.table(), nil
}

// yamlFields collects mapping entries in document order. A key written as
// null is still recorded, so no merge source can fill it in.
type yamlFields struct {
	entries []config.Entry
	index   map[string]int
}

func (f *yamlFields) put(key string, value config.Node) {
	if f.index == nil {
		f.index = make(map[string]int)
	}
	if i, ok := f.index[key]; ok {
		f.entries[i].Value = value
		return
	}
	f.index[key] = len(f.entries)
	f.entries = append(f.entries, config.Field(key, value))
}

func (f *yamlFields) fill(key string, value config.Node) {
	if _, ok := f.index[key]; ok {
		return
	}
	f.put(key, value)
}

func (f *yamlFields) table() config.Node {
	entries := make([]config.Entry, 0, len(f.entries))
	for _, e := range f.entries {
		if !e.Value.IsAbsent() {
			entries = append(entries, e)
		}
	}
	return config.Table(entries...)
}

// yamlMergeSources lists merge sources in decreasing precedence.
func yamlMergeSources(merged config.Node) []config.Node {
	if merged.Kind() != config.KindArray {
		return []config.Node{merged}
	}
	return merged.Items()
}

func yamlScalar(name string, n *yaml.Node) (config.Node, error) {
	switch n.ShortTag() {
	case "!!null":
		return config.Absent, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return config.Absent, yamlError(name, n, err.Error())
		}
		return config.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return config.Absent, yamlError(name, n, err.Error())
		}
		return config.Int(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return config.Absent, yamlError(name, n, err.Error())
		}
		return config.Float(f), nil
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return config.Absent, yamlError(name, n, err.Error())
		}
		return config.String(t.Format(time.RFC3339Nano)), nil
	}
	return config.String(n.Value), nil
}

func yamlError(name string, n *yaml.Node, msg string) error {
	return &ParseError{File: name, Line: n.Line, Column: n.Column, Message: msg}
}
