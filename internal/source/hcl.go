package source

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/bitconf/internal/config"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// hclFunctions are the functions attribute expressions may call. No
// variables are defined, so documents stay self-contained.
var hclFunctions = map[string]function.Function{
	"concat": stdlib.ConcatFunc,
	"format": stdlib.FormatFunc,
	"lower":  stdlib.LowerFunc,
	"max":    stdlib.MaxFunc,
	"min":    stdlib.MinFunc,
	"upper":  stdlib.UpperFunc,
}

// DecodeHCL decodes an HCL document. Attributes become keys; a block
// becomes a table nested under its type and then each of its labels, so
//
//	window "main" { title = "Game" }
//
// reads the same as window.main.title. Repeated blocks merge.
func DecodeHCL(name string, data []byte) (config.Node, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, name)
	if diags.HasErrors() {
		return config.Absent, diagError(name, diags)
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return config.Absent, &ParseError{File: name, Message: "unexpected HCL body type"}
	}
	ctx := &hcl.EvalContext{Functions: hclFunctions}
	return hclBody(name, body, ctx)
}

type hclItem struct {
	offset int
	node   config.Node
}

func hclBody(name string, body *hclsyntax.Body, ctx *hcl.EvalContext) (config.Node, error) {
	items := make([]hclItem, 0, len(body.Attributes)+len(body.Blocks))

	for key, attr := range body.Attributes {
		val, diags := attr.Expr.Value(ctx)
		if diags.HasErrors() {
			return config.Absent, diagError(name, diags)
		}
		n, err := ctyToNode(val)
		if err != nil {
			start := attr.SrcRange.Start
			return config.Absent, &ParseError{File: name, Line: start.Line, Column: start.Column, Message: fmt.Sprintf("%s: %v", key, err)}
		}
		if n.IsAbsent() {
			continue
		}
		items = append(items, hclItem{offset: attr.SrcRange.Start.Byte, node: config.Table(config.Field(key, n))})
	}

	for _, block := range body.Blocks {
		inner, err := hclBody(name, block.Body, ctx)
		if err != nil {
			return config.Absent, err
		}
		for i := len(block.Labels) - 1; i >= 0; i-- {
			inner = config.Table(config.Field(block.Labels[i], inner))
		}
		items = append(items, hclItem{offset: block.TypeRange.Start.Byte, node: config.Table(config.Field(block.Type, inner))})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].offset < items[j].offset })

	root := config.Table()
	for _, item := range items {
		root = config.Merge(root, item.node)
	}
	return root, nil
}

// ctyToNode converts an evaluated attribute value. Null becomes Absent.
func ctyToNode(val cty.Value) (config.Node, error) {
	if !val.IsKnown() {
		return config.Absent, fmt.Errorf("value is not known")
	}
	if val.IsNull() {
		return config.Absent, nil
	}

	ty := val.Type()
	switch {
	case ty == cty.String:
		return config.String(val.AsString()), nil
	case ty == cty.Bool:
		return config.Bool(val.True()), nil
	case ty == cty.Number:
		bf := val.AsBigFloat()
		if bf.IsInt() {
			i, acc := bf.Int64()
			if acc != big.Exact {
				return config.Absent, fmt.Errorf("integer %s does not fit in int64", bf.String())
			}
			return config.Int(i), nil
		}
		f, _ := bf.Float64()
		return config.Float(f), nil
	case ty.IsObjectType() || ty.IsMapType():
		var entries []config.Entry
		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()
			n, err := ctyToNode(v)
			if err != nil {
				return config.Absent, err
			}
			if n.IsAbsent() {
				continue
			}
			entries = append(entries, config.Field(k.AsString(), n))
		}
		return config.Table(entries...), nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		var items []config.Node
		for it := val.ElementIterator(); it.Next(); {
			_, v := it.Element()
			n, err := ctyToNode(v)
			if err != nil {
				return config.Absent, err
			}
			items = append(items, n)
		}
		return config.Array(items...), nil
	}
	return config.Absent, fmt.Errorf("unsupported value of type %s", ty.FriendlyName())
}

func diagError(name string, diags hcl.Diagnostics) error {
	for _, d := range diags {
		if d.Severity != hcl.DiagError {
			continue
		}
		perr := &ParseError{File: name, Message: d.Summary, Err: diags}
		if d.Detail != "" {
			perr.Message += ": " + d.Detail
		}
		if d.Subject != nil {
			perr.Line, perr.Column = d.Subject.Start.Line, d.Subject.Start.Column
		}
		return perr
	}
	return &ParseError{File: name, Message: diags.Error(), Err: diags}
}
