package source

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/tidwall/jsonc"
	"github.com/vk/bitconf/internal/config"
)

// DecodeJSON decodes a JSON document. Comments and trailing commas are
// accepted. Numbers without a fraction or exponent become integers.
func DecodeJSON(name string, data []byte) (config.Node, error) {
	plain := jsonc.ToJSON(data)
	if len(bytes.TrimSpace(plain)) == 0 {
		return config.Table(), nil
	}

	dec := json.NewDecoder(bytes.NewReader(plain))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		perr := &ParseError{File: name, Message: err.Error(), Err: err}
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			perr.Line, perr.Column = position(data, int(syntaxErr.Offset))
		}
		return config.Absent, perr
	}
	if _, ok := doc.(map[string]any); !ok {
		return config.Absent, &ParseError{File: name, Message: fmt.Sprintf("top level must be an object, found %T", doc)}
	}
	root, err := config.FromNative(doc)
	if err != nil {
		return config.Absent, &ParseError{File: name, Message: err.Error(), Err: err}
	}
	return root, nil
}
