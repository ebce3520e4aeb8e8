package source

import (
	"errors"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/vk/bitconf/internal/config"
)

// DecodeTOML decodes a TOML document. Keys come out sorted since the decoder
// hands back plain maps.
func DecodeTOML(name string, data []byte) (config.Node, error) {
	var doc map[string]any
	if _, err := toml.Decode(string(data), &doc); err != nil {
		perr := &ParseError{File: name, Message: err.Error(), Err: err}
		var tomlErr toml.ParseError
		if errors.As(err, &tomlErr) {
			perr.Message = tomlErr.Message
			perr.Line = tomlErr.Position.Line
			if line, col := position(data, tomlErr.Position.Start); line == perr.Line {
				perr.Column = col
			}
		}
		return config.Absent, perr
	}

	root, err := config.FromNative(localTimes(doc))
	if err != nil {
		return config.Absent, &ParseError{File: name, Message: err.Error(), Err: err}
	}
	return root, nil
}

// localTimes rewrites TOML local dates, times and datetimes into their
// textual form. The decoder reports them as time.Time in a placeholder zone,
// which would otherwise print with a made-up UTC offset.
func localTimes(v any) any {
	switch x := v.(type) {
	case time.Time:
		switch x.Location().String() {
		case "datetime-local":
			return x.Format("2006-01-02T15:04:05.999999999")
		case "date-local":
			return x.Format("2006-01-02")
		case "time-local":
			return x.Format("15:04:05.999999999")
		}
		return x
	case map[string]any:
		for k, item := range x {
			x[k] = localTimes(item)
		}
		return x
	case []map[string]any:
		for i, item := range x {
			x[i] = localTimes(item).(map[string]any)
		}
		return x
	case []any:
		for i, item := range x {
			x[i] = localTimes(item)
		}
		return x
	}
	return v
}
