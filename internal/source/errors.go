package source

import "fmt"

// ParseError reports a document that could not be decoded. Line and Column
// are 1-based and zero when the decoder did not report a position.
type ParseError struct {
	File    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.File, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.File, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.File, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingFileError reports a configuration path that does not exist.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("expecting config at %s, but the file doesn't exist", e.Path)
}

// UnsupportedFormatError reports a file whose extension has no decoder.
type UnsupportedFormatError struct {
	File string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("no decoder for %s: unsupported file extension", e.File)
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int) (line, col int) {
	if offset < 0 {
		return 0, 0
	}
	if offset > len(data) {
		offset = len(data)
	}
	line, col = 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
