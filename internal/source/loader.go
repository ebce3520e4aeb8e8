package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vk/bitconf/internal/config"
	"github.com/vk/bitconf/internal/ctxlog"
	"github.com/vk/bitconf/internal/fsutil"
)

// DecodeFunc decodes one document. name is only used in error messages.
type DecodeFunc func(name string, data []byte) (config.Node, error)

// Loader reads configuration files and merges them into one tree.
type Loader struct {
	decoders map[string]DecodeFunc
}

var _ config.Loader = (*Loader)(nil)

// NewLoader returns a loader that understands every built-in format.
func NewLoader() *Loader {
	return &Loader{decoders: map[string]DecodeFunc{
		".toml":  DecodeTOML,
		".yaml":  DecodeYAML,
		".yml":   DecodeYAML,
		".json":  DecodeJSON,
		".jsonc": DecodeJSON,
		".hcl":   DecodeHCL,
	}}
}

// Register adds or replaces the decoder used for files ending in ext.
func (l *Loader) Register(ext string, decode DecodeFunc) {
	l.decoders[strings.ToLower(ext)] = decode
}

// Extensions lists the file extensions the loader can decode, sorted.
func (l *Loader) Extensions() []string {
	exts := make([]string, 0, len(l.decoders))
	for ext := range l.decoders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Load reads every file named by paths, walking directories for files with a
// known extension, and merges them in order. Later files win.
func (l *Loader) Load(ctx context.Context, paths ...string) (config.Node, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := l.Files(paths...)
	if err != nil {
		return config.Absent, err
	}
	logger.Debug("Discovered config files.", "count", len(files))

	root := config.Table()
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return config.Absent, err
		}
		tree, err := l.ParseFile(file)
		if err != nil {
			return config.Absent, err
		}
		root = config.Merge(root, tree)
		logger.Debug("Loaded config file.", "path", file)
	}
	return root, nil
}

// Files expands paths into the list of files Load would read.
func (l *Loader) Files(paths ...string) ([]string, error) {
	if len(paths) == 0 {
		return nil, errors.New("no config paths given")
	}

	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, &MissingFileError{Path: p}
			}
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		found, err := fsutil.FindFilesByExtensions(p, l.Extensions()...)
		if err != nil {
			return nil, fmt.Errorf("failed to search %s for config files: %w", p, err)
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("no config files found in %s", p)
		}
		files = append(files, found...)
	}
	return files, nil
}

// ParseFile decodes a single file with the decoder for its extension.
func (l *Loader) ParseFile(path string) (config.Node, error) {
	decode, ok := l.decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return config.Absent, &UnsupportedFormatError{File: path}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config.Absent, &MissingFileError{Path: path}
		}
		return config.Absent, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return decode(path, data)
}

// Parse decodes data as the format implied by name's extension.
func (l *Loader) Parse(name string, data []byte) (config.Node, error) {
	decode, ok := l.decoders[strings.ToLower(filepath.Ext(name))]
	if !ok {
		return config.Absent, &UnsupportedFormatError{File: name}
	}
	return decode(name, data)
}
