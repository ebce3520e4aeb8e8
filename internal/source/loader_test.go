package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/bitconf/internal/config"
)

func strs(items ...string) config.Node {
	nodes := make([]config.Node, len(items))
	for i, s := range items {
		nodes[i] = config.String(s)
	}
	return config.Array(nodes...)
}

func ints(items ...int64) config.Node {
	nodes := make([]config.Node, len(items))
	for i, v := range items {
		nodes[i] = config.Int(v)
	}
	return config.Array(nodes...)
}

func sceneTree() config.Node {
	return config.Table(
		config.Field("system", config.Table(config.Field("subsystems", strs("video", "audio")))),
		config.Field("window", config.Table(
			config.Field("title", config.String("Game")),
			config.Field("width", config.Int(800)),
			config.Field("height", config.Int(600)),
			config.Field("flags", strs("resizable", "shown")),
		)),
		config.Field("renderer", config.Table(
			config.Field("flags", strs("accelerated", "present-vsync")),
			config.Field("scale", config.Float(1.5)),
		)),
		config.Field("draw", config.Table(config.Field("color", ints(255, 128, 0, 255)))),
	)
}

func TestParseFile_EveryFormatYieldsSameTree(t *testing.T) {
	t.Parallel()
	loader := NewLoader()
	want := sceneTree()

	for _, name := range []string{"game.toml", "game.yaml", "game.jsonc", "game.hcl"} {
		t.Run(name, func(t *testing.T) {
			got, err := loader.ParseFile(filepath.Join("testdata", "scene", name))
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "want %s\ngot  %s", want, got)
		})
	}
}

func TestLoad_DirectoryMergesInLexicalOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	loader := NewLoader()
	want := config.Table(
		config.Field("window", config.Table(
			config.Field("title", config.String("Override")),
			config.Field("width", config.Int(640)),
			config.Field("height", config.Int(480)),
			config.Field("flags", strs("borderless")),
		)),
		config.Field("draw", config.Table(config.Field("color", ints(1, 2, 3, 4)))),
	)

	// --- Act ---
	got, err := loader.Load(context.Background(), filepath.Join("testdata", "overlay"))

	// --- Assert ---
	require.NoError(t, err)
	assert.True(t, want.Equal(got), "want %s\ngot  %s", want, got)
	assert.Equal(t, []string{"window", "draw"}, got.Keys())
}

func TestLoad_LaterFilesWin(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.toml")
	require.NoError(t, os.WriteFile(first, []byte(`{"window": {"title": "A", "width": 1}}`), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("[window]\ntitle = \"B\"\n"), 0o644))

	got, err := NewLoader().Load(context.Background(), first, second)
	require.NoError(t, err)

	title, err := config.Resolve(got, "window.title")
	require.NoError(t, err)
	s, _ := title.AsString()
	assert.Equal(t, "B", s)
	assert.True(t, config.Exists(got, "window.width"))
}

func TestLoad_DirectoryMatchesExtensionsIgnoringCase(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "GAME.TOML"), []byte("[window]\nwidth = 640\n"), 0o644))

	got, err := NewLoader().Load(context.Background(), dir)

	require.NoError(t, err)
	width, err := config.Resolve(got, "window.width")
	require.NoError(t, err)
	assert.True(t, config.Int(640).Equal(width))
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	ini := filepath.Join(dir, "game.ini")
	require.NoError(t, os.WriteFile(ini, []byte("[window]"), 0o644))
	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.Mkdir(empty, 0o755))
	missing := filepath.Join(dir, "missing.toml")

	loader := NewLoader()

	_, err := loader.Load(context.Background(), missing)
	var missingErr *MissingFileError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, "expecting config at "+missing+", but the file doesn't exist", err.Error())

	_, err = loader.Load(context.Background(), ini)
	var unsupported *UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, ini, unsupported.File)

	_, err = loader.Load(context.Background(), empty)
	assert.ErrorContains(t, err, "no config files found")

	_, err = loader.Load(context.Background())
	assert.Error(t, err)
}

func TestLoad_CanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader().Load(ctx, filepath.Join("testdata", "scene", "game.toml"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoader_Register(t *testing.T) {
	t.Parallel()
	loader := NewLoader()
	loader.Register(".CONF", DecodeTOML)

	assert.Contains(t, loader.Extensions(), ".conf")
	got, err := loader.Parse("app.conf", []byte("a = 1"))
	require.NoError(t, err)
	assert.True(t, config.Table(config.Field("a", config.Int(1))).Equal(got))
}
