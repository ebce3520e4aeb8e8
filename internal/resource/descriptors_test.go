package resource

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/bitconf/internal/config"
	"github.com/vk/bitconf/internal/flags"
	"github.com/vk/bitconf/internal/pipeline"
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

func sketchConfig() config.Node {
	return config.Table(
		config.Field("system", config.Table(
			config.Field("subsystems", strs("video", "audio", "bogus")),
		)),
		config.Field("window", config.Table(
			config.Field("title", config.String("Game")),
			config.Field("width", config.Int(800)),
			config.Field("height", config.Int(600)),
			config.Field("flags", strs("Resizable", "shown", "wobbly")),
			config.Field("x", config.Int(10)),
			config.Field("y", config.Int(20)),
		)),
		config.Field("renderer", config.Table(
			config.Field("flags", strs("accelerated", "present-vsync")),
			config.Field("driver_index", config.Int(1)),
		)),
		config.Field("draw", config.Table(
			config.Field("color", ints(255, 128, 0, 255)),
		)),
	)
}

func TestLoadSystem(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	sink := flags.NewBoundedSink(8)

	// --- Act ---
	got, err := LoadSystem(sketchConfig(), "system", sink)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, SubsystemVideo|SubsystemAudio, got.Subsystems)
	assert.Equal(t, []string{"bogus"}, sink.Names())
}

func TestLoadSystem_SubsystemsRequired(t *testing.T) {
	t.Parallel()
	root := config.Table(config.Field("system", config.Table()))

	_, err := LoadSystem(root, "system", flags.Discard)
	var missing *config.MissingPathError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "system.subsystems", missing.Path)
}

func TestLoadSystem_Everything(t *testing.T) {
	t.Parallel()
	root := config.Table(config.Field("system", config.Table(config.Field("subsystems", strs("EVERYTHING")))))

	got, err := LoadSystem(root, "system", flags.Discard)
	require.NoError(t, err)
	assert.Equal(t, SubsystemEverything, got.Subsystems)
}

func TestLoadWindow(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	sink := flags.NewBoundedSink(8)
	want := WindowParams{
		Title:  "Game",
		Width:  800,
		Height: 600,
		X:      10,
		Y:      20,
		Flags:  WindowResizable | WindowShown,
	}

	// --- Act ---
	got, err := LoadWindow(sketchConfig(), "window", sink)

	// --- Assert ---
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("window mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"wobbly"}, sink.Names())
}

func TestLoadWindow_Defaults(t *testing.T) {
	t.Parallel()
	root := config.Table(config.Field("window", config.Table(
		config.Field("title", config.String("Game")),
		config.Field("width", config.Int(800)),
		config.Field("height", config.Int(600)),
	)))

	got, err := LoadWindow(root, "window", flags.Discard)
	require.NoError(t, err)

	want := WindowParams{Title: "Game", Width: 800, Height: 600, X: PosUndefined, Y: PosUndefined}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("window mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadWindow_Errors(t *testing.T) {
	t.Parallel()

	window := func(entries ...config.Entry) config.Node {
		base := []config.Entry{
			config.Field("title", config.String("Game")),
			config.Field("width", config.Int(800)),
			config.Field("height", config.Int(600)),
		}
		return config.Merge(config.Table(config.Field("window", config.Table(base...))),
			config.Table(config.Field("window", config.Table(entries...))))
	}

	testCases := []struct {
		name    string
		root    config.Node
		wantMsg string
	}{
		{
			name:    "missing section",
			root:    config.Table(),
			wantMsg: "expected window to exist, but it doesn't",
		},
		{
			name:    "section is not a table",
			root:    config.Table(config.Field("window", config.String("big"))),
			wantMsg: "expected window to be a table, but it is a string",
		},
		{
			name: "missing title",
			root: config.Table(config.Field("window", config.Table(
				config.Field("width", config.Int(800)),
				config.Field("height", config.Int(600)),
			))),
			wantMsg: "expected window.title to exist, but it doesn't",
		},
		{
			name:    "width has the wrong kind",
			root:    window(config.Field("width", config.String("wide"))),
			wantMsg: "expected window.width to be an integer, but it is a string",
		},
		{
			name:    "negative height",
			root:    window(config.Field("height", config.Int(-1))),
			wantMsg: "window.height: value -1 does not fit in uint32",
		},
		{
			name:    "flags not an array",
			root:    window(config.Field("flags", config.String("shown"))),
			wantMsg: "expected window.flags to be an array, but it is a string",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := LoadWindow(tc.root, "window", flags.Discard)
			require.Error(t, err)
			assert.Equal(t, tc.wantMsg, err.Error())
			assert.Equal(t, WindowParams{}, got)
		})
	}
}

func TestLoadWindow_BadCoordinateFallsBack(t *testing.T) {
	t.Parallel()
	root := config.Table(config.Field("window", config.Table(
		config.Field("title", config.String("Game")),
		config.Field("width", config.Int(800)),
		config.Field("height", config.Int(600)),
		config.Field("x", config.String("left")),
		config.Field("y", config.Int(5)),
	)))

	got, err := LoadWindow(root, "window", flags.Discard)
	require.NoError(t, err)
	assert.Equal(t, PosUndefined, got.X)
	assert.Equal(t, int32(5), got.Y)
}

func TestLoadRenderer(t *testing.T) {
	t.Parallel()

	got, err := LoadRenderer(sketchConfig(), "renderer", flags.Discard)
	require.NoError(t, err)
	assert.Equal(t, RendererParams{Flags: RendererAccelerated | RendererPresentVSync, DriverIndex: 1}, got)

	root := config.Table(config.Field("renderer", config.Table(config.Field("flags", strs("software")))))
	got, err = LoadRenderer(root, "renderer", flags.Discard)
	require.NoError(t, err)
	assert.Equal(t, RendererParams{Flags: RendererSoftware, DriverIndex: -1}, got)

	_, err = LoadRenderer(config.Table(config.Field("renderer", config.Table())), "renderer", flags.Discard)
	assert.True(t, config.IsMissing(err))
}

func TestLoadColor(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		color   config.Node
		want    Color
		wantErr any
	}{
		{name: "rgba", color: ints(255, 128, 0, 255), want: Color{R: 255, G: 128, B: 0, A: 255}},
		{name: "too few", color: ints(1, 2, 3), wantErr: &config.LengthError{}},
		{name: "too many", color: ints(1, 2, 3, 4, 5), wantErr: &config.CapacityExceededError{}},
		{name: "out of range", color: ints(1, 2, 3, 256), wantErr: &config.RangeError{}},
		{name: "mixed", color: config.Array(config.Int(1), config.String("2")), wantErr: &config.HeterogeneousArrayError{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			root := config.Table(config.Field("draw", config.Table(config.Field("color", tc.color))))

			got, err := LoadColor(root, "draw.color")
			switch want := tc.wantErr.(type) {
			case nil:
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
			case *config.LengthError:
				require.ErrorAs(t, err, &want)
				assert.Equal(t, "draw.color", want.Path)
			case *config.CapacityExceededError:
				require.ErrorAs(t, err, &want)
				assert.Equal(t, 4, want.Capacity)
			case *config.RangeError:
				require.ErrorAs(t, err, &want)
				assert.Equal(t, "draw.color[3]", want.Path)
			case *config.HeterogeneousArrayError:
				require.ErrorAs(t, err, &want)
				assert.Equal(t, 1, want.Index)
			}
		})
	}
}

func TestLoadPoint(t *testing.T) {
	t.Parallel()
	root := config.Table(
		config.Field("player-spawn", config.Table(config.Field("x", config.Int(3)), config.Field("y", config.Int(-4)))),
		config.Field("enemy-spawn", config.Table(config.Field("x", config.Int(7)))),
	)

	got, err := LoadPoint(root, "player-spawn")
	require.NoError(t, err)
	assert.Equal(t, Point{X: 3, Y: -4}, got)

	_, err = LoadPoint(root, "enemy-spawn")
	assert.EqualError(t, err, "expected enemy-spawn.y to exist, but it doesn't")
}

func TestInto_ChainsSiblingSections(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	type scene struct {
		System   SystemParams
		Window   WindowParams
		Renderer RendererParams
		Color    Color
	}
	sink := flags.NewBoundedSink(8)

	// --- Act ---
	got, err := pipeline.Assemble(sketchConfig(), func(c pipeline.Chain, s *scene) pipeline.Chain {
		return c.
			AndThen(SystemInto("system", &s.System, sink)).
			AndThen(WindowInto("window", &s.Window, sink)).
			AndThen(RendererInto("renderer", &s.Renderer, sink)).
			AndThen(ColorInto("draw.color", &s.Color))
	})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, SubsystemVideo|SubsystemAudio, got.System.Subsystems)
	assert.Equal(t, "Game", got.Window.Title)
	assert.Equal(t, 1, got.Renderer.DriverIndex)
	assert.Equal(t, Color{R: 255, G: 128, A: 255}, got.Color)
	assert.Equal(t, []string{"bogus", "wobbly"}, sink.Names())
}

func TestFlagTables(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 8, SubsystemFlags.Len())
	assert.Equal(t, 13, WindowFlags.Len())
	assert.Equal(t, 4, RendererFlags.Len())
	assert.Equal(t, WindowMask(0x1001), WindowFullscreenDesktop)
	assert.Equal(t, SubsystemMask(0xF231), SubsystemEverything)
}
