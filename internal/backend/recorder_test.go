package backend

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/bitconf/internal/resource"
)

var testWindow = resource.WindowParams{
	Title:  "Game",
	Width:  800,
	Height: 600,
	X:      resource.PosUndefined,
	Y:      20,
	Flags:  resource.WindowShown | resource.WindowResizable,
}

func TestRecorder_TextOutput(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	var out bytes.Buffer
	rec := NewRecorder(&out, FormatText)

	// --- Act ---
	require.NoError(t, rec.Init(resource.SubsystemVideo|resource.SubsystemAudio))
	win, err := rec.CreateWindow(testWindow)
	require.NoError(t, err)
	ren, err := rec.CreateRenderer(win, resource.RendererParams{Flags: resource.RendererAccelerated, DriverIndex: -1})
	require.NoError(t, err)
	require.NoError(t, rec.SetDrawColor(ren, resource.Color{R: 255, G: 128, A: 255}))

	// --- Assert ---
	assert.Equal(t, []string{
		"init subsystems=0x00000030",
		`window #1 title="Game" size=800x600 pos=undefined,20 flags=0x00000024`,
		"renderer #2 window=#1 driver=-1 flags=0x00000002",
		"draw-color #2 rgba=255,128,0,255",
	}, strings.Split(strings.TrimSpace(out.String()), "\n"))
	assert.Equal(t, []Handle{win, ren}, rec.Live())
	assert.Equal(t, []string{OpInit, OpCreateWindow, OpCreateRenderer, OpSetDrawColor}, rec.Ops())
}

func TestRecorder_JSONOutput(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	rec := NewRecorder(&out, FormatJSON)

	require.NoError(t, rec.Init(resource.SubsystemVideo))
	_, err := rec.CreateWindow(testWindow)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)

	var got Record
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &got))
	assert.Equal(t, OpCreateWindow, got.Op)
	assert.Equal(t, Handle(1), got.Handle)
	require.NotNil(t, got.Window)
	assert.Equal(t, testWindow, *got.Window)
	assert.Contains(t, lines[0], `"subsystems":32`)
}

func TestRecorder_InjectedFailure(t *testing.T) {
	t.Parallel()
	rec := NewRecorder(nil, FormatText)
	rec.FailOn(OpCreateWindow, errors.New("No available video device"))

	require.NoError(t, rec.Init(resource.SubsystemVideo))
	_, err := rec.CreateWindow(testWindow)

	var extErr *ExternalResourceError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, OpCreateWindow, extErr.Op)
	assert.Equal(t, "No available video device", extErr.Message)
	assert.Equal(t, "create_window: No available video device", err.Error())
	assert.Empty(t, rec.Live())

	rec.FailOn(OpCreateWindow, nil)
	_, err = rec.CreateWindow(testWindow)
	assert.NoError(t, err)
}

func TestRecorder_HandleChecks(t *testing.T) {
	t.Parallel()
	rec := NewRecorder(nil, FormatText)

	_, err := rec.CreateWindow(testWindow)
	assert.ErrorContains(t, err, "not initialized")

	require.NoError(t, rec.Init(resource.SubsystemVideo))
	win, err := rec.CreateWindow(testWindow)
	require.NoError(t, err)

	_, err = rec.CreateRenderer(win+7, resource.RendererParams{})
	assert.ErrorContains(t, err, "is not a live window")
	assert.ErrorContains(t, rec.SetDrawColor(win, resource.Color{}), "is not a live renderer")

	require.NoError(t, rec.Destroy(win))
	assert.Error(t, rec.Destroy(win))
	assert.Empty(t, rec.Live())
}

func TestRecorder_CloseReleasesEverything(t *testing.T) {
	t.Parallel()
	rec := NewRecorder(nil, FormatText)
	require.NoError(t, rec.Init(resource.SubsystemVideo))
	_, err := rec.CreateWindow(testWindow)
	require.NoError(t, err)

	require.NoError(t, rec.Close())
	assert.Empty(t, rec.Live())
}

func TestWrap(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Wrap(OpInit, nil))

	cause := errors.New("boom")
	err := Wrap(OpInit, cause)
	assert.ErrorIs(t, err, cause)
}
