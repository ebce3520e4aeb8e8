package resource

import "github.com/vk/bitconf/internal/flags"

// SubsystemMask selects the runtime subsystems to initialize.
type SubsystemMask uint32

// WindowMask holds window creation flags.
type WindowMask uint32

// RendererMask holds renderer creation flags.
type RendererMask uint32

const (
	SubsystemTimer          SubsystemMask = 0x00000001
	SubsystemAudio          SubsystemMask = 0x00000010
	SubsystemVideo          SubsystemMask = 0x00000020
	SubsystemJoystick       SubsystemMask = 0x00000200
	SubsystemHaptic         SubsystemMask = 0x00001000
	SubsystemGameController SubsystemMask = 0x00002000
	SubsystemEvents         SubsystemMask = 0x00004000
	SubsystemSensor         SubsystemMask = 0x00008000

	SubsystemEverything = SubsystemTimer | SubsystemAudio | SubsystemVideo | SubsystemEvents |
		SubsystemJoystick | SubsystemHaptic | SubsystemGameController | SubsystemSensor
)

const (
	WindowFullscreen        WindowMask = 0x00000001
	WindowOpenGL            WindowMask = 0x00000002
	WindowShown             WindowMask = 0x00000004
	WindowHidden            WindowMask = 0x00000008
	WindowBorderless        WindowMask = 0x00000010
	WindowResizable         WindowMask = 0x00000020
	WindowMinimized         WindowMask = 0x00000040
	WindowMaximized         WindowMask = 0x00000080
	WindowInputGrabbed      WindowMask = 0x00000100
	WindowFullscreenDesktop WindowMask = WindowFullscreen | 0x00001000
	WindowAllowHighDPI      WindowMask = 0x00002000
	WindowVulkan            WindowMask = 0x10000000
	WindowMetal             WindowMask = 0x20000000
)

const (
	RendererSoftware      RendererMask = 0x00000001
	RendererAccelerated   RendererMask = 0x00000002
	RendererPresentVSync  RendererMask = 0x00000004
	RendererTargetTexture RendererMask = 0x00000008
)

// PosUndefined lets the runtime pick a window coordinate.
const PosUndefined int32 = 0x1FFF0000

// Flag tables, one per domain. The domain name is what diagnostics report.
var (
	SubsystemFlags = flags.NewTable("subsystem", map[string]SubsystemMask{
		"timer":           SubsystemTimer,
		"audio":           SubsystemAudio,
		"video":           SubsystemVideo,
		"joystick":        SubsystemJoystick,
		"haptic":          SubsystemHaptic,
		"game-controller": SubsystemGameController,
		"events":          SubsystemEvents,
		"everything":      SubsystemEverything,
	})

	WindowFlags = flags.NewTable("window", map[string]WindowMask{
		"fullscreen":         WindowFullscreen,
		"fullscreen-desktop": WindowFullscreenDesktop,
		"opengl":             WindowOpenGL,
		"vulkan":             WindowVulkan,
		"metal":              WindowMetal,
		"hidden":             WindowHidden,
		"borderless":         WindowBorderless,
		"resizable":          WindowResizable,
		"minimized":          WindowMinimized,
		"maximized":          WindowMaximized,
		"input-grabbed":      WindowInputGrabbed,
		"allow-high-dpi":     WindowAllowHighDPI,
		"shown":              WindowShown,
	})

	RendererFlags = flags.NewTable("renderer", map[string]RendererMask{
		"software":       RendererSoftware,
		"accelerated":    RendererAccelerated,
		"present-vsync":  RendererPresentVSync,
		"target-texture": RendererTargetTexture,
	})
)
