package resource

import (
	"github.com/vk/bitconf/internal/config"
	"github.com/vk/bitconf/internal/flags"
	"github.com/vk/bitconf/internal/load"
	"github.com/vk/bitconf/internal/pipeline"
)

// SystemParams describes how to initialize the runtime.
type SystemParams struct {
	Subsystems SubsystemMask `json:"subsystems"`
}

// WindowParams describes a window to create.
type WindowParams struct {
	Title  string     `json:"title"`
	Width  uint32     `json:"width"`
	Height uint32     `json:"height"`
	X      int32      `json:"x"`
	Y      int32      `json:"y"`
	Flags  WindowMask `json:"flags"`
}

// RendererParams describes a renderer to attach to a window. A DriverIndex
// of -1 picks the first driver supporting Flags.
type RendererParams struct {
	Flags       RendererMask `json:"flags"`
	DriverIndex int          `json:"driver_index"`
}

// Color is an RGBA draw color.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Point is a pair of integer coordinates.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// LoadSystem reads the table at path. Its subsystems list is required.
func LoadSystem(root config.Node, path string, sink flags.Sink) (SystemParams, error) {
	return pipeline.Assemble(root, func(c pipeline.Chain, s *SystemParams) pipeline.Chain {
		return c.
			AndThen(pipeline.Subtable(path)).
			AndThen(pipeline.Flags("subsystems", &s.Subsystems, SubsystemFlags, sink))
	})
}

// LoadWindow reads the table at path. Title, width and height are required;
// flags default to none and x, y to PosUndefined.
func LoadWindow(root config.Node, path string, sink flags.Sink) (WindowParams, error) {
	return pipeline.Assemble(root, func(c pipeline.Chain, w *WindowParams) pipeline.Chain {
		return c.
			AndThen(pipeline.Subtable(path)).
			AndThen(pipeline.Load("title", &w.Title)).
			AndThen(pipeline.Load("width", &w.Width)).
			AndThen(pipeline.Load("height", &w.Height)).
			AndThen(pipeline.OptionalFlags("flags", &w.Flags, WindowFlags, sink)).
			Map(pipeline.LoadOr("x", &w.X, PosUndefined)).
			Map(pipeline.LoadOr("y", &w.Y, PosUndefined))
	})
}

// LoadRenderer reads the table at path. Flags are required; driver_index
// defaults to -1.
func LoadRenderer(root config.Node, path string, sink flags.Sink) (RendererParams, error) {
	return pipeline.Assemble(root, func(c pipeline.Chain, r *RendererParams) pipeline.Chain {
		return c.
			AndThen(pipeline.Subtable(path)).
			AndThen(pipeline.Flags("flags", &r.Flags, RendererFlags, sink)).
			Map(pipeline.LoadOr("driver_index", &r.DriverIndex, -1))
	})
}

// LoadColor reads an array of exactly four bytes: red, green, blue, alpha.
func LoadColor(root config.Node, path string) (Color, error) {
	var rgba [4]uint8
	if err := load.Exactly(root, path, rgba[:]); err != nil {
		return Color{}, err
	}
	return Color{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}, nil
}

// LoadPoint reads the table at path, which must hold integers x and y.
func LoadPoint(root config.Node, path string) (Point, error) {
	return pipeline.Assemble(root, func(c pipeline.Chain, p *Point) pipeline.Chain {
		return c.
			AndThen(pipeline.Subtable(path)).
			AndThen(pipeline.Load("x", &p.X)).
			AndThen(pipeline.Load("y", &p.Y))
	})
}

// SystemInto is LoadSystem as a pipeline step.
func SystemInto(path string, dst *SystemParams, sink flags.Sink) pipeline.Step {
	return into(dst, func(tbl config.Node) (SystemParams, error) { return LoadSystem(tbl, path, sink) })
}

// WindowInto is LoadWindow as a pipeline step.
func WindowInto(path string, dst *WindowParams, sink flags.Sink) pipeline.Step {
	return into(dst, func(tbl config.Node) (WindowParams, error) { return LoadWindow(tbl, path, sink) })
}

// RendererInto is LoadRenderer as a pipeline step.
func RendererInto(path string, dst *RendererParams, sink flags.Sink) pipeline.Step {
	return into(dst, func(tbl config.Node) (RendererParams, error) { return LoadRenderer(tbl, path, sink) })
}

// ColorInto is LoadColor as a pipeline step.
func ColorInto(path string, dst *Color) pipeline.Step {
	return into(dst, func(tbl config.Node) (Color, error) { return LoadColor(tbl, path) })
}

// PointInto is LoadPoint as a pipeline step.
func PointInto(path string, dst *Point) pipeline.Step {
	return into(dst, func(tbl config.Node) (Point, error) { return LoadPoint(tbl, path) })
}

// into leaves the chain's table untouched, so sibling sections can follow.
func into[D any](dst *D, assemble func(config.Node) (D, error)) pipeline.Step {
	return func(tbl config.Node) (config.Node, error) {
		d, err := assemble(tbl)
		if err != nil {
			return config.Absent, err
		}
		*dst = d
		return tbl, nil
	}
}
