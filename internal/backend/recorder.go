package backend

import (
	"fmt"
	"io"
	"sort"

	"github.com/goccy/go-json"
	"github.com/vk/bitconf/internal/resource"
)

// Operation names, as reported in records and errors.
const (
	OpInit           = "init"
	OpCreateWindow   = "create_window"
	OpCreateRenderer = "create_renderer"
	OpSetDrawColor   = "set_draw_color"
	OpDestroy        = "destroy"
	OpClose          = "close"
)

// Format selects how a Recorder writes its records.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Record is one line of Recorder output.
type Record struct {
	Op       string                   `json:"op"`
	Handle   Handle                   `json:"handle,omitempty"`
	Parent   Handle                   `json:"parent,omitempty"`
	System   *resource.SystemParams   `json:"system,omitempty"`
	Window   *resource.WindowParams   `json:"window,omitempty"`
	Renderer *resource.RendererParams `json:"renderer,omitempty"`
	Color    *resource.Color          `json:"color,omitempty"`
}

// Recorder is a Runtime that creates nothing but bookkeeping. It is not safe
// for concurrent use.
type Recorder struct {
	out      io.Writer
	format   Format
	next     Handle
	live     map[Handle]string
	ops      []string
	failures map[string]error
	inited   bool
}

var _ Runtime = (*Recorder)(nil)

// NewRecorder returns a Recorder writing to out. A nil out discards output.
func NewRecorder(out io.Writer, format Format) *Recorder {
	if out == nil {
		out = io.Discard
	}
	return &Recorder{
		out:      out,
		format:   format,
		live:     make(map[Handle]string),
		failures: make(map[string]error),
	}
}

// FailOn makes every later call of op fail with err. A nil err clears it.
func (r *Recorder) FailOn(op string, err error) {
	if err == nil {
		delete(r.failures, op)
		return
	}
	r.failures[op] = err
}

// Ops lists the operations called so far, in order.
func (r *Recorder) Ops() []string { return r.ops }

// Live lists the handles not yet destroyed, in creation order.
func (r *Recorder) Live() []Handle {
	handles := make([]Handle, 0, len(r.live))
	for h := range r.live {
		handles = append(handles, h)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
	return handles
}

// Init implements Runtime.
func (r *Recorder) Init(subsystems resource.SubsystemMask) error {
	if err := r.call(OpInit); err != nil {
		return err
	}
	r.inited = true
	return r.write(Record{Op: OpInit, System: &resource.SystemParams{Subsystems: subsystems}})
}

// CreateWindow implements Runtime.
func (r *Recorder) CreateWindow(params resource.WindowParams) (Handle, error) {
	if err := r.call(OpCreateWindow); err != nil {
		return 0, err
	}
	if !r.inited {
		return 0, &ExternalResourceError{Op: OpCreateWindow, Message: "runtime is not initialized"}
	}
	h := r.add("window")
	return h, r.write(Record{Op: OpCreateWindow, Handle: h, Window: &params})
}

// CreateRenderer implements Runtime.
func (r *Recorder) CreateRenderer(window Handle, params resource.RendererParams) (Handle, error) {
	if err := r.call(OpCreateRenderer); err != nil {
		return 0, err
	}
	if err := r.expect(OpCreateRenderer, window, "window"); err != nil {
		return 0, err
	}
	h := r.add("renderer")
	return h, r.write(Record{Op: OpCreateRenderer, Handle: h, Parent: window, Renderer: &params})
}

// SetDrawColor implements Runtime.
func (r *Recorder) SetDrawColor(renderer Handle, color resource.Color) error {
	if err := r.call(OpSetDrawColor); err != nil {
		return err
	}
	if err := r.expect(OpSetDrawColor, renderer, "renderer"); err != nil {
		return err
	}
	return r.write(Record{Op: OpSetDrawColor, Handle: renderer, Color: &color})
}

// Destroy implements Runtime.
func (r *Recorder) Destroy(h Handle) error {
	if err := r.call(OpDestroy); err != nil {
		return err
	}
	if _, ok := r.live[h]; !ok {
		return &ExternalResourceError{Op: OpDestroy, Message: fmt.Sprintf("invalid handle %d", h)}
	}
	delete(r.live, h)
	return nil
}

// Close implements Runtime. Whatever is still alive is destroyed.
func (r *Recorder) Close() error {
	if err := r.call(OpClose); err != nil {
		return err
	}
	clear(r.live)
	r.inited = false
	return nil
}

func (r *Recorder) call(op string) error {
	r.ops = append(r.ops, op)
	return Wrap(op, r.failures[op])
}

func (r *Recorder) add(kind string) Handle {
	r.next++
	r.live[r.next] = kind
	return r.next
}

func (r *Recorder) expect(op string, h Handle, kind string) error {
	if r.live[h] != kind {
		return &ExternalResourceError{Op: op, Message: fmt.Sprintf("handle %d is not a live %s", h, kind)}
	}
	return nil
}

func (r *Recorder) write(rec Record) error {
	if r.format == FormatJSON {
		line, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to encode %s record: %w", rec.Op, err)
		}
		_, err = fmt.Fprintf(r.out, "%s\n", line)
		return err
	}
	_, err := fmt.Fprintln(r.out, formatText(rec))
	return err
}

func formatText(rec Record) string {
	switch {
	case rec.System != nil:
		return fmt.Sprintf("init subsystems=0x%08x", uint32(rec.System.Subsystems))
	case rec.Window != nil:
		w := rec.Window
		return fmt.Sprintf("window #%d title=%q size=%dx%d pos=%s,%s flags=0x%08x",
			rec.Handle, w.Title, w.Width, w.Height, coord(w.X), coord(w.Y), uint32(w.Flags))
	case rec.Renderer != nil:
		return fmt.Sprintf("renderer #%d window=#%d driver=%d flags=0x%08x",
			rec.Handle, rec.Parent, rec.Renderer.DriverIndex, uint32(rec.Renderer.Flags))
	case rec.Color != nil:
		c := rec.Color
		return fmt.Sprintf("draw-color #%d rgba=%d,%d,%d,%d", rec.Handle, c.R, c.G, c.B, c.A)
	}
	return rec.Op
}

func coord(v int32) string {
	if v == resource.PosUndefined {
		return "undefined"
	}
	return fmt.Sprint(v)
}
