package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/bitconf/internal/backend"
	"github.com/vk/bitconf/internal/config"
	"github.com/vk/bitconf/internal/ctxlog"
	"github.com/vk/bitconf/internal/flags"
	"github.com/vk/bitconf/internal/resource"
)

// Scene is everything one pass assembled from the configuration.
type Scene struct {
	System   resource.SystemParams
	Window   resource.WindowParams
	Renderer resource.RendererParams
	Color    resource.Color
	HasColor bool
}

// Run loads the configuration and creates its resources once, or, in watch
// mode, again after every change until ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "paths", a.config.Paths, "watch", a.config.Watch)

	if a.config.Watch {
		return a.watch(ctx)
	}

	_, err := a.RunOnce(ctx)
	a.logger.Debug("App.Run method finished.")
	return err
}

// RunOnce performs a single pass: load every config path, then initialize
// the runtime, create the window and the renderer and set the draw color,
// assembling each descriptor right before it is used. Everything created is
// released before RunOnce returns, whether the pass succeeded or not.
//
// Logs go to the logger in ctx, or to the app's own logger when ctx carries
// none.
func (a *App) RunOnce(ctx context.Context) (scene Scene, err error) {
	if _, ok := ctxlog.Lookup(ctx); !ok {
		ctx = ctxlog.WithLogger(ctx, a.logger)
	}
	logger := ctxlog.FromContext(ctx)
	defer func() { a.setStatus(err) }()

	root, err := a.loader.Load(ctx, a.config.Paths...)
	if err != nil {
		return Scene{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debug("Configuration loaded.", "keys", root.Keys())

	p := &pass{app: a, root: root, runtime: a.runtime}
	defer func() {
		err = errors.Join(err, p.release())
	}()

	if err := p.run(ctx, &scene); err != nil {
		return Scene{}, err
	}
	logger.Info("Resources created.",
		"title", scene.Window.Title,
		"width", scene.Window.Width,
		"height", scene.Window.Height,
		"draw_color", scene.HasColor,
	)
	return scene, nil
}

// pass tracks what one RunOnce created so it can be released in reverse.
type pass struct {
	app     *App
	root    config.Node
	runtime backend.Runtime
	inited  bool
	handles []backend.Handle
}

func (p *pass) run(ctx context.Context, s *Scene) error {
	logger := ctxlog.FromContext(ctx)
	sec := p.app.config.Sections
	limit := p.app.config.MaxInvalidNames

	sysSink := flags.NewBoundedSink(limit)
	sys, err := resource.LoadSystem(p.root, sec.System, sysSink)
	p.app.reportInvalid(ctx, resource.SubsystemFlags.Domain(), sysSink)
	if err != nil {
		return fmt.Errorf("failed to load system settings: %w", err)
	}
	if err := p.runtime.Init(sys.Subsystems); err != nil {
		return fmt.Errorf("unable to initialize runtime: %w", err)
	}
	p.inited = true
	s.System = sys
	logger.Debug("Runtime initialized.", "subsystems", uint32(sys.Subsystems))

	winSink := flags.NewBoundedSink(limit)
	win, err := resource.LoadWindow(p.root, sec.Window, winSink)
	p.app.reportInvalid(ctx, resource.WindowFlags.Domain(), winSink)
	if err != nil {
		return fmt.Errorf("failed to load window settings: %w", err)
	}
	winHandle, err := p.runtime.CreateWindow(win)
	if err != nil {
		return fmt.Errorf("unable to create a window: %w", err)
	}
	p.handles = append(p.handles, winHandle)
	s.Window = win
	logger.Debug("Window created.", "handle", winHandle)

	renSink := flags.NewBoundedSink(limit)
	ren, err := resource.LoadRenderer(p.root, sec.Renderer, renSink)
	p.app.reportInvalid(ctx, resource.RendererFlags.Domain(), renSink)
	if err != nil {
		return fmt.Errorf("failed to load renderer settings: %w", err)
	}
	renHandle, err := p.runtime.CreateRenderer(winHandle, ren)
	if err != nil {
		return fmt.Errorf("unable to create a renderer: %w", err)
	}
	p.handles = append(p.handles, renHandle)
	s.Renderer = ren
	logger.Debug("Renderer created.", "handle", renHandle)

	colorPath, err := config.ParsePath(sec.DrawColor)
	if err != nil {
		return fmt.Errorf("failed to load draw color: %w", err)
	}
	if _, err := config.ResolvePath(p.root, colorPath); config.IsMissing(err) {
		logger.Debug("No draw color configured.", "path", sec.DrawColor)
		return nil
	}
	color, err := resource.LoadColor(p.root, sec.DrawColor)
	if err != nil {
		return fmt.Errorf("failed to load draw color: %w", err)
	}
	if err := p.runtime.SetDrawColor(renHandle, color); err != nil {
		return fmt.Errorf("unable to set draw color: %w", err)
	}
	s.Color, s.HasColor = color, true
	return nil
}

func (p *pass) release() error {
	var errs []error
	for i := len(p.handles) - 1; i >= 0; i-- {
		if err := p.runtime.Destroy(p.handles[i]); err != nil {
			errs = append(errs, fmt.Errorf("failed to release handle %d: %w", p.handles[i], err))
		}
	}
	p.handles = nil
	if p.inited {
		if err := p.runtime.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to shut down runtime: %w", err))
		}
		p.inited = false
	}
	return errors.Join(errs...)
}

// reportInvalid logs the unknown names a sink collected, one warning each.
func (a *App) reportInvalid(ctx context.Context, domain string, sink *flags.BoundedSink) {
	logger := ctxlog.FromContext(ctx)
	flags.LogSink{Logger: logger, Domain: domain}.Collect(sink.Names()...)
	if n := sink.Dropped(); n > 0 {
		logger.Warn("Too many unknown flag names, the rest were not reported.", "domain", domain, "dropped", n)
	}
}
