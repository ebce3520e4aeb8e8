package app

import (
	"errors"
	"fmt"
)

// Sections names where each descriptor lives in the configuration tree.
type Sections struct {
	System    string
	Window    string
	Renderer  string
	DrawColor string
}

// DefaultSections is the layout used when a section path is left empty.
var DefaultSections = Sections{
	System:    "system",
	Window:    "window",
	Renderer:  "renderer",
	DrawColor: "draw.color",
}

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Paths []string // config files or directories, merged in order

	LogFormat       string
	LogLevel        string
	Output          string // descriptor output: "text" or "json"
	MaxInvalidNames int    // unknown flag names kept per domain
	Watch           bool
	HealthcheckPort int // watch mode only; 0 is disabled
	Sections        Sections
}

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Paths) == 0 {
		return nil, errors.New("at least one config path is required")
	}
	for _, p := range cfg.Paths {
		if p == "" {
			return nil, errors.New("config paths cannot be empty")
		}
	}

	switch cfg.Output {
	case "":
		cfg.Output = "text"
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid output %q: must be 'text' or 'json'", cfg.Output)
	}

	if cfg.MaxInvalidNames < 0 {
		return nil, fmt.Errorf("max invalid names must not be negative, got %d", cfg.MaxInvalidNames)
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("invalid healthcheck port %d", cfg.HealthcheckPort)
	}

	if cfg.Sections.System == "" {
		cfg.Sections.System = DefaultSections.System
	}
	if cfg.Sections.Window == "" {
		cfg.Sections.Window = DefaultSections.Window
	}
	if cfg.Sections.Renderer == "" {
		cfg.Sections.Renderer = DefaultSections.Renderer
	}
	if cfg.Sections.DrawColor == "" {
		cfg.Sections.DrawColor = DefaultSections.DrawColor
	}

	return &cfg, nil
}
