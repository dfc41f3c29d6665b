package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"demo-viewer/internal/logger"
	"demo-viewer/internal/scene"
)

// PrefsPath is the viewer preferences file, relative to the process working directory.
const PrefsPath = "config/viewer.yaml"

// Window holds the desktop window settings.
type Window struct {
	Width     int32  `yaml:"width"`
	Height    int32  `yaml:"height"`
	Title     string `yaml:"title"`
	TargetFPS int32  `yaml:"target_fps"`
	Resizable bool   `yaml:"resizable"`
}

// Prefs are the viewer's persisted preferences. Scene contents are fixed in code;
// only the window, overlays, logging and the initial focus are configurable.
type Prefs struct {
	Window       Window `yaml:"window"`
	Focus        string `yaml:"focus"`
	LogPath      string `yaml:"log_path"`
	ShowFPS      bool   `yaml:"show_fps"`
	ShowMemAlloc bool   `yaml:"show_memalloc"`
}

// Default returns the built-in preferences (800x600 resizable window, cube in focus).
func Default() Prefs {
	return Prefs{
		Window: Window{
			Width:     800,
			Height:    600,
			Title:     "Interactive 3D Demo",
			TargetFPS: 60,
			Resizable: true,
		},
		Focus:   scene.CubeFocus.String(),
		LogPath: logger.DefaultPath,
	}
}

// Load reads preferences from path on top of Default, so missing keys keep their
// defaults. A missing file is not an error; an unreadable or invalid one returns
// Default() together with the error.
func Load(path string) (Prefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return Default(), fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Default(), fmt.Errorf("config: %s: %w", path, err)
	}
	return p, nil
}

// Save writes preferences to path, creating the directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the window size and the focus name.
func (p Prefs) Validate() error {
	if p.Window.Width <= 0 || p.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", p.Window.Width, p.Window.Height)
	}
	if _, err := scene.ParseFocus(p.Focus); err != nil {
		return err
	}
	return nil
}

// InitialFocus is the parsed Focus; invalid values fall back to the cube.
func (p Prefs) InitialFocus() scene.Focus {
	f, err := scene.ParseFocus(p.Focus)
	if err != nil {
		return scene.CubeFocus
	}
	return f
}
