package main

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"demo-viewer/internal/config"
	"demo-viewer/internal/debug"
	"demo-viewer/internal/graphics"
	"demo-viewer/internal/logger"
	"demo-viewer/internal/panel"
)

func main() {
	var startupErrs []error
	if err := config.LoadDotEnv(".env"); err != nil {
		startupErrs = append(startupErrs, err)
	}
	prefs, err := config.Load(config.PrefsPath)
	if err != nil {
		startupErrs = append(startupErrs, err)
	}
	if prefs, err = config.ApplyEnv(prefs); err != nil {
		startupErrs = append(startupErrs, err)
	}

	log := logger.New(prefs.LogPath)
	for _, err := range startupErrs {
		log.Log(err.Error())
	}

	win, err := graphics.Open(graphics.Config{
		Width:     prefs.Window.Width,
		Height:    prefs.Window.Height,
		Title:     prefs.Window.Title,
		TargetFPS: prefs.Window.TargetFPS,
		Resizable: prefs.Window.Resizable,
	}, log)
	if err != nil {
		log.Log(err.Error())
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer win.Close()

	p := panel.New(win, win, log)
	p.Mount(prefs.InitialFocus())

	overlay := debug.New()
	overlay.SetShowFPS(prefs.ShowFPS)
	overlay.SetShowMemAlloc(prefs.ShowMemAlloc)

	// SPACE toggles focus, TAB switches the panel away and back, F3 toggles FPS.
	update := func() {
		if rl.IsKeyPressed(rl.KeySpace) {
			p.Toggle()
		}
		if rl.IsKeyPressed(rl.KeyTab) {
			if p.Mounted() {
				p.Unmount()
			} else {
				p.Mount(p.Focus())
			}
		}
		if rl.IsKeyPressed(rl.KeyF3) {
			overlay.SetShowFPS(!overlay.ShowFPS)
		}
	}
	draw := func() {
		overlay.Draw(statusLines(p, win))
	}
	win.Run(update, draw)
	p.Unmount()
}

func statusLines(p *panel.Panel, win *graphics.Window) []string {
	if !p.Mounted() {
		return []string{"3D demo hidden (TAB to show)"}
	}
	lines := []string{
		fmt.Sprintf("Focus: %s (SPACE to toggle)", p.Focus()),
		fmt.Sprintf("Frames: %d  Activations: %d", p.Frames(), p.Activations()),
	}
	if p.Failed() {
		lines = append(lines, fmt.Sprintf("Error: %v", win.LastError()))
	}
	return lines
}
