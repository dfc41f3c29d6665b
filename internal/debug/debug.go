package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
)

// Overlay draws runtime information over the panel: FPS and heap in the top-right
// corner when enabled, and status lines (focus, frames, hints) in the top-left.
type Overlay struct {
	ShowFPS      bool
	ShowMemAlloc bool
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns an overlay with FPS and memory hidden.
func New() *Overlay {
	return &Overlay{}
}

// SetShowFPS sets whether the FPS counter is drawn (top-right, green).
func (d *Overlay) SetShowFPS(show bool) {
	d.ShowFPS = show
}

// SetShowMemAlloc sets whether the heap allocation counter is drawn (under FPS).
func (d *Overlay) SetShowMemAlloc(show bool) {
	d.ShowMemAlloc = show
}

// Draw renders the enabled counters and the given status lines. Call after the
// panel surface is presented. Counter text is only recomputed every updateInterval frames.
func (d *Overlay) Draw(status []string) {
	d.frameCount++
	update := d.frameCount%updateInterval == 0
	if d.ShowFPS && d.lastFpsText == "" {
		update = true
	}
	if d.ShowMemAlloc && d.lastMemText == "" {
		update = true
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(d.lastFpsText, screenW, y)
		y += lineHeight
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			mb := float64(d.lastMemStats.Alloc) / (1024 * 1024)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		drawRight(d.lastMemText, screenW, y)
	}

	for i, line := range status {
		rl.DrawText(line, padding, int32(padding+i*lineHeight), fontSize, rl.LightGray)
	}
}

func drawRight(text string, screenW, y int32) {
	if text == "" {
		return
	}
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, screenW-w-padding, y, fontSize, rl.Green)
}
