package graphics

import (
	"fmt"
	"maps"
	"slices"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"demo-viewer/internal/host"
	"demo-viewer/internal/logger"
)

// Config describes the desktop window the viewer opens.
type Config struct {
	Width     int32
	Height    int32
	Title     string
	TargetFPS int32
	Resizable bool
}

// Window lifecycle calls, replaced in tests that run without a display.
var (
	initWindow = func(flags uint32, cfg Config) {
		rl.SetConfigFlags(flags)
		rl.InitWindow(cfg.Width, cfg.Height, cfg.Title)
	}
	windowReady = rl.IsWindowReady
	closeWindow = rl.CloseWindow
)

type pendingFrame struct {
	handle host.FrameHandle
	cb     host.FrameCallback
}

// Window is the raylib-backed host: it schedules frame callbacks once per loop
// iteration, turns window resizes into the resize signal and mouse input into
// element input events, and acts as the single container element.
// All methods must be called from the goroutine that runs Run.
type Window struct {
	log   *logger.Logger
	start time.Time

	nextFrame host.FrameHandle
	pending   []pendingFrame

	nextID   host.ListenerID
	resize   map[host.ListenerID]func()
	input    map[host.ListenerID]host.InputListener
	children []host.Surface

	lastErr error
}

func newWindow(log *logger.Logger) *Window {
	return &Window{
		log:    log,
		start:  time.Now(),
		resize: make(map[host.ListenerID]func()),
		input:  make(map[host.ListenerID]host.InputListener),
	}
}

// Open creates the window and its OpenGL context. ESC does not close the window;
// close it via the window button.
func Open(cfg Config, log *logger.Logger) (*Window, error) {
	var flags uint32 = rl.FlagMsaa4xHint
	if cfg.Resizable {
		flags |= rl.FlagWindowResizable
	}
	initWindow(flags, cfg)
	if !windowReady() {
		closeWindow()
		return nil, fmt.Errorf("graphics: open %dx%d window: %w", cfg.Width, cfg.Height, host.ErrNoContext)
	}
	rl.SetExitKey(rl.KeyNull)
	if cfg.TargetFPS > 0 {
		rl.SetTargetFPS(cfg.TargetFPS)
	}
	log.Logf("graphics: window %dx%d opened", cfg.Width, cfg.Height)
	return newWindow(log), nil
}

// Close releases the window. Surfaces must be released first.
func (w *Window) Close() {
	closeWindow()
}

// Run is the main loop. Each iteration it delivers resize and input events, calls
// update, runs the pending frame callbacks (which draw into their surfaces), then
// presents the surfaces and calls overlay for 2D drawing on top.
func (w *Window) Run(update, overlay func()) {
	for !rl.WindowShouldClose() {
		if rl.IsWindowResized() {
			w.fireResize()
		}
		w.pollInput()
		update()
		w.runFrames()

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		w.present()
		overlay()
		rl.EndDrawing()
	}
}

func (w *Window) RequestFrame(cb host.FrameCallback) host.FrameHandle {
	w.nextFrame++
	w.pending = append(w.pending, pendingFrame{handle: w.nextFrame, cb: cb})
	return w.nextFrame
}

func (w *Window) CancelFrame(h host.FrameHandle) {
	for i, p := range w.pending {
		if p.handle == h {
			w.pending = slices.Delete(w.pending, i, i+1)
			return
		}
	}
}

// runFrames runs the callbacks pending at the start of the call. Callbacks
// requested while running wait for the next iteration.
func (w *Window) runFrames() int {
	batch := w.pending
	w.pending = nil
	now := time.Since(w.start)
	for _, p := range batch {
		p.cb(now)
	}
	return len(batch)
}

func (w *Window) AddResizeListener(fn func()) host.ListenerID {
	w.nextID++
	w.resize[w.nextID] = fn
	return w.nextID
}

func (w *Window) RemoveResizeListener(id host.ListenerID) {
	delete(w.resize, id)
}

func (w *Window) fireResize() {
	for _, id := range slices.Sorted(maps.Keys(w.resize)) {
		// A listener may remove another one.
		if fn, ok := w.resize[id]; ok {
			fn()
		}
	}
}

// ReportError logs err and keeps it for LastError.
func (w *Window) ReportError(err error) {
	w.lastErr = err
	w.log.Logf("error: %v", err)
}

// LastError is the most recent error passed to ReportError.
func (w *Window) LastError() error {
	return w.lastErr
}
