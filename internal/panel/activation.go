package panel

import (
	"fmt"
	"time"

	"demo-viewer/internal/host"
	"demo-viewer/internal/logger"
	"demo-viewer/internal/orbit"
	"demo-viewer/internal/scene"
)

// activation owns everything one Active period of the panel creates: the scene,
// the surface, the orbit controls, the pending frame and the resize listener.
// Nothing here is shared with another activation.
type activation struct {
	el    host.Element
	host  host.Host
	log   *logger.Logger
	focus scene.Focus
	opts  orbit.Options

	scene    *scene.Scene
	surface  host.Surface
	controls *orbit.Controls

	frame        host.FrameHandle
	framePending bool
	resizeID     host.ListenerID
	resizeBound  bool

	// failed is set when the panel cannot draw; it renders nothing until rebuilt.
	failed bool
	closed bool
	frames uint64
}

func activate(el host.Element, h host.Host, log *logger.Logger, focus scene.Focus, opts orbit.Options) *activation {
	a := &activation{el: el, host: h, log: log, focus: focus, opts: opts}
	el.ClearChildren()
	a.build()
	if !a.failed {
		a.resizeID = h.AddResizeListener(a.onResize)
		a.resizeBound = true
	}
	return a
}

// built reports whether the scene exists (the container had a usable size).
func (a *activation) built() bool {
	return a.scene != nil
}

// build constructs scene, surface and controls and starts the frame loop. It
// does nothing while the container has no area; the next resize retries.
func (a *activation) build() {
	w, h := a.el.ContentSize()
	if w <= 0 || h <= 0 {
		a.log.Logf("panel: container is %dx%d, waiting for resize", w, h)
		return
	}
	surface, err := a.host.NewSurface(w, h)
	if err != nil {
		a.fail(fmt.Errorf("panel: acquire drawing surface: %w", err))
		return
	}
	a.surface = surface
	a.scene = scene.Build(float32(w) / float32(h))
	a.el.AppendChild(surface)
	a.controls = orbit.New(&a.scene.Camera, a.el, a.opts)
	a.schedule()
	a.log.Logf("panel: activated focus=%s size=%dx%d", a.focus, w, h)
}

func (a *activation) fail(err error) {
	a.failed = true
	a.log.Log(err.Error())
	a.host.ReportError(err)
}

func (a *activation) schedule() {
	a.frame = a.host.RequestFrame(a.renderFrame)
	a.framePending = true
}

// renderFrame is the per-refresh body: advance controls, spin the focused
// object, draw once, then request the next refresh. A failed draw stops the loop.
func (a *activation) renderFrame(time.Duration) {
	a.framePending = false
	if a.closed || !a.built() {
		return
	}
	a.controls.Update()
	a.scene.Spin(a.focus)
	if err := a.surface.Render(a.scene); err != nil {
		a.fail(fmt.Errorf("panel: render frame %d: %w", a.frames+1, err))
		return
	}
	a.frames++
	a.schedule()
}

// onResize keeps camera aspect and surface size in step with the container.
func (a *activation) onResize() {
	if a.closed || a.failed {
		return
	}
	if !a.built() {
		a.build()
		return
	}
	w, h := a.el.ContentSize()
	if w <= 0 || h <= 0 {
		return
	}
	a.scene.Camera.SetAspect(float32(w) / float32(h))
	a.surface.SetSize(w, h)
}

// close tears the activation down. It runs its body once; later calls are no-ops.
func (a *activation) close() {
	if a.closed {
		return
	}
	a.closed = true
	if a.framePending {
		a.host.CancelFrame(a.frame)
		a.framePending = false
	}
	if a.resizeBound {
		a.host.RemoveResizeListener(a.resizeID)
		a.resizeBound = false
	}
	if a.controls != nil {
		a.controls.Dispose()
	}
	if a.surface != nil {
		a.el.RemoveChild(a.surface)
		a.surface.Release()
	}
	a.log.Logf("panel: deactivated focus=%s after %d frames", a.focus, a.frames)
}
