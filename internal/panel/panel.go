// Package panel drives the interactive 3D demo panel: it builds a scene with a
// cube and a sphere inside a host element, spins whichever one is in focus every
// frame, keeps the camera in step with the container size, and tears all of it
// down when the panel is unmounted.
//
// Changing the focus while mounted is a full reconfigure: the current activation
// is torn down and a new one built, so the camera returns to its default pose.
package panel

import (
	"demo-viewer/internal/host"
	"demo-viewer/internal/logger"
	"demo-viewer/internal/orbit"
	"demo-viewer/internal/scene"
)

// Panel is the lifecycle coordinator. It is Active between Mount and Unmount;
// each Active period is one activation. All methods must be called from the
// host's event thread, the same one that runs frame callbacks.
type Panel struct {
	el   host.Element
	host host.Host
	log  *logger.Logger
	opts orbit.Options

	focus       scene.Focus
	mounted     bool
	act         *activation
	activations int
}

// New returns an inactive panel drawing into el. log may be nil.
func New(el host.Element, h host.Host, log *logger.Logger) *Panel {
	return &Panel{el: el, host: h, log: log, opts: orbit.DefaultOptions()}
}

// SetControlOptions changes the orbit configuration used by later activations.
func (p *Panel) SetControlOptions(opts orbit.Options) {
	p.opts = opts
}

// Mount activates the panel with the given focus. Mounting an already mounted
// panel with a different focus reconfigures it; with the same focus it does nothing.
func (p *Panel) Mount(f scene.Focus) {
	if p.mounted {
		p.SetFocus(f)
		return
	}
	p.mounted = true
	p.focus = f
	p.activate()
}

// Unmount deactivates the panel. Calling it on an inactive panel is a no-op.
func (p *Panel) Unmount() {
	if !p.mounted {
		return
	}
	p.deactivate()
	p.mounted = false
}

// SetFocus changes the focus target. While mounted, a change tears down the
// current activation and builds a fresh one; an unchanged value does nothing.
func (p *Panel) SetFocus(f scene.Focus) {
	if f == p.focus {
		return
	}
	p.focus = f
	if !p.mounted {
		return
	}
	p.deactivate()
	p.activate()
}

// Toggle flips the focus between cube and sphere.
func (p *Panel) Toggle() {
	p.SetFocus(p.focus.Toggle())
}

func (p *Panel) activate() {
	p.act = activate(p.el, p.host, p.log, p.focus, p.opts)
	p.activations++
}

func (p *Panel) deactivate() {
	if p.act == nil {
		return
	}
	p.act.close()
	p.act = nil
}

// Focus returns the current focus target.
func (p *Panel) Focus() scene.Focus {
	return p.focus
}

// Mounted reports whether the panel is Active.
func (p *Panel) Mounted() bool {
	return p.mounted
}

// Scene returns the live scene, or nil when inactive or not yet built.
func (p *Panel) Scene() *scene.Scene {
	if p.act == nil {
		return nil
	}
	return p.act.scene
}

// Surface returns the live drawing surface, or nil when there is none.
func (p *Panel) Surface() host.Surface {
	if p.act == nil {
		return nil
	}
	return p.act.surface
}

// Frames is the number of frames drawn by the current activation.
func (p *Panel) Frames() uint64 {
	if p.act == nil {
		return 0
	}
	return p.act.frames
}

// Activations counts activations since New, including the current one.
func (p *Panel) Activations() int {
	return p.activations
}

// Failed reports whether the current activation stopped because it could not draw.
func (p *Panel) Failed() bool {
	return p.act != nil && p.act.failed
}
