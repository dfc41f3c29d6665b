// Package orbit binds a scene camera to pointer input on a host element:
// drag orbits around the target, the wheel dollies in and out, and motion
// can be damped so it eases out instead of stopping abruptly.
package orbit

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"demo-viewer/internal/host"
	"demo-viewer/internal/scene"
)

// polarEpsilon keeps the polar angle off the poles so the up vector stays valid.
const polarEpsilon = 1e-6

// Options configures Controls. DefaultOptions matches the demo panel.
type Options struct {
	EnableDamping bool
	DampingFactor float32
	EnablePan     bool
	MinDistance   float32
	MaxDistance   float32
	RotateSpeed   float32
	ZoomSpeed     float32
}

// DefaultOptions: damped, no panning, orbit distance clamped to [2, 10].
func DefaultOptions() Options {
	return Options{
		EnableDamping: true,
		DampingFactor: 0.05,
		EnablePan:     false,
		MinDistance:   2,
		MaxDistance:   10,
		RotateSpeed:   1,
		ZoomSpeed:     1,
	}
}

type dragState uint8

const (
	idle dragState = iota
	rotating
	panning
)

// Controls moves a camera from element input. Update must be called once per
// frame; Dispose must be called once when the controls are no longer needed.
type Controls struct {
	opts     Options
	cam      *scene.Camera
	el       host.Element
	listener host.ListenerID
	disposed bool

	state      dragState
	thetaDelta float32
	phiDelta   float32
	panOffset  rl.Vector3
	scale      float32
}

// New attaches controls for cam to el's input.
func New(cam *scene.Camera, el host.Element, opts Options) *Controls {
	c := &Controls{opts: opts, cam: cam, el: el, scale: 1}
	c.listener = el.AddInputListener(c.handle)
	return c
}

// Options returns the configuration the controls were built with.
func (c *Controls) Options() Options {
	return c.opts
}

// Disposed reports whether Dispose has run.
func (c *Controls) Disposed() bool {
	return c.disposed
}

// Dispose stops listening for input. Calling it again is a no-op.
func (c *Controls) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.state = idle
	c.el.RemoveInputListener(c.listener)
}

func (c *Controls) handle(ev host.InputEvent) {
	if c.disposed {
		return
	}
	switch ev.Kind {
	case host.PointerDown:
		switch {
		case ev.Button == host.ButtonPrimary:
			c.state = rotating
		case ev.Button == host.ButtonSecondary && c.opts.EnablePan:
			c.state = panning
		default:
			c.state = idle
		}
	case host.PointerMove:
		switch c.state {
		case rotating:
			h := c.elementHeight()
			c.rotateLeft(2 * math32.Pi * ev.DX / h * c.opts.RotateSpeed)
			c.rotateUp(2 * math32.Pi * ev.DY / h * c.opts.RotateSpeed)
		case panning:
			c.pan(ev.DX, ev.DY)
		}
	case host.PointerUp:
		c.state = idle
	case host.Wheel:
		switch {
		case ev.DY < 0:
			c.scale *= c.zoomScale()
		case ev.DY > 0:
			c.scale /= c.zoomScale()
		}
	}
}

func (c *Controls) elementHeight() float32 {
	_, h := c.el.ContentSize()
	if h <= 0 {
		return 1
	}
	return float32(h)
}

func (c *Controls) zoomScale() float32 {
	return math32.Pow(0.95, c.opts.ZoomSpeed)
}

func (c *Controls) rotateLeft(angle float32) {
	c.thetaDelta -= angle
}

func (c *Controls) rotateUp(angle float32) {
	c.phiDelta -= angle
}

// pan shifts the target in the view plane; dx/dy are pixels.
func (c *Controls) pan(dx, dy float32) {
	h := c.elementHeight()
	dist := c.cam.Distance() * math32.Tan(c.cam.Fovy*rl.Deg2rad/2)
	forward := rl.Vector3Normalize(rl.Vector3Subtract(c.cam.Target, c.cam.Position))
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, c.cam.Up))
	up := rl.Vector3CrossProduct(right, forward)
	left := rl.Vector3Scale(right, -2*dx*dist/h)
	upward := rl.Vector3Scale(up, 2*dy*dist/h)
	c.panOffset = rl.Vector3Add(c.panOffset, rl.Vector3Add(left, upward))
}

// Update applies pending rotation, dolly and pan to the camera, then decays
// them (damped) or clears them. It reports whether the camera moved.
func (c *Controls) Update() bool {
	before := c.cam.Position
	beforeTarget := c.cam.Target

	offset := rl.Vector3Subtract(c.cam.Position, c.cam.Target)
	radius := rl.Vector3Length(offset)
	theta := math32.Atan2(offset.X, offset.Z)
	var phi float32
	if radius > 0 {
		phi = math32.Acos(clampf(offset.Y/radius, -1, 1))
	}

	factor := float32(1)
	if c.opts.EnableDamping {
		factor = c.opts.DampingFactor
	}
	theta += c.thetaDelta * factor
	phi += c.phiDelta * factor
	phi = clampf(phi, polarEpsilon, math32.Pi-polarEpsilon)

	radius = clampf(radius*c.scale, c.opts.MinDistance, c.opts.MaxDistance)

	target := c.cam.Target
	if c.opts.EnablePan {
		target = rl.Vector3Add(target, rl.Vector3Scale(c.panOffset, factor))
	}

	sinPhi := math32.Sin(phi)
	offset = rl.NewVector3(
		radius*sinPhi*math32.Sin(theta),
		radius*math32.Cos(phi),
		radius*sinPhi*math32.Cos(theta),
	)
	c.cam.Target = target
	c.cam.Position = rl.Vector3Add(target, offset)

	if c.opts.EnableDamping {
		decay := 1 - c.opts.DampingFactor
		c.thetaDelta *= decay
		c.phiDelta *= decay
		c.panOffset = rl.Vector3Scale(c.panOffset, decay)
	} else {
		c.thetaDelta, c.phiDelta = 0, 0
		c.panOffset = rl.Vector3{}
	}
	c.scale = 1

	const moveEpsilon = 1e-6
	return rl.Vector3Distance(before, c.cam.Position) > moveEpsilon ||
		rl.Vector3Distance(beforeTarget, c.cam.Target) > moveEpsilon
}

func clampf(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
