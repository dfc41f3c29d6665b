// Package hosttest provides an in-memory host for driving panels in tests:
// frames run only when Tick is called and resizes only when Resize is called.
package hosttest

import (
	"maps"
	"slices"
	"time"

	"demo-viewer/internal/host"
	"demo-viewer/internal/scene"
)

// FrameInterval is how far the clock advances on each Tick.
const FrameInterval = time.Second / 60

type pendingFrame struct {
	handle host.FrameHandle
	cb     host.FrameCallback
}

// Host implements host.Host. Set FailSurface to make NewSurface fail.
type Host struct {
	Element     *Element
	FailSurface error
	Surfaces    []*Surface
	Errors      []error

	clock   time.Duration
	next    host.FrameHandle
	pending []pendingFrame
	nextID  host.ListenerID
	resize  map[host.ListenerID]func()
	// Canceled counts CancelFrame calls that dropped a pending request.
	Canceled int
}

// New returns a host whose element measures width×height.
func New(width, height int) *Host {
	return &Host{
		Element: NewElement(width, height),
		resize:  make(map[host.ListenerID]func()),
	}
}

func (h *Host) RequestFrame(cb host.FrameCallback) host.FrameHandle {
	h.next++
	h.pending = append(h.pending, pendingFrame{handle: h.next, cb: cb})
	return h.next
}

func (h *Host) CancelFrame(handle host.FrameHandle) {
	for i, p := range h.pending {
		if p.handle == handle {
			h.pending = slices.Delete(h.pending, i, i+1)
			h.Canceled++
			return
		}
	}
}

// PendingFrames is the number of scheduled, not yet run, callbacks.
func (h *Host) PendingFrames() int {
	return len(h.pending)
}

// Tick advances the clock by one refresh and runs the callbacks that were
// pending when it was called. It returns how many ran.
func (h *Host) Tick() int {
	h.clock += FrameInterval
	batch := h.pending
	h.pending = nil
	for _, p := range batch {
		p.cb(h.clock)
	}
	return len(batch)
}

// TickN calls Tick n times and returns the total number of callbacks run.
func (h *Host) TickN(n int) int {
	total := 0
	for range n {
		total += h.Tick()
	}
	return total
}

func (h *Host) AddResizeListener(fn func()) host.ListenerID {
	h.nextID++
	h.resize[h.nextID] = fn
	return h.nextID
}

func (h *Host) RemoveResizeListener(id host.ListenerID) {
	delete(h.resize, id)
}

// ResizeListeners is the number of registered resize listeners.
func (h *Host) ResizeListeners() int {
	return len(h.resize)
}

// Resize changes the element's size and fires the resize signal.
func (h *Host) Resize(width, height int) {
	h.Element.SetSize(width, height)
	for _, id := range slices.Sorted(maps.Keys(h.resize)) {
		if fn, ok := h.resize[id]; ok {
			fn()
		}
	}
}

func (h *Host) NewSurface(width, height int) (host.Surface, error) {
	if h.FailSurface != nil {
		return nil, h.FailSurface
	}
	s := &Surface{Width: width, Height: height}
	h.Surfaces = append(h.Surfaces, s)
	return s, nil
}

func (h *Host) ReportError(err error) {
	h.Errors = append(h.Errors, err)
}

// Element is an in-memory container.
type Element struct {
	width, height int
	children      []host.Surface
	nextID        host.ListenerID
	input         map[host.ListenerID]host.InputListener
}

func NewElement(width, height int) *Element {
	return &Element{width: width, height: height, input: make(map[host.ListenerID]host.InputListener)}
}

func (e *Element) SetSize(width, height int) {
	e.width, e.height = width, height
}

func (e *Element) ContentSize() (int, int) {
	return e.width, e.height
}

func (e *Element) ClearChildren() {
	e.children = nil
}

func (e *Element) AppendChild(s host.Surface) {
	e.children = append(e.children, s)
}

func (e *Element) RemoveChild(s host.Surface) {
	if i := slices.Index(e.children, s); i >= 0 {
		e.children = slices.Delete(e.children, i, i+1)
	}
}

func (e *Element) Children() []host.Surface {
	return slices.Clone(e.children)
}

func (e *Element) AddInputListener(fn host.InputListener) host.ListenerID {
	e.nextID++
	e.input[e.nextID] = fn
	return e.nextID
}

func (e *Element) RemoveInputListener(id host.ListenerID) {
	delete(e.input, id)
}

// InputListeners is the number of registered input listeners.
func (e *Element) InputListeners() int {
	return len(e.input)
}

// Dispatch delivers ev to every input listener.
func (e *Element) Dispatch(ev host.InputEvent) {
	for _, id := range slices.Sorted(maps.Keys(e.input)) {
		if fn, ok := e.input[id]; ok {
			fn(ev)
		}
	}
}

// Drag dispatches a primary-button press, one move of (dx, dy), and a release.
func (e *Element) Drag(dx, dy float32) {
	e.Dispatch(host.InputEvent{Kind: host.PointerDown, Button: host.ButtonPrimary})
	e.Dispatch(host.InputEvent{Kind: host.PointerMove, DX: dx, DY: dy})
	e.Dispatch(host.InputEvent{Kind: host.PointerUp})
}

// Frame records what one Render call saw.
type Frame struct {
	Aspect         float32
	CubeRotation   [2]float32
	SphereRotation [2]float32
}

// Surface is an in-memory drawing surface. Set FailRender to make Render fail.
type Surface struct {
	Width, Height int
	Frames        []Frame
	Released      bool
	FailRender    error
}

func (s *Surface) SetSize(width, height int) {
	s.Width, s.Height = width, height
}

func (s *Surface) Size() (int, int) {
	return s.Width, s.Height
}

func (s *Surface) Render(sc *scene.Scene) error {
	if s.Released {
		return host.ErrSurfaceLost
	}
	if s.FailRender != nil {
		return s.FailRender
	}
	s.Frames = append(s.Frames, Frame{
		Aspect:         sc.Camera.Aspect,
		CubeRotation:   [2]float32{sc.Cube.Rotation.X, sc.Cube.Rotation.Y},
		SphereRotation: [2]float32{sc.Sphere.Rotation.X, sc.Sphere.Rotation.Y},
	})
	return nil
}

func (s *Surface) Release() {
	s.Released = true
}
