package graphics

import (
	"maps"
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"

	"demo-viewer/internal/host"
)

// ContentSize is the window's render size; the whole window is the container.
func (w *Window) ContentSize() (int, int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

func (w *Window) ClearChildren() {
	w.children = nil
}

func (w *Window) AppendChild(s host.Surface) {
	w.children = append(w.children, s)
}

func (w *Window) RemoveChild(s host.Surface) {
	if i := slices.Index(w.children, s); i >= 0 {
		w.children = slices.Delete(w.children, i, i+1)
	}
}

func (w *Window) Children() []host.Surface {
	return slices.Clone(w.children)
}

func (w *Window) AddInputListener(fn host.InputListener) host.ListenerID {
	w.nextID++
	w.input[w.nextID] = fn
	return w.nextID
}

func (w *Window) RemoveInputListener(id host.ListenerID) {
	delete(w.input, id)
}

func (w *Window) dispatch(ev host.InputEvent) {
	for _, id := range slices.Sorted(maps.Keys(w.input)) {
		if fn, ok := w.input[id]; ok {
			fn(ev)
		}
	}
}

// pollInput turns this frame's mouse state into input events. raylib's wheel is
// positive when scrolling up; InputEvent wants positive for zooming out.
func (w *Window) pollInput() {
	if len(w.input) == 0 {
		return
	}
	pos := rl.GetMousePosition()
	switch {
	case rl.IsMouseButtonPressed(rl.MouseButtonLeft):
		w.dispatch(host.InputEvent{Kind: host.PointerDown, Button: host.ButtonPrimary, X: pos.X, Y: pos.Y})
	case rl.IsMouseButtonPressed(rl.MouseButtonRight):
		w.dispatch(host.InputEvent{Kind: host.PointerDown, Button: host.ButtonSecondary, X: pos.X, Y: pos.Y})
	}
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) || rl.IsMouseButtonDown(rl.MouseButtonRight) {
		if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
			w.dispatch(host.InputEvent{Kind: host.PointerMove, X: pos.X, Y: pos.Y, DX: d.X, DY: d.Y})
		}
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) || rl.IsMouseButtonReleased(rl.MouseButtonRight) {
		w.dispatch(host.InputEvent{Kind: host.PointerUp, X: pos.X, Y: pos.Y})
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		w.dispatch(host.InputEvent{Kind: host.Wheel, X: pos.X, Y: pos.Y, DY: -wheel})
	}
}

// present draws every child surface at the window origin.
func (w *Window) present() {
	for _, c := range w.children {
		if s, ok := c.(*surface); ok {
			s.blit()
		}
	}
}
