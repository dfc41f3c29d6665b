package host

// InputKind is the type of a pointer or wheel event delivered by an Element.
type InputKind uint8

const (
	PointerDown InputKind = iota
	PointerMove
	PointerUp
	Wheel
)

// Button identifies the pointer button of a PointerDown event.
type Button uint8

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

// InputEvent is one pointer or wheel event on an element.
// For PointerMove, DX/DY is the movement in pixels since the previous event.
// For Wheel, DY > 0 scrolls away from the content (zoom out).
type InputEvent struct {
	Kind   InputKind
	Button Button
	X, Y   float32
	DX, DY float32
}

// InputListener receives input events from an element.
type InputListener func(ev InputEvent)

// Element is the container the panel draws into.
type Element interface {
	// ContentSize is the content-box size in pixels; zero when not laid out.
	ContentSize() (width, height int)
	ClearChildren()
	AppendChild(s Surface)
	RemoveChild(s Surface)
	Children() []Surface
	AddInputListener(fn InputListener) ListenerID
	RemoveInputListener(id ListenerID)
}
