// Package host declares the environment the demo panel runs inside: a frame
// scheduler, a viewport resize signal, a container element, and a renderer that
// hands out drawing surfaces. The raylib window in internal/graphics implements
// these for the desktop viewer; internal/host/hosttest implements them in memory.
package host

import (
	"errors"
	"time"

	"demo-viewer/internal/scene"
)

var (
	// ErrNoContext is returned by Renderer.NewSurface when no graphics context is available.
	ErrNoContext = errors.New("host: graphics context unavailable")
	// ErrSurfaceLost is returned by Surface.Render when the backing store is gone.
	ErrSurfaceLost = errors.New("host: drawing surface lost")
)

// FrameHandle identifies one pending "run on next refresh" request. Zero is never issued.
type FrameHandle uint64

// FrameCallback runs once on a display refresh; now is time since the host started.
type FrameCallback func(now time.Duration)

// ListenerID identifies a registered resize or input listener. Zero is never issued.
type ListenerID uint64

// Scheduler is the per-frame scheduling primitive.
type Scheduler interface {
	// RequestFrame schedules cb for the next refresh. A callback requested
	// while frames are being run waits for the following refresh.
	RequestFrame(cb FrameCallback) FrameHandle
	// CancelFrame drops a pending request. Unknown or already-run handles are ignored.
	CancelFrame(h FrameHandle)
}

// Viewport is the global resize signal.
type Viewport interface {
	AddResizeListener(fn func()) ListenerID
	RemoveResizeListener(id ListenerID)
}

// Surface is a drawing surface bound to a graphics context.
type Surface interface {
	// SetSize resizes the backing store and displayed size.
	SetSize(width, height int)
	Size() (width, height int)
	// Render draws s through its camera. It must be called at most once per frame.
	Render(s *scene.Scene) error
	// Release frees the graphics resources. The surface is unusable afterwards.
	Release()
}

// Renderer hands out surfaces.
type Renderer interface {
	NewSurface(width, height int) (Surface, error)
}

// Host is everything a panel consumes from its environment.
type Host interface {
	Scheduler
	Viewport
	Renderer
	// ReportError forwards a failure to the surrounding page's error reporting.
	ReportError(err error)
}
