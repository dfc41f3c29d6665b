package panel

import (
	"errors"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"demo-viewer/internal/host"
	"demo-viewer/internal/host/hosttest"
	"demo-viewer/internal/logger"
	"demo-viewer/internal/scene"
)

func newPanel(t *testing.T, w, h int) (*Panel, *hosttest.Host) {
	t.Helper()
	th := hosttest.New(w, h)
	return New(th.Element, th, logger.New("")), th
}

func liveSurface(t *testing.T, th *hosttest.Host) *hosttest.Surface {
	t.Helper()
	children := th.Element.Children()
	require.Len(t, children, 1)
	s, ok := children[0].(*hosttest.Surface)
	require.True(t, ok)
	return s
}

func TestMountCubeFocus(t *testing.T) {
	p, th := newPanel(t, 800, 600)
	p.Mount(scene.CubeFocus)

	assert.True(t, p.Mounted())
	assert.Equal(t, 1, th.PendingFrames())
	assert.Equal(t, 1, th.ResizeListeners())
	assert.Equal(t, 1, th.Element.InputListeners())
	s := liveSurface(t, th)
	assert.Equal(t, 800, s.Width)
	assert.Equal(t, 600, s.Height)

	for i := 1; i <= 5; i++ {
		require.Equal(t, 1, th.Tick(), "one frame callback per refresh")
		require.Len(t, s.Frames, i, "one draw per frame")
		f := s.Frames[i-1]
		assert.InDelta(t, 800.0/600.0, f.Aspect, 1e-5)
		assert.InDelta(t, float32(i)*scene.RotationStep, f.CubeRotation[0], 1e-5)
		assert.InDelta(t, float32(i)*scene.RotationStep, f.CubeRotation[1], 1e-5)
		assert.Equal(t, [2]float32{}, f.SphereRotation)
	}
	assert.Equal(t, uint64(5), p.Frames())
	assert.Len(t, th.Element.Children(), 1)
}

func TestFocusedRotationStepsEveryFrame(t *testing.T) {
	for _, focus := range []scene.Focus{scene.CubeFocus, scene.SphereFocus} {
		t.Run(focus.String(), func(t *testing.T) {
			p, th := newPanel(t, 640, 480)
			p.Mount(focus)
			s := liveSurface(t, th)
			th.TickN(10)
			require.Len(t, s.Frames, 10)
			for i := 1; i < len(s.Frames); i++ {
				prev, cur := s.Frames[i-1], s.Frames[i]
				spun, still := cur.CubeRotation, cur.SphereRotation
				spunPrev, stillPrev := prev.CubeRotation, prev.SphereRotation
				if focus == scene.SphereFocus {
					spun, still = still, spun
					spunPrev, stillPrev = stillPrev, spunPrev
				}
				assert.Equal(t, stillPrev, still)
				for axis := range 2 {
					assert.Greater(t, spun[axis], spunPrev[axis])
					assert.InDelta(t, scene.RotationStep, spun[axis]-spunPrev[axis], 1e-5)
				}
			}
		})
	}
}

func TestResizeSyncsCameraAndSurface(t *testing.T) {
	p, th := newPanel(t, 800, 600)
	p.Mount(scene.CubeFocus)
	s := liveSurface(t, th)
	th.Tick()

	th.Resize(400, 300)
	assert.InDelta(t, 400.0/300.0, p.Scene().Camera.Aspect, 1e-5)
	assert.Equal(t, 400, s.Width)
	assert.Equal(t, 300, s.Height)
	th.Tick()
	assert.InDelta(t, 400.0/300.0, s.Frames[len(s.Frames)-1].Aspect, 1e-5)

	for _, size := range [][2]int{{1000, 500}, {300, 900}, {1, 1}} {
		before := p.Scene().Camera.Projection
		th.Resize(size[0], size[1])
		assert.InDelta(t, float32(size[0])/float32(size[1]), p.Scene().Camera.Aspect, 1e-5)
		assert.NotEqual(t, before, p.Scene().Camera.Projection)
		w, h := s.Size()
		assert.Equal(t, size, [2]int{w, h})
	}
}

func TestResizeToZeroKeepsLastAspect(t *testing.T) {
	p, th := newPanel(t, 800, 400)
	p.Mount(scene.CubeFocus)
	th.Resize(0, 0)
	assert.InDelta(t, 2, p.Scene().Camera.Aspect, 1e-6)
	th.Tick()
	assert.Equal(t, 1, th.PendingFrames())
}

func TestToggleRebuildsEverything(t *testing.T) {
	p, th := newPanel(t, 800, 600)
	p.Mount(scene.CubeFocus)
	first := liveSurface(t, th)
	firstScene := p.Scene()

	// Move the camera so the reset is observable.
	th.Element.Drag(200, 50)
	th.TickN(3)
	require.NotEqual(t, rl.NewVector3(0, 2, 5), firstScene.Camera.Position)

	p.Toggle()
	assert.Equal(t, scene.SphereFocus, p.Focus())
	assert.Equal(t, 2, p.Activations())
	assert.Equal(t, 1, th.Canceled, "old frame canceled")
	assert.True(t, first.Released)
	assert.Equal(t, 1, th.ResizeListeners())
	assert.Equal(t, 1, th.Element.InputListeners())
	assert.Equal(t, 1, th.PendingFrames())

	second := liveSurface(t, th)
	assert.NotSame(t, first, second)
	assert.NotSame(t, firstScene, p.Scene())
	assert.Equal(t, rl.NewVector3(0, 2, 5), p.Scene().Camera.Position)
	assert.Equal(t, uint64(0), p.Frames())

	th.Tick()
	require.Len(t, second.Frames, 1)
	assert.Equal(t, [2]float32{}, second.Frames[0].CubeRotation)
	assert.InDelta(t, scene.RotationStep, second.Frames[0].SphereRotation[0], 1e-6)
	assert.Len(t, first.Frames, 3)
}

func TestSetSameFocusDoesNotRebuild(t *testing.T) {
	p, th := newPanel(t, 800, 600)
	p.Mount(scene.SphereFocus)
	p.SetFocus(scene.SphereFocus)
	p.Mount(scene.SphereFocus)
	assert.Equal(t, 1, p.Activations())
	assert.Len(t, th.Surfaces, 1)
}

func TestFocusChangeWhileUnmounted(t *testing.T) {
	p, th := newPanel(t, 800, 600)
	p.SetFocus(scene.SphereFocus)
	assert.Equal(t, 0, p.Activations())
	assert.Equal(t, 0, th.PendingFrames())

	p.Mount(p.Focus())
	th.Tick()
	s := liveSurface(t, th)
	assert.Equal(t, [2]float32{}, s.Frames[0].CubeRotation)
}

func TestUnmountStopsFrames(t *testing.T) {
	p, th := newPanel(t, 800, 600)
	p.Mount(scene.CubeFocus)
	s := liveSurface(t, th)
	th.TickN(4)

	p.Unmount()
	assert.False(t, p.Mounted())
	assert.Equal(t, 0, th.PendingFrames())
	assert.Equal(t, 0, th.TickN(2), "no callback after unmount")
	assert.Len(t, s.Frames, 4)
	assert.True(t, s.Released)
	assert.Empty(t, th.Element.Children())
	assert.Equal(t, 0, th.ResizeListeners())
	assert.Equal(t, 0, th.Element.InputListeners())
	assert.Nil(t, p.Scene())
}

func TestUnmountIsIdempotent(t *testing.T) {
	p, th := newPanel(t, 800, 600)
	p.Mount(scene.CubeFocus)
	th.Tick()

	p.Unmount()
	assert.NotPanics(t, p.Unmount)
	assert.Equal(t, 1, th.Canceled)

	// The activation itself also tolerates a second close.
	a := activate(th.Element, th, nil, scene.CubeFocus, p.opts)
	a.close()
	a.close()
	assert.Equal(t, 2, th.Canceled)
	assert.Equal(t, 0, th.ResizeListeners())
}

func TestTogglesThenUnmountLeaveNoLeaks(t *testing.T) {
	p, th := newPanel(t, 800, 600)
	p.Mount(scene.CubeFocus)
	for i := range 25 {
		p.Toggle()
		th.TickN(i % 3)
		if i%7 == 0 {
			th.Resize(800+i, 600)
		}
	}
	p.Unmount()

	assert.Equal(t, 26, p.Activations())
	assert.Equal(t, 0, th.PendingFrames())
	assert.Equal(t, 0, th.ResizeListeners())
	assert.Equal(t, 0, th.Element.InputListeners())
	assert.Empty(t, th.Element.Children())
	require.Len(t, th.Surfaces, 26)
	for _, s := range th.Surfaces {
		assert.True(t, s.Released)
	}
}

func TestAtMostOneSurfaceChild(t *testing.T) {
	p, th := newPanel(t, 800, 600)
	stale := &hosttest.Surface{}
	th.Element.AppendChild(stale)

	p.Mount(scene.CubeFocus)
	assert.NotSame(t, stale, liveSurface(t, th))
	for range 5 {
		p.Toggle()
		liveSurface(t, th)
		th.Tick()
		liveSurface(t, th)
	}
}

func TestZeroSizedContainerWaitsForResize(t *testing.T) {
	p, th := newPanel(t, 0, 0)
	p.Mount(scene.CubeFocus)

	assert.Nil(t, p.Scene())
	assert.Empty(t, th.Surfaces)
	assert.Equal(t, 0, th.PendingFrames())
	assert.Equal(t, 1, th.ResizeListeners())

	th.Resize(640, 0)
	assert.Nil(t, p.Scene())

	th.Resize(640, 480)
	require.NotNil(t, p.Scene())
	assert.InDelta(t, 640.0/480.0, p.Scene().Camera.Aspect, 1e-6)
	assert.Equal(t, 1, th.PendingFrames())
	liveSurface(t, th)

	th.Tick()
	assert.Equal(t, uint64(1), p.Frames())
}

func TestUnmountWhileWaitingForSize(t *testing.T) {
	p, th := newPanel(t, 0, 0)
	p.Mount(scene.CubeFocus)
	p.Unmount()
	assert.Equal(t, 0, th.ResizeListeners())
	th.Resize(100, 100)
	assert.Empty(t, th.Surfaces)
}

func TestSurfaceFailureIsContained(t *testing.T) {
	p, th := newPanel(t, 800, 600)
	th.FailSurface = host.ErrNoContext
	p.Mount(scene.CubeFocus)

	assert.True(t, p.Failed())
	require.Len(t, th.Errors, 1)
	assert.ErrorIs(t, th.Errors[0], host.ErrNoContext)
	assert.Empty(t, th.Element.Children())
	assert.Equal(t, 0, th.PendingFrames())
	assert.Equal(t, 0, th.ResizeListeners())
	assert.Equal(t, 0, th.Element.InputListeners())

	assert.NotPanics(t, p.Unmount)
}

func TestRenderFailureStopsLoop(t *testing.T) {
	p, th := newPanel(t, 800, 600)
	p.Mount(scene.CubeFocus)
	s := liveSurface(t, th)
	th.TickN(2)

	boom := errors.New("draw failed")
	s.FailRender = boom
	assert.Equal(t, 1, th.Tick())
	assert.Equal(t, 0, th.PendingFrames(), "failed frame does not reschedule")
	assert.Equal(t, 0, th.TickN(2))
	require.Len(t, th.Errors, 1)
	assert.ErrorIs(t, th.Errors[0], boom)
	assert.Equal(t, uint64(2), p.Frames())
	assert.True(t, p.Failed())

	// Teardown still runs normally after a failed frame.
	p.Unmount()
	assert.True(t, s.Released)
	assert.Equal(t, 0, th.ResizeListeners())
	assert.Equal(t, 0, th.Canceled)
}

func TestDragMovesCameraThroughFrames(t *testing.T) {
	p, th := newPanel(t, 800, 600)
	p.Mount(scene.CubeFocus)
	th.Element.Drag(120, 0)
	before := p.Scene().Camera.Position
	th.Tick()
	assert.NotEqual(t, before, p.Scene().Camera.Position)
	assert.InDelta(t, p.Scene().Camera.Distance(), rl.Vector3Length(before), 1e-3)
}
