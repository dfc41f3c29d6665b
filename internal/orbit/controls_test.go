package orbit

import (
	"testing"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"

	"demo-viewer/internal/host"
	"demo-viewer/internal/host/hosttest"
	"demo-viewer/internal/scene"
)

func newCamera() *scene.Camera {
	return &scene.Build(800.0 / 600.0).Camera
}

func azimuth(c *scene.Camera) float32 {
	off := rl.Vector3Subtract(c.Position, c.Target)
	return math32.Atan2(off.X, off.Z)
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	assert.True(t, o.EnableDamping)
	assert.False(t, o.EnablePan)
	assert.Equal(t, float32(2), o.MinDistance)
	assert.Equal(t, float32(10), o.MaxDistance)
	assert.Greater(t, o.DampingFactor, float32(0))
	assert.Less(t, o.DampingFactor, float32(1))
}

func TestListenerLifecycle(t *testing.T) {
	el := hosttest.NewElement(800, 600)
	c := New(newCamera(), el, DefaultOptions())
	assert.Equal(t, 1, el.InputListeners())

	c.Dispose()
	assert.True(t, c.Disposed())
	assert.Equal(t, 0, el.InputListeners())

	assert.NotPanics(t, c.Dispose)
	assert.Equal(t, 0, el.InputListeners())
}

func TestUpdateWithoutInputKeepsCamera(t *testing.T) {
	el := hosttest.NewElement(800, 600)
	cam := newCamera()
	c := New(cam, el, DefaultOptions())

	for range 10 {
		c.Update()
	}
	assert.InDelta(t, 0, cam.Position.X, 1e-4)
	assert.InDelta(t, 2, cam.Position.Y, 1e-4)
	assert.InDelta(t, 5, cam.Position.Z, 1e-4)
}

func TestDampedDragEasesOut(t *testing.T) {
	el := hosttest.NewElement(800, 600)
	cam := newCamera()
	c := New(cam, el, DefaultOptions())
	dist := cam.Distance()

	el.Drag(100, 0)

	prev := azimuth(cam)
	var steps []float32
	for range 5 {
		assert.True(t, c.Update())
		cur := azimuth(cam)
		steps = append(steps, math32.Abs(cur-prev))
		prev = cur
	}
	for i := 1; i < len(steps); i++ {
		assert.Less(t, steps[i], steps[i-1])
		assert.Greater(t, steps[i], float32(0))
	}
	assert.InDelta(t, dist, cam.Distance(), 1e-3)
}

func TestUndampedDragAppliesOnce(t *testing.T) {
	el := hosttest.NewElement(800, 600)
	cam := newCamera()
	opts := DefaultOptions()
	opts.EnableDamping = false
	c := New(cam, el, opts)

	el.Drag(60, 0)
	c.Update()
	after := azimuth(cam)
	// One full element height of drag is a full turn.
	assert.InDelta(t, -2*math32.Pi*60/600, after, 1e-4)

	c.Update()
	assert.InDelta(t, after, azimuth(cam), 1e-5)
}

func TestWheelClampsDistance(t *testing.T) {
	el := hosttest.NewElement(800, 600)
	cam := newCamera()
	c := New(cam, el, DefaultOptions())

	for range 100 {
		el.Dispatch(host.InputEvent{Kind: host.Wheel, DY: -1})
	}
	c.Update()
	assert.InDelta(t, 2, cam.Distance(), 1e-4)

	for range 200 {
		el.Dispatch(host.InputEvent{Kind: host.Wheel, DY: 1})
	}
	c.Update()
	assert.InDelta(t, 10, cam.Distance(), 1e-4)
}

func TestPanDisabled(t *testing.T) {
	el := hosttest.NewElement(800, 600)
	cam := newCamera()
	c := New(cam, el, DefaultOptions())

	el.Dispatch(host.InputEvent{Kind: host.PointerDown, Button: host.ButtonSecondary})
	el.Dispatch(host.InputEvent{Kind: host.PointerMove, DX: 200, DY: 150})
	el.Dispatch(host.InputEvent{Kind: host.PointerUp})
	c.Update()

	assert.Equal(t, rl.NewVector3(0, 0, 0), cam.Target)
	assert.InDelta(t, 0, cam.Position.X, 1e-4)
}

func TestPanEnabledMovesTarget(t *testing.T) {
	el := hosttest.NewElement(800, 600)
	cam := newCamera()
	opts := DefaultOptions()
	opts.EnablePan = true
	opts.EnableDamping = false
	c := New(cam, el, opts)

	el.Dispatch(host.InputEvent{Kind: host.PointerDown, Button: host.ButtonSecondary})
	el.Dispatch(host.InputEvent{Kind: host.PointerMove, DX: 100})
	el.Dispatch(host.InputEvent{Kind: host.PointerUp})
	assert.True(t, c.Update())

	// Dragging right pulls the scene right, so the target moves left.
	assert.Less(t, cam.Target.X, float32(0))
}

func TestInputIgnoredAfterDispose(t *testing.T) {
	el := hosttest.NewElement(800, 600)
	cam := newCamera()
	c := New(cam, el, DefaultOptions())
	h := c.handle
	c.Dispose()

	h(host.InputEvent{Kind: host.PointerDown})
	h(host.InputEvent{Kind: host.PointerMove, DX: 300})
	c.Update()
	assert.InDelta(t, 0, cam.Position.X, 1e-4)
}
