package graphics

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"demo-viewer/internal/host"
	"demo-viewer/internal/primitives"
	"demo-viewer/internal/scene"
)

// Render texture calls, replaced in tests that run without a GL context.
var (
	loadRenderTexture   = rl.LoadRenderTexture
	unloadRenderTexture = rl.UnloadRenderTexture
	renderTextureValid  = rl.IsRenderTextureValid
)

// surface is a render texture the scene is drawn into, presented by the window.
type surface struct {
	win           *Window
	target        rl.RenderTexture2D
	reg           *primitives.Registry
	width, height int
	released      bool
	// lost is set when the texture could not be recreated; Render returns it.
	lost error
}

// NewSurface allocates a width×height render texture. It fails with
// host.ErrNoContext when the OpenGL context is missing or refuses the texture.
func (w *Window) NewSurface(width, height int) (host.Surface, error) {
	if !windowReady() {
		return nil, host.ErrNoContext
	}
	target := loadRenderTexture(int32(width), int32(height))
	if !renderTextureValid(target) {
		return nil, fmt.Errorf("graphics: render texture %dx%d: %w", width, height, host.ErrNoContext)
	}
	return &surface{win: w, target: target, reg: primitives.NewRegistry(), width: width, height: height}, nil
}

func (s *surface) SetSize(width, height int) {
	if s.released || (width == s.width && height == s.height) {
		return
	}
	unloadRenderTexture(s.target)
	s.target = loadRenderTexture(int32(width), int32(height))
	s.width, s.height = width, height
	if !renderTextureValid(s.target) && s.lost == nil {
		s.lost = fmt.Errorf("graphics: resize render texture to %dx%d: %w", width, height, host.ErrSurfaceLost)
		s.win.log.Log(s.lost.Error())
	}
}

func (s *surface) Size() (int, int) {
	return s.width, s.height
}

// Render draws sc into the render texture: background, then both meshes lit by
// the scene's lights. The camera's own projection replaces the one BeginMode3D
// builds, so its clip planes and resized aspect are what the meshes are drawn with.
func (s *surface) Render(sc *scene.Scene) error {
	if s.lost != nil {
		return s.lost
	}
	if s.released || !renderTextureValid(s.target) {
		return host.ErrSurfaceLost
	}
	rl.BeginTextureMode(s.target)
	rl.ClearBackground(sc.Background)
	rl.BeginMode3D(sc.Camera.Raylib())
	rl.SetMatrixProjection(sc.Camera.Projection)
	s.reg.SetLights(sc)
	for _, m := range sc.Meshes() {
		s.reg.Draw(m)
	}
	rl.EndMode3D()
	rl.EndTextureMode()
	return nil
}

func (s *surface) Release() {
	if s.released {
		return
	}
	s.released = true
	s.reg.Unload()
	unloadRenderTexture(s.target)
}

// blit draws the texture flipped vertically (OpenGL textures are bottom-up).
func (s *surface) blit() {
	if s.released {
		return
	}
	tex := s.target.Texture
	src := rl.NewRectangle(0, 0, float32(tex.Width), -float32(tex.Height))
	rl.DrawTextureRec(tex, src, rl.NewVector2(0, 0), rl.White)
}
