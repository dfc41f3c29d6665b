package primitives

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"demo-viewer/internal/scene"
)

// cached holds the GPU mesh and lit material for one shape. Created lazily on first Draw.
type cached struct {
	mesh rl.Mesh
	mtl  rl.Material
}

// Registry maps shapes to mesh+material. Meshes are created on first use so that GPU
// resources are allocated after the window/OpenGL context exists. Each surface owns
// one Registry and unloads it when the surface is released.
type Registry struct {
	cache    map[scene.Shape]cached
	viewPos  [3]float32
	lightPos [3]float32
	ambient  [4]float32
	light    [3]float32
}

// NewRegistry returns a registry with no meshes loaded.
func NewRegistry() *Registry {
	return &Registry{cache: make(map[scene.Shape]cached)}
}

// sphereRings and sphereSlices control sphere mesh resolution.
const sphereRings = 32
const sphereSlices = 32

// SetLights takes camera position and both lights from s for this frame. Call once
// per frame before drawing so lit meshes get correct shading.
func (r *Registry) SetLights(s *scene.Scene) {
	cam := s.Camera.Position
	r.viewPos = [3]float32{cam.X, cam.Y, cam.Z}
	kp := s.Key.Position
	r.lightPos = [3]float32{kp.X, kp.Y, kp.Z}
	a := s.Ambient.Intensity
	ac := s.Ambient.Color
	r.ambient = [4]float32{unit(ac.R) * a, unit(ac.G) * a, unit(ac.B) * a, 1}
	k := s.Key.Intensity
	kc := s.Key.Color
	r.light = [3]float32{unit(kc.R) * k, unit(kc.G) * k, unit(kc.B) * k}
}

func unit(c uint8) float32 {
	return float32(c) / 255
}

// ensure creates the mesh and material for shape if not yet cached.
func (r *Registry) ensure(shape scene.Shape) cached {
	if c, ok := r.cache[shape]; ok {
		return c
	}
	var mesh rl.Mesh
	switch shape {
	case scene.ShapeSphere:
		// Radius 0.5 so diameter = 1, matching the cube side length.
		mesh = rl.GenMeshSphere(0.5, sphereRings, sphereSlices)
	default:
		mesh = rl.GenMeshCube(1, 1, 1)
	}
	mtl := rl.LoadMaterialDefault()
	if shader := loadLitShader(); rl.IsShaderValid(shader) {
		mtl.Shader = shader
	}
	c := cached{mesh: mesh, mtl: mtl}
	r.cache[shape] = c
	return c
}

// loadLitShader returns a shader doing Phong shading with one point light plus ambient.
// Same vertex attributes as raylib meshes: vertexPosition, vertexTexCoord, vertexNormal.
func loadLitShader() rl.Shader {
	return rl.LoadShaderFromMemory(litVS, litFS)
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightPos;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform vec3 specularColor;
uniform float shininess;
out vec4 finalColor;
void main() {
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightPos - fragPosition);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = colDiffuse.rgb * NdotL * lightColor;
  vec3 amb = ambient.rgb * colDiffuse.rgb;
  vec3 R = reflect(-L, N);
  float spec = pow(max(dot(R, V), 0.0), shininess);
  vec3 specular = specularColor * lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular, colDiffuse.a);
}
`
)

// setLitShaderUniforms sets lights and the mesh's specular terms on the shader (cgo-safe: local arrays).
func (r *Registry) setLitShaderUniforms(shader rl.Shader, m scene.Material) {
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos := r.viewPos
	lightPos := r.lightPos
	amb := r.ambient
	light := r.light
	spec := [3]float32{unit(m.Specular.R), unit(m.Specular.G), unit(m.Specular.B)}
	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightColor"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, light[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "specularColor"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, spec[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "shininess"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{m.Shininess}, rl.ShaderUniformFloat)
	}
}

// Draw draws one mesh with its transform and material color.
// Must be called between BeginMode3D and EndMode3D, after SetLights.
func (r *Registry) Draw(m *scene.Mesh) {
	c := r.ensure(m.Shape)
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = m.Material.Color
	}
	r.setLitShaderUniforms(c.mtl.Shader, m.Material)
	rl.DrawMesh(c.mesh, c.mtl, m.Transform())
}

// Unload frees every cached mesh and material. The registry can be reused afterwards.
func (r *Registry) Unload() {
	for shape, c := range r.cache {
		rl.UnloadMesh(&c.mesh)
		rl.UnloadMaterial(c.mtl)
		delete(r.cache, shape)
	}
}
