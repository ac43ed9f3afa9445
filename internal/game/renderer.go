//go:build !android

package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"wormhole/internal/scene"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
}

type Renderer struct {
	// Particle program. The VBO is sized once for the field and refilled in
	// place each frame.
	pointProg  uint32
	pointVAO   uint32
	pointVBO   uint32
	pointCount int32

	ptUView  int32
	ptUProj  int32
	ptUSize  int32
	ptUScale int32
	ptUColor int32

	// Lit mesh program for the companion objects.
	meshProg uint32

	mUModel         int32
	mUView          int32
	mUProj          int32
	mUColor         int32
	mUDirLightPos   int32
	mUDirLightColor int32
	mUPointLightPos int32
	mUPointLightCol int32
	mUAmbient       int32

	meshes map[*scene.Mesh]*gpuMesh
}

func NewRenderer(particles int) (*Renderer, error) {
	pointProg, err := linkProgram(pointVertSrc, pointFragSrc)
	if err != nil {
		return nil, fmt.Errorf("point program: %w", err)
	}
	meshProg, err := linkProgram(meshVertSrc, meshFragSrc)
	if err != nil {
		gl.DeleteProgram(pointProg)
		return nil, fmt.Errorf("mesh program: %w", err)
	}

	r := &Renderer{
		pointProg:  pointProg,
		meshProg:   meshProg,
		pointCount: int32(particles),
		meshes:     make(map[*scene.Mesh]*gpuMesh),
	}

	// Point VAO/VBO: 3 floats per particle, the field's position layout.
	gl.GenVertexArrays(1, &r.pointVAO)
	gl.GenBuffers(1, &r.pointVBO)
	gl.BindVertexArray(r.pointVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.pointVBO)
	gl.BufferData(gl.ARRAY_BUFFER, particles*3*4, nil, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, glOffset(0))

	gl.UseProgram(pointProg)
	r.ptUView = gl.GetUniformLocation(pointProg, gl.Str("uView\x00"))
	r.ptUProj = gl.GetUniformLocation(pointProg, gl.Str("uProj\x00"))
	r.ptUSize = gl.GetUniformLocation(pointProg, gl.Str("uSize\x00"))
	r.ptUScale = gl.GetUniformLocation(pointProg, gl.Str("uScale\x00"))
	r.ptUColor = gl.GetUniformLocation(pointProg, gl.Str("uColor\x00"))
	gl.Uniform3f(r.ptUColor, 1, 1, 1)

	gl.UseProgram(meshProg)
	r.mUModel = gl.GetUniformLocation(meshProg, gl.Str("uModel\x00"))
	r.mUView = gl.GetUniformLocation(meshProg, gl.Str("uView\x00"))
	r.mUProj = gl.GetUniformLocation(meshProg, gl.Str("uProj\x00"))
	r.mUColor = gl.GetUniformLocation(meshProg, gl.Str("uColor\x00"))
	r.mUDirLightPos = gl.GetUniformLocation(meshProg, gl.Str("uDirLightPos\x00"))
	r.mUDirLightColor = gl.GetUniformLocation(meshProg, gl.Str("uDirLightColor\x00"))
	r.mUPointLightPos = gl.GetUniformLocation(meshProg, gl.Str("uPointLightPos\x00"))
	r.mUPointLightCol = gl.GetUniformLocation(meshProg, gl.Str("uPointLightColor\x00"))
	r.mUAmbient = gl.GetUniformLocation(meshProg, gl.Str("uAmbient\x00"))

	gl.BindVertexArray(0)
	return r, nil
}

// UploadMesh creates GPU buffers for m once; later calls are no-ops.
func (r *Renderer) UploadMesh(m *scene.Mesh) {
	if m == nil || r.meshes[m] != nil {
		return
	}
	g := &gpuMesh{count: int32(len(m.Indices))}
	gl.GenVertexArrays(1, &g.vao)
	gl.GenBuffers(1, &g.vbo)
	gl.GenBuffers(1, &g.ebo)
	gl.BindVertexArray(g.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*4, gl.Ptr(m.Vertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	stride := int32(scene.VertexStride * 4)
	// aPos (vec3)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
	// aNormal (vec3)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, glOffset(3*4))

	gl.BindVertexArray(0)
	r.meshes[m] = g
}

func (r *Renderer) Destroy() {
	for _, g := range r.meshes {
		gl.DeleteBuffers(1, &g.vbo)
		gl.DeleteBuffers(1, &g.ebo)
		gl.DeleteVertexArrays(1, &g.vao)
	}
	if r.pointVBO != 0 {
		gl.DeleteBuffers(1, &r.pointVBO)
	}
	if r.pointVAO != 0 {
		gl.DeleteVertexArrays(1, &r.pointVAO)
	}
	for _, id := range []uint32{r.pointProg, r.meshProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
}

func (r *Renderer) BeginFrame(fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// UploadPositions rewrites the whole point buffer. The field moves every
// particle every frame, so there is no partial range to track.
func (r *Renderer) UploadPositions(pos []float32) {
	n := len(pos) / 3
	if n > int(r.pointCount) {
		n = int(r.pointCount)
	}
	if n == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, r.pointVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, n*3*4, gl.Ptr(pos))
}

func (r *Renderer) DrawObjects(objs []*scene.Object, lights *scene.Scene, view, proj mgl32.Mat4) {
	dir := lights.Light(scene.LightDirectional)
	pt := lights.Light(scene.LightPoint)
	amb := lights.Light(scene.LightArea)

	gl.Enable(gl.DEPTH_TEST)
	gl.UseProgram(r.meshProg)
	gl.UniformMatrix4fv(r.mUView, 1, false, &view[0])
	gl.UniformMatrix4fv(r.mUProj, 1, false, &proj[0])
	dc := dir.Color.Mul(dir.Intensity)
	pc := pt.Color.Mul(pt.Intensity)
	ac := amb.Color.Mul(amb.Intensity)
	gl.Uniform3f(r.mUDirLightPos, dir.Position.X(), dir.Position.Y(), dir.Position.Z())
	gl.Uniform3f(r.mUDirLightColor, dc.X(), dc.Y(), dc.Z())
	gl.Uniform3f(r.mUPointLightPos, pt.Position.X(), pt.Position.Y(), pt.Position.Z())
	gl.Uniform3f(r.mUPointLightCol, pc.X(), pc.Y(), pc.Z())
	gl.Uniform3f(r.mUAmbient, ac.X(), ac.Y(), ac.Z())

	for _, o := range objs {
		g := r.meshes[o.Mesh]
		if g == nil {
			continue
		}
		model := o.Model()
		gl.UniformMatrix4fv(r.mUModel, 1, false, &model[0])
		gl.Uniform3f(r.mUColor, o.Color.X(), o.Color.Y(), o.Color.Z())
		gl.BindVertexArray(g.vao)
		gl.DrawElements(gl.TRIANGLES, g.count, gl.UNSIGNED_INT, glOffset(0))
	}
	gl.BindVertexArray(0)
}

// DrawPoints renders the particle buffer with additive blending and no depth
// writes so overlapping stars brighten instead of occluding.
func (r *Renderer) DrawPoints(view, proj mgl32.Mat4, size float32, fbH int) {
	gl.UseProgram(r.pointProg)
	gl.BindVertexArray(r.pointVAO)
	gl.UniformMatrix4fv(r.ptUView, 1, false, &view[0])
	gl.UniformMatrix4fv(r.ptUProj, 1, false, &proj[0])
	gl.Uniform1f(r.ptUSize, size)
	gl.Uniform1f(r.ptUScale, float32(fbH)/2)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE)
	gl.DepthMask(false)
	gl.DrawArrays(gl.POINTS, 0, r.pointCount)
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.BindVertexArray(0)
}
