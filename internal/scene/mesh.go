package scene

import (
	"github.com/chewxy/math32"
)

// Mesh is an indexed triangle list. Vertices are interleaved
// [px, py, pz, nx, ny, nz] * N.
type Mesh struct {
	Vertices []float32
	Indices  []uint32
}

const VertexStride = 6

func (m *Mesh) VertexCount() int { return len(m.Vertices) / VertexStride }

func (m *Mesh) add(px, py, pz, nx, ny, nz float32) uint32 {
	m.Vertices = append(m.Vertices, px, py, pz, nx, ny, nz)
	return uint32(m.VertexCount() - 1)
}

// Tube builds an open cylinder along Z, centred on the origin, with normals
// pointing inward so it is lit from inside.
func Tube(radius, length float32, radial, rings int) *Mesh {
	if radial < 3 {
		radial = 3
	}
	if rings < 1 {
		rings = 1
	}
	m := &Mesh{
		Vertices: make([]float32, 0, (radial+1)*(rings+1)*VertexStride),
		Indices:  make([]uint32, 0, radial*rings*6),
	}
	for r := 0; r <= rings; r++ {
		z := -length/2 + length*float32(r)/float32(rings)
		for s := 0; s <= radial; s++ {
			a := 2 * math32.Pi * float32(s) / float32(radial)
			c, sn := math32.Cos(a), math32.Sin(a)
			m.add(c*radius, sn*radius, z, -c, -sn, 0)
		}
	}
	row := uint32(radial + 1)
	for r := 0; r < rings; r++ {
		for s := 0; s < radial; s++ {
			a := uint32(r)*row + uint32(s)
			b := a + row
			m.Indices = append(m.Indices, a, b, a+1, a+1, b, b+1)
		}
	}
	return m
}

// Box builds an axis-aligned box with flat face normals.
func Box(w, h, d float32) *Mesh {
	hx, hy, hz := w/2, h/2, d/2
	faces := [6]struct {
		n    [3]float32
		u, v [3]float32
	}{
		{[3]float32{1, 0, 0}, [3]float32{0, 0, -1}, [3]float32{0, 1, 0}},
		{[3]float32{-1, 0, 0}, [3]float32{0, 0, 1}, [3]float32{0, 1, 0}},
		{[3]float32{0, 1, 0}, [3]float32{1, 0, 0}, [3]float32{0, 0, -1}},
		{[3]float32{0, -1, 0}, [3]float32{1, 0, 0}, [3]float32{0, 0, 1}},
		{[3]float32{0, 0, 1}, [3]float32{1, 0, 0}, [3]float32{0, 1, 0}},
		{[3]float32{0, 0, -1}, [3]float32{-1, 0, 0}, [3]float32{0, 1, 0}},
	}
	m := &Mesh{
		Vertices: make([]float32, 0, 24*VertexStride),
		Indices:  make([]uint32, 0, 36),
	}
	for _, f := range faces {
		var base uint32
		for i, c := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			px := (f.n[0] + c[0]*f.u[0] + c[1]*f.v[0]) * hx
			py := (f.n[1] + c[0]*f.u[1] + c[1]*f.v[1]) * hy
			pz := (f.n[2] + c[0]*f.u[2] + c[1]*f.v[2]) * hz
			idx := m.add(px, py, pz, f.n[0], f.n[1], f.n[2])
			if i == 0 {
				base = idx
			}
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// Ring builds a flat annulus in the XY plane (satellite dish / panel ring).
func Ring(inner, outer float32, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	m := &Mesh{}
	for s := 0; s <= segments; s++ {
		a := 2 * math32.Pi * float32(s) / float32(segments)
		c, sn := math32.Cos(a), math32.Sin(a)
		m.add(c*inner, sn*inner, 0, 0, 0, 1)
		m.add(c*outer, sn*outer, 0, 0, 0, 1)
	}
	for s := 0; s < segments; s++ {
		i := uint32(2 * s)
		m.Indices = append(m.Indices, i, i+1, i+2, i+2, i+1, i+3)
	}
	return m
}
