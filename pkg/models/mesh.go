// Package models builds and loads line meshes: cube templates, Wavefront
// OBJ files and glTF/GLB documents.
package models

import (
	"math"

	"github.com/taigrr/wirecam/pkg/geom"
	"github.com/taigrr/wirecam/pkg/math3d"
)

// Mesh is a named list of primitives loaded from one source.
type Mesh struct {
	Name       string
	Primitives []geom.Primitive

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// Add appends primitives to the mesh.
func (m *Mesh) Add(prims ...geom.Primitive) {
	m.Primitives = append(m.Primitives, prims...)
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Primitives) == 0 {
		return
	}

	m.BoundsMin, m.BoundsMax = m.Primitives[0].Bounds()
	for _, p := range m.Primitives[1:] {
		lo, hi := p.Bounds()
		m.BoundsMin = m.BoundsMin.Min(lo)
		m.BoundsMax = m.BoundsMax.Max(hi)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// PrimitiveCount returns the number of primitives.
func (m *Mesh) PrimitiveCount() int {
	return len(m.Primitives)
}

// VertexCount returns the number of vertices over all primitives.
func (m *Mesh) VertexCount() int {
	n := 0
	for _, p := range m.Primitives {
		n += p.VertexCount()
	}
	return n
}

// EdgeCount returns the number of edges over all primitives.
func (m *Mesh) EdgeCount() int {
	n := 0
	for _, p := range m.Primitives {
		n += p.EdgeCount()
	}
	return n
}

// Transform applies a transformation matrix to all primitives.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i, p := range m.Primitives {
		m.Primitives[i] = p.Transform(mat)
	}
	m.CalculateBounds()
}

// Normalize centers the mesh on the origin and scales it uniformly so its
// largest dimension is size.
func (m *Mesh) Normalize(size float64) {
	m.CalculateBounds()
	dims := m.Size()
	maxDim := math.Max(dims.X, math.Max(dims.Y, dims.Z))
	if maxDim <= 0 {
		return
	}
	scale := size / maxDim
	m.Transform(math3d.ScaleUniform(scale).Mul(math3d.Translate(m.Center().Negate())))
}

// Clone creates a copy of the mesh. Primitives are values, so the copy
// shares nothing mutable with m.
func (m *Mesh) Clone() *Mesh {
	clone := *m
	clone.Primitives = append([]geom.Primitive(nil), m.Primitives...)
	return &clone
}

// Scene returns the mesh as a scene.
func (m *Mesh) Scene() geom.Scene {
	return geom.NewScene(m.Primitives...)
}
