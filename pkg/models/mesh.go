// Package models provides mesh representation and loading for flatshade.
package models

import (
	"github.com/taigrr/flatshade/pkg/math3d"
)

// Triangle is one mesh face: three homogeneous vertices in file winding
// order.
type Triangle struct {
	P [3]math3d.Vec4
}

// Tri creates a Triangle from three points, each with W = 1.
func Tri(p0, p1, p2 math3d.Vec3) Triangle {
	return Triangle{P: [3]math3d.Vec4{
		math3d.V4FromV3(p0, 1),
		math3d.V4FromV3(p1, 1),
		math3d.V4FromV3(p2, 1),
	}}
}

// Reversed returns the triangle with its winding flipped.
func (t Triangle) Reversed() Triangle {
	return Triangle{P: [3]math3d.Vec4{t.P[0], t.P[2], t.P[1]}}
}

// Mesh is an ordered, read-only collection of triangles.
// A mesh is replaced as a whole on reload, never edited in place.
type Mesh struct {
	Name      string
	Triangles []Triangle

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:      name,
		Triangles: make([]Triangle, 0),
	}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Triangles) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Zero3(), math3d.Zero3()
		return
	}

	m.BoundsMin = m.Triangles[0].P[0].Vec3()
	m.BoundsMax = m.BoundsMin

	for _, t := range m.Triangles {
		for _, p := range t.P {
			m.BoundsMin = m.BoundsMin.Min(p.Vec3())
			m.BoundsMax = m.BoundsMax.Max(p.Vec3())
		}
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

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	return len(m.Triangles)
}
