// Package render turns meshes into flat-shaded pixels: the geometry
// pipeline, painter's-algorithm ordering, and triangle fill.
package render

import (
	"github.com/taigrr/flatshade/pkg/math3d"
)

// Surface is a drawable output of fixed pixel size.
type Surface interface {
	// Clear fills the whole surface with c.
	Clear(c Color)
	// FillTriangle fills the triangle spanned by three pixel positions.
	FillTriangle(pts [3]math3d.Vec2, c Color)
}

// Rasterizer draws screen-space triangles onto a Surface.
// There is no depth buffer; overlap is resolved by draw order alone.
type Rasterizer struct {
	surface Surface
}

// NewRasterizer creates a rasterizer drawing to s.
func NewRasterizer(s Surface) *Rasterizer {
	return &Rasterizer{surface: s}
}

// Fill draws tri in a single gray level derived from its shade.
func (r *Rasterizer) Fill(tri Triangle) {
	r.surface.FillTriangle(tri.Points(), ShadeColor(tri.Shade))
}

// ShadeColor converts a light intensity to an opaque gray. Intensities
// outside [0, 1] are clipped, so unfloored negative shades come out black.
func ShadeColor(intensity float64) Color {
	switch {
	case !(intensity > 0): // also catches NaN
		intensity = 0
	case intensity > 1:
		intensity = 1
	}
	g := uint8(intensity * 255)
	return RGB(g, g, g)
}
