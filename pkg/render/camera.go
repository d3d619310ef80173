package render

import (
	"math"

	"github.com/taigrr/flatshade/pkg/math3d"
)

// Camera represents the single viewpoint of a running renderer.
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	// Orientation
	LookDir math3d.Vec3 // Viewing direction
	UpDir   math3d.Vec3 // Approximate up; orthogonalized against LookDir

	// Projection parameters
	FOV         float64 // Vertical field of view in radians
	AspectRatio float64 // Width / Height
	Near        float64 // Near plane (depth 0)
	Far         float64 // Far plane (depth 1)

	// Cached matrices (computed on demand)
	viewMatrix math3d.Mat4
	projMatrix math3d.Mat4
	viewDirty  bool
	projDirty  bool
}

// NewCamera creates a camera at the origin looking down +Z with a 90
// degree field of view and an 800x600 aspect ratio.
func NewCamera() *Camera {
	return &Camera{
		Position:    math3d.Zero3(),
		LookDir:     math3d.Forward(),
		UpDir:       math3d.Up(),
		FOV:         math.Pi / 2,
		AspectRatio: 800.0 / 600.0,
		Near:        0.1,
		Far:         1000,
		viewDirty:   true,
		projDirty:   true,
	}
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.viewDirty = true
}

// SetLookDir sets the viewing direction.
func (c *Camera) SetLookDir(dir math3d.Vec3) {
	c.LookDir = dir
	c.viewDirty = true
}

// LookAt points the camera at a target point.
func (c *Camera) LookAt(target math3d.Vec3) {
	c.SetLookDir(target.Sub(c.Position))
}

// SetFOV sets the field of view (in radians).
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.projDirty = true
}

// SetAspectRatio sets the aspect ratio.
func (c *Camera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.projDirty = true
}

// SetClipPlanes sets the near and far planes.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
	c.projDirty = true
}

// ViewMatrix returns the world-to-camera matrix.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		target := c.Position.Add(c.LookDir)
		c.viewMatrix = math3d.PointAt(c.Position, target, c.UpDir).QuickInverse()
		c.viewDirty = false
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		c.projMatrix = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
		c.projDirty = false
	}
	return c.projMatrix
}

// Ray returns the vector from the camera to a world-space point.
func (c *Camera) Ray(p math3d.Vec3) math3d.Vec3 {
	return p.Sub(c.Position)
}
