package render

import (
	"math"

	"github.com/taigrr/flatshade/pkg/math3d"
	"github.com/taigrr/flatshade/pkg/models"
)

// DefaultShadeFloor is the minimum intensity assigned to a lit face so
// that faces turned away from the light are not fully black.
const DefaultShadeFloor = 0.1

// Outcome is the result of running one triangle through the pipeline.
type Outcome int

const (
	OutcomeVisible    Outcome = iota // Front facing, projected to the screen
	OutcomeCulled                    // Back facing
	OutcomeDegenerate                // Zero-area triangle, no usable normal
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeVisible:
		return "visible"
	case OutcomeCulled:
		return "culled"
	case OutcomeDegenerate:
		return "degenerate"
	default:
		return "unknown"
	}
}

// Triangle is a screen-space triangle ready for rasterization.
// X and Y are pixels, Z is the projected depth used for ordering.
type Triangle struct {
	P     [3]math3d.Vec4
	Shade float64 // Light intensity after the floor policy
}

// Depth returns the average projected depth of the three vertices.
func (t Triangle) Depth() float64 {
	return (t.P[0].Z + t.P[1].Z + t.P[2].Z) / 3
}

// Points returns the 2D pixel positions of the vertices.
func (t Triangle) Points() [3]math3d.Vec2 {
	return [3]math3d.Vec2{
		math3d.V2(t.P[0].X, t.P[0].Y),
		math3d.V2(t.P[1].X, t.P[1].Y),
		math3d.V2(t.P[2].X, t.P[2].Y),
	}
}

// Pipeline carries mesh triangles from model space to screen space.
// It holds the camera and per-run parameters; it keeps no state between
// triangles.
type Pipeline struct {
	Camera *Camera

	// LightDir is the direction the light travels. Faces whose normal
	// points along it receive full intensity.
	LightDir math3d.Vec3

	// ShadeFloor is the minimum intensity. A negative value disables the
	// floor and leaves intensities in [-1, 1].
	ShadeFloor float64

	offset   math3d.Vec3
	rotation math3d.Mat4
	world    math3d.Mat4
	width    int
	height   int
}

// NewPipeline creates a pipeline for a width x height viewport using the
// given camera. The camera's aspect ratio is set to match the viewport.
func NewPipeline(camera *Camera, width, height int) *Pipeline {
	p := &Pipeline{
		Camera:     camera,
		LightDir:   math3d.V3(0, 0, -1),
		ShadeFloor: DefaultShadeFloor,
		offset:     math3d.V3(0, 0, 16),
		rotation:   math3d.Identity(),
	}
	p.updateWorld()
	p.SetViewport(width, height)
	return p
}

// SetViewport sets the output size in pixels.
func (p *Pipeline) SetViewport(width, height int) {
	p.width, p.height = width, height
	if width > 0 && height > 0 {
		p.Camera.SetAspectRatio(float64(width) / float64(height))
	}
}

// Viewport returns the output size in pixels.
func (p *Pipeline) Viewport() (width, height int) {
	return p.width, p.height
}

// SetOffset sets the translation applied to every mesh vertex.
func (p *Pipeline) SetOffset(offset math3d.Vec3) {
	p.offset = offset
	p.updateWorld()
}

// Offset returns the world translation.
func (p *Pipeline) Offset() math3d.Vec3 {
	return p.offset
}

// Fit sets the offset so the bounding sphere of m fills the vertical field
// of view of a camera at the origin looking down +Z. Rotation still turns
// the mesh about its own origin. An empty mesh leaves the offset unchanged.
func (p *Pipeline) Fit(m *models.Mesh) {
	if m.TriangleCount() == 0 {
		return
	}

	radius := m.Size().Len() / 2
	if radius == 0 {
		radius = 1
	}
	dist := radius / math.Sin(p.Camera.FOV/2)

	p.SetOffset(m.Center().Scale(-1).Add(math3d.V3(0, 0, dist)))
}

// SetRotation sets the model rotation as pitch (X), yaw (Y) and roll (Z)
// angles in radians. Rotation happens before the offset is applied.
func (p *Pipeline) SetRotation(pitch, yaw, roll float64) {
	p.rotation = math3d.RotateZ(roll).Mul(math3d.RotateX(pitch)).Mul(math3d.RotateY(yaw))
	p.updateWorld()
}

func (p *Pipeline) updateWorld() {
	p.world = p.rotation.Mul(math3d.Translate(p.offset))
}

// Shade applies the floor policy to a raw light intensity.
func (p *Pipeline) Shade(intensity float64) float64 {
	if p.ShadeFloor >= 0 && intensity < p.ShadeFloor {
		return p.ShadeFloor
	}
	return intensity
}

// Project runs one mesh triangle through placement, back-face culling,
// shading, view and projection transforms, and the viewport mapping.
// The returned triangle is only meaningful when the outcome is
// OutcomeVisible.
func (p *Pipeline) Project(tri models.Triangle) (Triangle, Outcome) {
	var placed [3]math3d.Vec4
	for i := range 3 {
		placed[i] = tri.P[i].Transform(p.world)
	}

	normal, ok := faceNormal(placed)
	if !ok {
		return Triangle{}, OutcomeDegenerate
	}

	if normal.Dot(p.Camera.Ray(placed[0].Vec3())) >= 0 {
		return Triangle{}, OutcomeCulled
	}

	out := Triangle{Shade: p.Shade(normal.Dot(p.LightDir.Normalize()))}

	view := p.Camera.ViewMatrix()
	proj := p.Camera.ProjectionMatrix()
	for i := range 3 {
		out.P[i] = p.ToScreen(placed[i].Transform(view).Transform(proj))
	}

	return out, OutcomeVisible
}

// ToScreen maps normalized device coordinates to pixels: [-1, 1] spans
// [0, width] and [0, height]. Z and W are carried through unscaled.
func (p *Pipeline) ToScreen(ndc math3d.Vec4) math3d.Vec4 {
	ndc.X = (ndc.X + 1) * 0.5 * float64(p.width)
	ndc.Y = (ndc.Y + 1) * 0.5 * float64(p.height)
	return ndc
}

// faceNormal returns the unit normal (p1-p0) × (p2-p0), or false when the
// triangle is degenerate.
func faceNormal(p [3]math3d.Vec4) (math3d.Vec3, bool) {
	line1 := p[1].Sub(p[0])
	line2 := p[2].Sub(p[0])
	return line1.Cross(line2).Unit()
}

// FrameStats counts pipeline outcomes for one frame.
type FrameStats struct {
	Triangles  int // Mesh triangles processed
	Visible    int // Passed to the rasterizer
	Culled     int // Back facing
	Degenerate int // Skipped for lack of a normal
}

func (s *FrameStats) record(o Outcome) {
	s.Triangles++
	switch o {
	case OutcomeVisible:
		s.Visible++
	case OutcomeCulled:
		s.Culled++
	case OutcomeDegenerate:
		s.Degenerate++
	}
}

// ProjectMesh projects every triangle of mesh in order, appending the
// visible ones to dst.
func (p *Pipeline) ProjectMesh(mesh *models.Mesh, dst []Triangle) ([]Triangle, FrameStats) {
	var stats FrameStats
	if mesh == nil {
		return dst, stats
	}

	for _, tri := range mesh.Triangles {
		st, outcome := p.Project(tri)
		stats.record(outcome)
		if outcome == OutcomeVisible {
			dst = append(dst, st)
		}
	}
	return dst, stats
}
