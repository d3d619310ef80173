package render

import (
	"go.uber.org/zap"

	"github.com/taigrr/flatshade/pkg/models"
)

// Renderer draws one frame per call: clear, project, sort, fill.
type Renderer struct {
	Background Color

	pipeline *Pipeline
	raster   *Rasterizer
	surface  Surface
	log      *zap.Logger

	// Reused each frame; only its capacity survives between frames.
	visible []Triangle
}

// NewRenderer creates a renderer drawing through pipeline onto surface.
// A nil logger discards output.
func NewRenderer(pipeline *Pipeline, surface Surface, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{
		Background: ColorBlack,
		pipeline:   pipeline,
		raster:     NewRasterizer(surface),
		surface:    surface,
		log:        log,
	}
}

// Pipeline returns the renderer's geometry pipeline.
func (r *Renderer) Pipeline() *Pipeline {
	return r.pipeline
}

// SetSurface retargets the renderer, e.g. after a resize. The pipeline
// viewport is updated by the caller.
func (r *Renderer) SetSurface(s Surface) {
	r.surface = s
	r.raster = NewRasterizer(s)
}

// RenderFrame draws mesh onto the surface. A nil mesh yields a cleared
// frame. Per-triangle problems never abort the frame; they are counted in
// the returned stats.
func (r *Renderer) RenderFrame(mesh *models.Mesh) FrameStats {
	r.surface.Clear(r.Background)

	var stats FrameStats
	r.visible, stats = r.pipeline.ProjectMesh(mesh, r.visible[:0])

	sortByDepth(r.visible)
	for _, tri := range r.visible {
		r.raster.Fill(tri)
	}

	if ce := r.log.Check(zap.DebugLevel, "frame rendered"); ce != nil {
		ce.Write(
			zap.Int("triangles", stats.Triangles),
			zap.Int("visible", stats.Visible),
			zap.Int("culled", stats.Culled),
			zap.Int("degenerate", stats.Degenerate),
		)
	}
	return stats
}
